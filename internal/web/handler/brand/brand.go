// Package brand serves the brands, the top of the catalog hierarchy.
package brand

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/brand"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

// Path is the base path of the brand routes.
const Path = handler.RootPath + "brands"

// Service is the brand handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the brand handler.
var Handler = Service{}

// CreateRequest is the body of a new brand.
type CreateRequest struct {
	BrandName   string  `json:"brand_name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateRequest changes the given fields of a brand.
type UpdateRequest struct {
	BrandName   *string `json:"brand_name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// Init initializes the brand handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()

	router.Get(Path, s.List)
	router.Get(Path+"/:id", s.Get)
	router.Post(Path, admin, s.Create)
	router.Put(Path+"/:id", admin, s.Update)
	router.Delete(Path+"/:id", admin, s.Delete)

	return nil
}

// List returns every brand.
func (s *Service) List(c *fiber.Ctx) error {
	brands, err := brand.List(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	return c.JSON(brands)
}

// Get returns one brand.
func (s *Service) Get(c *fiber.Ctx) error {
	b, err := brand.Get(s.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(b)
}

// Create adds a brand, the name must be unused.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	b := models.Brand{BrandName: req.BrandName, Description: req.Description}
	if err := brand.Create(s.db.WithContext(c.UserContext()), &b); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(b)
}

// Update changes a brand.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	b, err := brand.Update(s.db.WithContext(c.UserContext()), c.Params("id"), handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(b)
}

// Delete removes a brand with its products, offerings and links.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := brand.Delete(s.db.WithContext(c.UserContext()), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
