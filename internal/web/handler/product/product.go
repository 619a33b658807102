// Package product serves the products of a brand.
package product

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/product"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

// Path is the base path of the product routes.
const Path = handler.RootPath + "products"

// Service is the product handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the product handler.
var Handler = Service{}

// CreateRequest is the body of a new product.
type CreateRequest struct {
	BrandID     string  `json:"brand_id" validate:"required"`
	ProductName string  `json:"product_name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateRequest changes the given fields of a product.
type UpdateRequest struct {
	BrandID     *string `json:"brand_id" validate:"omitempty,min=1"`
	ProductName *string `json:"product_name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// Init initializes the product handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()

	// static routes before :id
	router.Get(Path+"/all", s.All)
	router.Get(Path, s.List)
	router.Get(Path+"/:id", s.Get)
	router.Post(Path, admin, s.Create)
	router.Put(Path+"/:id", admin, s.Update)
	router.Delete(Path+"/:id", admin, s.Delete)

	return nil
}

// All returns every product.
func (s *Service) All(c *fiber.Ctx) error {
	products, err := product.List(s.db.WithContext(c.UserContext()), "")
	if err != nil {
		return err
	}

	return c.JSON(products)
}

// List returns the products of brand_id, all products without it.
func (s *Service) List(c *fiber.Ctx) error {
	products, err := product.List(s.db.WithContext(c.UserContext()), c.Query("brand_id"))
	if err != nil {
		return err
	}

	return c.JSON(products)
}

// Get returns one product.
func (s *Service) Get(c *fiber.Ctx) error {
	p, err := product.Get(s.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// Create adds a product to an existing brand.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	p := models.Product{BrandID: req.BrandID, ProductName: req.ProductName, Description: req.Description}
	if err := product.Create(s.db.WithContext(c.UserContext()), &p); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update changes a product.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	p, err := product.Update(s.db.WithContext(c.UserContext()), c.Params("id"), handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// Delete removes a product and its offerings.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := product.Delete(s.db.WithContext(c.UserContext()), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
