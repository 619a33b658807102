// Package country serves the delivery countries.
package country

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/country"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

// Path is the base path of the country routes.
const Path = handler.RootPath + "countries"

// Service is the country handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the country handler.
var Handler = Service{}

// CreateRequest is the body of a new country.
type CreateRequest struct {
	CountryName string `json:"country_name" validate:"required,max=100"`
}

// UpdateRequest renames a country.
type UpdateRequest struct {
	CountryName *string `json:"country_name" validate:"omitempty,min=1,max=100"`
}

// Init initializes the country handler.
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

// List returns every country ordered by name.
func (s *Service) List(c *fiber.Ctx) error {
	countries, err := country.List(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	return c.JSON(countries)
}

// Get returns one country.
func (s *Service) Get(c *fiber.Ctx) error {
	cn, err := country.Get(s.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(cn)
}

// Create adds a country.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	cn := models.Country{CountryName: req.CountryName}
	if err := country.Create(s.db.WithContext(c.UserContext()), &cn); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cn)
}

// Update renames a country.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	cn, err := country.Update(s.db.WithContext(c.UserContext()), c.Params("id"), handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(cn)
}

// Delete removes a country.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := country.Delete(s.db.WithContext(c.UserContext()), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
