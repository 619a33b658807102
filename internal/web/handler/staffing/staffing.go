// Package staffing serves the staffing details of activities.
package staffing

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/staffing"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

// Path is the base path of the staffing routes.
const Path = handler.RootPath + "staffingDetails"

// Service is the staffing handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the staffing handler.
var Handler = Service{}

// Fields are the optional columns of a staffing detail.
type Fields struct {
	Country *string `json:"country" validate:"omitempty,max=50"`
	Role    *string `json:"role" validate:"omitempty,max=100"`
	Band    *int    `json:"band" validate:"omitempty,gte=0"`
	Hours   *int    `json:"hours" validate:"omitempty,gte=0"`
}

// CreateRequest is the body of a new staffing detail.
type CreateRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
	Fields
}

// UpdateRequest changes the given fields of a staffing detail.
type UpdateRequest struct {
	ActivityID *string `json:"activity_id" validate:"omitempty,min=1"`
	Fields
}

// Init initializes the staffing handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()

	router.Get(Path+"/all", s.List)
	router.Get(Path+"/activity/:activityId", s.ForActivity)
	router.Get(Path+"/detail/:id", s.Get)
	router.Get(Path+"/:offeringId", s.ForOffering)
	router.Post(Path, admin, s.Create)
	router.Put(Path+"/:id", admin, s.Update)
	router.Delete(Path+"/:id", admin, s.Delete)

	return nil
}

// List returns every staffing detail.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := staffing.List(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// ForActivity returns the staffing details of one activity.
func (s *Service) ForActivity(c *fiber.Ctx) error {
	rows, err := staffing.ForActivity(s.db.WithContext(c.UserContext()), c.Params("activityId"))
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// ForOffering returns the staffing details of the activities linked to an offering.
func (s *Service) ForOffering(c *fiber.Ctx) error {
	rows, err := staffing.ForOffering(s.db.WithContext(c.UserContext()), c.Params("offeringId"))
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// Get returns one staffing detail.
func (s *Service) Get(c *fiber.Ctx) error {
	row, err := staffing.Get(s.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(row)
}

// Create adds a staffing detail to an existing activity.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	row := models.StaffingDetail{
		ActivityID: req.ActivityID,
		Country:    req.Country,
		Role:       req.Role,
		Band:       req.Band,
		Hours:      req.Hours,
	}

	if err := staffing.Create(s.db.WithContext(c.UserContext()), &row); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(row)
}

// Update changes a staffing detail.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	row, err := staffing.Update(s.db.WithContext(c.UserContext()), c.Params("id"), handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(row)
}

// Delete removes a staffing detail.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := staffing.Delete(s.db.WithContext(c.UserContext()), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
