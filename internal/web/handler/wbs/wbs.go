// Package wbs serves the work breakdown structure entries and their activity associations.
package wbs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/wbs"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

const (
	// Path is the base path of the WBS routes.
	Path = handler.RootPath + "wbs"

	// AssociationPath addresses one activity/WBS association.
	AssociationPath = Path + "/activity/:activityId/wbs/:wbsId"
)

// Service is the WBS handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the WBS handler.
var Handler = Service{}

// CreateRequest is the body of a new WBS entry.
type CreateRequest struct {
	WBSDescription string `json:"wbs_description" validate:"required,max=255"`
	WBSWeeks       *int   `json:"wbs_weeks" validate:"omitempty,gte=0"`
}

// UpdateRequest changes the given fields of a WBS entry.
type UpdateRequest struct {
	WBSDescription *string `json:"wbs_description" validate:"omitempty,min=1,max=255"`
	WBSWeeks       *int    `json:"wbs_weeks" validate:"omitempty,gte=0"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Init initializes the WBS handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()

	router.Get(Path, s.List)
	router.Get(Path+"/activity/:activityId/wbs", s.ForActivity)
	router.Get(Path+"/:id", s.Get)
	router.Post(Path, admin, s.Create)
	router.Put(Path+"/:id", admin, s.Update)
	router.Delete(Path+"/:id", admin, s.Delete)

	router.Post(AssociationPath, admin, s.Associate)
	router.Delete(AssociationPath, admin, s.Dissociate)

	return nil
}

// List returns one page of WBS entries.
func (s *Service) List(c *fiber.Ctx) error {
	page, err := handler.Page(c)
	if err != nil {
		return err
	}

	rows, err := wbs.List(s.db.WithContext(c.UserContext()), page)
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// Get returns one WBS entry.
func (s *Service) Get(c *fiber.Ctx) error {
	w, err := wbs.Get(s.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(w)
}

// ForActivity returns the WBS entries associated with an activity.
func (s *Service) ForActivity(c *fiber.Ctx) error {
	rows, err := wbs.ForActivity(s.db.WithContext(c.UserContext()), c.Params("activityId"))
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// Create adds a WBS entry.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	w := models.WBS{WBSDescription: req.WBSDescription, WBSWeeks: req.WBSWeeks}
	if err := wbs.Create(s.db.WithContext(c.UserContext()), &w); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(w)
}

// Update changes a WBS entry.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	w, err := wbs.Update(s.db.WithContext(c.UserContext()), c.Params("id"), handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(w)
}

// Delete removes a WBS entry and its associations.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := wbs.Delete(s.db.WithContext(c.UserContext()), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Associate attaches a WBS entry to an activity.
func (s *Service) Associate(c *fiber.Ctx) error {
	if _, err := wbs.Associate(s.db.WithContext(c.UserContext()), c.Params("activityId"), c.Params("wbsId")); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{Message: "WBS added to activity successfully"})
}

// Dissociate detaches a WBS entry from an activity.
func (s *Service) Dissociate(c *fiber.Ctx) error {
	if err := wbs.Dissociate(s.db.WithContext(c.UserContext()), c.Params("activityId"), c.Params("wbsId")); err != nil {
		return err
	}

	return c.JSON(MessageResponse{Message: "WBS removed from activity successfully"})
}
