// Package activity serves the activity library and the offering/activity links.
package activity

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/activity"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

const (
	// Path is the base path of the activity routes.
	Path = handler.RootPath + "activities"

	// LibraryPath holds the reusable activities.
	LibraryPath = Path + "/library"
)

// Service is the activity handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the activity handler.
var Handler = Service{}

// Fields are the optional columns of a library activity.
type Fields struct {
	Brand                  *string  `json:"brand" validate:"omitempty,max=150"`
	ProductName            *string  `json:"product_name" validate:"omitempty,max=255"`
	Category               *string  `json:"category" validate:"omitempty,max=100"`
	PartNumbers            *string  `json:"part_numbers" validate:"omitempty,max=100"`
	DurationWeeks          *int     `json:"duration_weeks" validate:"omitempty,gte=0"`
	DurationHours          *int     `json:"duration_hours" validate:"omitempty,gte=0"`
	Outcome                *string  `json:"outcome"`
	Description            *string  `json:"description"`
	EffortHours            *int     `json:"effort_hours" validate:"omitempty,gte=0"`
	FixedPrice             *float64 `json:"fixed_price" validate:"omitempty,gte=0"`
	ClientResponsibilities *string  `json:"client_responsibilities"`
	IBMResponsibilities    *string  `json:"ibm_responsibilities"`
	Assumptions            *string  `json:"assumptions"`
	Deliverables           *string  `json:"deliverables"`
	CompletionCriteria     *string  `json:"completion_criteria"`
	WBS                    *string  `json:"wbs" validate:"omitempty,max=100"`
	Week                   *int     `json:"week" validate:"omitempty,gte=0"`
}

// CreateRequest is the body of a new library activity.
type CreateRequest struct {
	ActivityName string `json:"activity_name" validate:"required,max=255"`
	Fields
}

// UpdateRequest changes the given fields of a library activity.
type UpdateRequest struct {
	ActivityName *string `json:"activity_name" validate:"omitempty,min=1,max=255"`
	Fields
}

// LinkRequest attaches an activity to an offering. is_mandatory defaults to true.
type LinkRequest struct {
	OfferingID  string `json:"offering_id" validate:"required"`
	ActivityID  string `json:"activity_id" validate:"required"`
	Sequence    *int   `json:"sequence" validate:"omitempty,gte=0"`
	IsMandatory *bool  `json:"is_mandatory"`
}

// SequenceRequest moves a linked activity, absent fields keep their value.
type SequenceRequest struct {
	Sequence    *int  `json:"sequence" validate:"omitempty,gte=0"`
	IsMandatory *bool `json:"is_mandatory"`
}

// LinkResponse reports a created or changed link.
type LinkResponse struct {
	Message     string `json:"message"`
	OfferingID  string `json:"offering_id"`
	ActivityID  string `json:"activity_id"`
	Sequence    *int   `json:"sequence"`
	IsMandatory bool   `json:"is_mandatory"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Init initializes the activity handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()
	architect := deps.Gate.RequireSolutionArchitect()

	// library
	router.Get(LibraryPath, s.List)
	router.Get(LibraryPath+"/unassigned", s.Unassigned)
	router.Get(LibraryPath+"/:id", s.Get)
	router.Post(LibraryPath, admin, s.Create)
	router.Put(LibraryPath+"/:id", admin, s.Update)
	router.Delete(LibraryPath+"/:id", admin, s.Delete)

	// offering links
	router.Get(Path, s.ForOffering)
	router.Post(Path+"/link", architect, s.Link)
	router.Delete(Path+"/unlink", architect, s.Unlink)
	router.Patch(Path+"/update-sequence", architect, s.UpdateSequence)

	return nil
}

// List returns one page of the activity library.
func (s *Service) List(c *fiber.Ctx) error {
	page, err := handler.Page(c)
	if err != nil {
		return err
	}

	activities, err := activity.List(s.db.WithContext(c.UserContext()), page)
	if err != nil {
		return err
	}

	return c.JSON(activities)
}

// Unassigned returns the activities no offering uses.
func (s *Service) Unassigned(c *fiber.Ctx) error {
	activities, err := activity.Unassigned(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	return c.JSON(activities)
}

// Get returns one activity with the offerings using it.
func (s *Service) Get(c *fiber.Ctx) error {
	d, err := activity.GetDetail(s.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(d)
}

// ForOffering returns the activities of offering_id in sequence order.
func (s *Service) ForOffering(c *fiber.Ctx) error {
	offeringID, err := handler.RequiredQuery(c, "offering_id")
	if err != nil {
		return err
	}

	activities, err := activity.ForOffering(s.db.WithContext(c.UserContext()), offeringID)
	if err != nil {
		return err
	}

	return c.JSON(activities)
}

// Create adds a library activity.
func (s *Service) Create(c *fiber.Ctx) error {
	var (
		req CreateRequest
		a   models.Activity
	)

	if err := handler.BindModel(c, &req, &a); err != nil {
		return err
	}

	a.ID = ""
	a.CreatedOn, a.UpdatedOn = time.Time{}, time.Time{}

	if err := activity.Create(s.db.WithContext(c.UserContext()), &a); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

// Update changes a library activity.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	a, err := activity.Update(s.db.WithContext(c.UserContext()), c.Params("id"), handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(a)
}

// Delete removes an activity with its links, staffing and WBS associations.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := activity.Delete(s.db.WithContext(c.UserContext()), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Link attaches an activity to an offering.
func (s *Service) Link(c *fiber.Ctx) error {
	var req LinkRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	link := models.OfferingActivity{
		OfferingID:  req.OfferingID,
		ActivityID:  req.ActivityID,
		Sequence:    req.Sequence,
		IsMandatory: req.IsMandatory == nil || *req.IsMandatory,
	}

	if err := activity.Link(s.db.WithContext(c.UserContext()), &link); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(LinkResponse{
		Message:     "Activity linked to offering successfully",
		OfferingID:  link.OfferingID,
		ActivityID:  link.ActivityID,
		Sequence:    link.Sequence,
		IsMandatory: link.IsMandatory,
	})
}

// Unlink detaches activity_id from offering_id.
func (s *Service) Unlink(c *fiber.Ctx) error {
	offeringID, activityID, err := linkKey(c)
	if err != nil {
		return err
	}

	if err = activity.Unlink(s.db.WithContext(c.UserContext()), offeringID, activityID); err != nil {
		return err
	}

	return c.JSON(MessageResponse{Message: "Activity unlinked from offering successfully"})
}

// UpdateSequence changes the position or mandatory flag of a linked activity.
func (s *Service) UpdateSequence(c *fiber.Ctx) error {
	offeringID, activityID, err := linkKey(c)
	if err != nil {
		return err
	}

	var req SequenceRequest
	if err = handler.Bind(c, &req); err != nil {
		return err
	}

	link, err := activity.UpdateSequence(s.db.WithContext(c.UserContext()),
		offeringID, activityID, req.Sequence, req.IsMandatory)
	if err != nil {
		return err
	}

	return c.JSON(LinkResponse{
		Message:     "Activity sequence updated successfully",
		OfferingID:  link.OfferingID,
		ActivityID:  link.ActivityID,
		Sequence:    link.Sequence,
		IsMandatory: link.IsMandatory,
	})
}

func linkKey(c *fiber.Ctx) (offeringID, activityID string, err error) {
	if offeringID, err = handler.RequiredQuery(c, "offering_id"); err != nil {
		return "", "", err
	}

	if activityID, err = handler.RequiredQuery(c, "activity_id"); err != nil {
		return "", "", err
	}

	return offeringID, activityID, nil
}
