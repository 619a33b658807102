// Package offering serves the offerings of a product and the offering search.
package offering

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/offering"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

// Path is the base path of the offering routes.
const Path = handler.RootPath + "offerings"

// Service is the offering handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the offering handler.
var Handler = Service{}

// Fields are the optional descriptive columns of an offering.
type Fields struct {
	SaasType               *string  `json:"saas_type" validate:"omitempty,max=100"`
	Brand                  *string  `json:"brand" validate:"omitempty,max=255"`
	SupportedProduct       *string  `json:"supported_product" validate:"omitempty,max=255"`
	ClientType             *string  `json:"client_type" validate:"omitempty,max=255"`
	ClientJourney          *string  `json:"client_journey" validate:"omitempty,max=255"`
	ClientJourneyStage     *string  `json:"client_journey_stage" validate:"omitempty,max=255"`
	FrameworkCategory      *string  `json:"framework_category" validate:"omitempty,max=255"`
	Scenario               *string  `json:"scenario" validate:"omitempty,max=255"`
	IBMSalesPlay           *string  `json:"ibm_sales_play" validate:"omitempty,max=255"`
	TelSalesTactic         *string  `json:"tel_sales_tactic" validate:"omitempty,max=255"`
	Industry               *string  `json:"industry" validate:"omitempty,max=255"`
	OfferingTags           *string  `json:"offering_tags"`
	ContentPage            *string  `json:"content_page"`
	OfferingSalesContact   *string  `json:"offering_sales_contact" validate:"omitempty,max=255"`
	OfferingProductManager *string  `json:"offering_product_manager" validate:"omitempty,max=255"`
	OfferingPracticeLeader *string  `json:"offering_practice_leader" validate:"omitempty,max=255"`
	BusinessChallenges     *string  `json:"business_challenges"`
	BusinessDrivers        *string  `json:"business_drivers"`
	OfferingValue          *string  `json:"offering_value"`
	TagLine                *string  `json:"tag_line"`
	ElevatorPitch          *string  `json:"elevator_pitch"`
	OfferingOutcomes       *string  `json:"offering_outcomes"`
	KeyDeliverables        *string  `json:"key_deliverables"`
	OfferingSummary        *string  `json:"offering_summary"`
	WhenAndWhyToSell       *string  `json:"when_and_why_to_sell"`
	BuyerPersona           *string  `json:"buyer_persona"`
	UserPersona            *string  `json:"user_persona"`
	ScopeSummary           *string  `json:"scope_summary"`
	Duration               *string  `json:"duration" validate:"omitempty,max=50"`
	OCC                    *string  `json:"occ"`
	Prerequisites          *string  `json:"prerequisites"`
	SeismicLink            *string  `json:"seismic_link"`
	PartNumbers            *string  `json:"part_numbers" validate:"omitempty,max=100"`
	SalePrice              *float64 `json:"sale_price" validate:"omitempty,gte=0"`
}

// CreateRequest is the body of a new offering.
type CreateRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	OfferingName string `json:"offering_name" validate:"required,max=255"`
	Fields
}

// UpdateRequest changes the given fields of an offering.
type UpdateRequest struct {
	ProductID    *string `json:"product_id" validate:"omitempty,min=1"`
	OfferingName *string `json:"offering_name" validate:"omitempty,min=1,max=255"`
	Fields
}

// Init initializes the offering handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()

	router.Get(Path, s.List)
	router.Get(Path+"/search", s.Search)
	router.Get(Path+"/:id", s.Get)
	router.Post(Path, admin, s.Create)
	router.Put(Path+"/:id", admin, s.Update)
	router.Delete(Path+"/:id", admin, s.Delete)

	return nil
}

// List returns the offerings of product_id, all offerings without it.
func (s *Service) List(c *fiber.Ctx) error {
	offerings, err := offering.List(s.db.WithContext(c.UserContext()), c.Query("product_id"))
	if err != nil {
		return err
	}

	return c.JSON(offerings)
}

// Search filters offerings by free text and exact attributes.
func (s *Service) Search(c *fiber.Ctx) error {
	offerings, err := offering.Search(s.db.WithContext(c.UserContext()), offering.Filter{
		Query:             c.Query("query"),
		SaasType:          c.Query("saas_type"),
		Industry:          c.Query("industry"),
		ClientType:        c.Query("client_type"),
		FrameworkCategory: c.Query("framework_category"),
	})
	if err != nil {
		return err
	}

	return c.JSON(offerings)
}

// Get returns one offering.
func (s *Service) Get(c *fiber.Ctx) error {
	o, err := offering.Get(s.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(o)
}

// Create adds an offering to an existing product.
func (s *Service) Create(c *fiber.Ctx) error {
	var (
		req CreateRequest
		o   models.Offering
	)

	if err := handler.BindModel(c, &req, &o); err != nil {
		return err
	}

	o.ID = ""
	o.CreatedOn, o.UpdatedOn = time.Time{}, time.Time{}

	if err := offering.Create(s.db.WithContext(c.UserContext()), &o); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(o)
}

// Update changes an offering and bumps its updated_on.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	o, err := offering.Update(s.db.WithContext(c.UserContext()), c.Params("id"), handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(o)
}

// Delete removes an offering and its activity links.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := offering.Delete(s.db.WithContext(c.UserContext()), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
