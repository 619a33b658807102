// Package pricing serves the hourly rates per country, role and band and the
// cost roll-up of an offering.
package pricing

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/pricing"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

const (
	// Path lists and searches the rates.
	Path = handler.RootPath + "pricing"

	// DetailsPath addresses a single rate.
	DetailsPath = handler.RootPath + "pricingDetails"

	// RollupPath sums hours, cost and sale price of an offering.
	RollupPath = handler.RootPath + "totalHoursAndPrices"
)

// Service is the pricing handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the pricing handler.
var Handler = Service{}

// CreateRequest is the body of a new rate.
type CreateRequest struct {
	Country   string   `json:"country" validate:"required,max=50"`
	Role      string   `json:"role" validate:"required,max=100"`
	Band      *int     `json:"band" validate:"required,gte=0"`
	Cost      *float64 `json:"cost" validate:"omitempty,gte=0"`
	SalePrice *float64 `json:"sale_price" validate:"omitempty,gte=0"`
}

// UpdateRequest changes the given fields of a rate, a new country, role or band moves it.
type UpdateRequest struct {
	Country   *string  `json:"country" validate:"omitempty,min=1,max=50"`
	Role      *string  `json:"role" validate:"omitempty,min=1,max=100"`
	Band      *int     `json:"band" validate:"omitempty,gte=0"`
	Cost      *float64 `json:"cost" validate:"omitempty,gte=0"`
	SalePrice *float64 `json:"sale_price" validate:"omitempty,gte=0"`
}

// Init initializes the pricing handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()

	router.Get(Path+"/all", s.List)
	router.Get(Path+"/search", s.Search)

	const key = "/:country/:role/:band"

	router.Get(DetailsPath, s.Get)
	router.Post(DetailsPath, admin, s.Create)
	router.Put(DetailsPath+key, admin, s.Update)
	router.Delete(DetailsPath+key, admin, s.Delete)

	router.Get(RollupPath+"/:offeringId", s.Rollup)

	return nil
}

// List returns every rate.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := pricing.List(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// Search filters rates by any of country, role and band.
func (s *Service) Search(c *fiber.Ctx) error {
	band, err := handler.OptionalInt(c, "band")
	if err != nil {
		return err
	}

	rows, err := pricing.Search(s.db.WithContext(c.UserContext()), pricing.Filter{
		Country: c.Query("country"),
		Role:    c.Query("role"),
		Band:    band,
	})
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// Get returns the rate named by the country, role and band query parameters.
func (s *Service) Get(c *fiber.Ctx) error {
	k, err := queryKey(c)
	if err != nil {
		return err
	}

	p, err := pricing.Get(s.db.WithContext(c.UserContext()), k)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// Create adds a rate, the country, role and band triple must be new.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return err
	}

	p := models.PricingDetail{
		Country:   req.Country,
		Role:      req.Role,
		Band:      *req.Band,
		Cost:      req.Cost,
		SalePrice: req.SalePrice,
	}

	if err := pricing.Create(s.db.WithContext(c.UserContext()), &p); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update changes the rate named by the path.
func (s *Service) Update(c *fiber.Ctx) error {
	k, err := pathKey(c)
	if err != nil {
		return err
	}

	var req UpdateRequest
	if err = handler.Bind(c, &req); err != nil {
		return err
	}

	p, err := pricing.Update(s.db.WithContext(c.UserContext()), k, handler.Changes(req))
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// Delete removes the rate named by the path.
func (s *Service) Delete(c *fiber.Ctx) error {
	k, err := pathKey(c)
	if err != nil {
		return err
	}

	if err = pricing.Delete(s.db.WithContext(c.UserContext()), k); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Rollup sums the staffed hours of an offering and prices them.
func (s *Service) Rollup(c *fiber.Ctx) error {
	r, err := pricing.TotalHoursAndPrices(s.db.WithContext(c.UserContext()), c.Params("offeringId"))
	if err != nil {
		return err
	}

	return c.JSON(r)
}

func queryKey(c *fiber.Ctx) (pricing.Key, error) {
	country, err := handler.RequiredQuery(c, "country")
	if err != nil {
		return pricing.Key{}, err
	}

	role, err := handler.RequiredQuery(c, "role")
	if err != nil {
		return pricing.Key{}, err
	}

	band, err := handler.RequiredQuery(c, "band")
	if err != nil {
		return pricing.Key{}, err
	}

	return newKey(country, role, band)
}

func pathKey(c *fiber.Ctx) (pricing.Key, error) {
	return newKey(c.Params("country"), c.Params("role"), c.Params("band"))
}

func newKey(country, role, band string) (pricing.Key, error) {
	n, err := strconv.Atoi(band)
	if err != nil {
		return pricing.Key{}, fmt.Errorf("%w: band must be an integer", handler.ErrInvalidInput)
	}

	return pricing.Key{Country: country, Role: role, Band: n}, nil
}
