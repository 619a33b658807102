// Package stats serves catalog counts to administrators.
package stats

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/stats"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
)

// Path is the base path of the stats routes.
const Path = handler.RootPath + "admin/stats"

// Service is the stats handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the stats handler.
var Handler = Service{}

// Init initializes the stats handler. Every route requires an administrator.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.db = deps.DB
	admin := deps.Gate.RequireAdministrator()

	router.Get(Path, admin, s.Counts)
	router.Get(Path+"/detailed", admin, s.Detailed)

	return nil
}

// Counts returns the row count of every catalog table.
func (s *Service) Counts(c *fiber.Ctx) error {
	counts, err := stats.Collect(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	return c.JSON(counts)
}

// Detailed adds the offering and product breakdowns to Counts.
func (s *Service) Detailed(c *fiber.Ctx) error {
	d, err := stats.CollectDetailed(s.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}

	return c.JSON(d)
}
