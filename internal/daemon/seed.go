package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller/country"
)

// defaultCountries are the delivery countries of a fresh catalog.
var defaultCountries = []string{ //nolint:gochecknoglobals
	"Australia",
	"Brazil",
	"Canada",
	"France",
	"Germany",
	"India",
	"Japan",
	"United Kingdom",
	"United States",
}

// seed fills the lookup tables of an empty database.
func seed(db *gorm.DB) error {
	n, err := country.Seed(db, defaultCountries)
	if err != nil {
		return err
	}

	if n > 0 {
		log.Info().Int("countries", n).Msg("seeded countries")
	}

	return nil
}
