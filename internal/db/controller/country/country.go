// Package country provides CRUD operations for delivery countries.
package country

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const idColumn = "country_id"

var (
	// ErrCountryNotFound is returned when no country has the requested id.
	ErrCountryNotFound = fmt.Errorf("country %w", controller.ErrNotFound)

	// ErrCountryExists is returned when the country name is already taken.
	ErrCountryExists = fmt.Errorf("country %w", controller.ErrConflict)
)

// List returns all countries ordered by name.
func List(db *gorm.DB) ([]models.Country, error) {
	return controller.FindAll[models.Country](db, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("country_name")
	})
}

// Get retrieves a country by id.
func Get(db *gorm.DB, id string) (*models.Country, error) {
	return controller.FindByID[models.Country](db, idColumn, id, ErrCountryNotFound)
}

// Create inserts c and assigns its id.
func Create(db *gorm.DB, c *models.Country) error {
	if err := ensureNameFree(db, c.CountryName, ""); err != nil {
		return err
	}

	return controller.Translate(db.Create(c).Error, ErrCountryNotFound, ErrCountryExists)
}

// Update applies the changed columns of a country.
func Update(db *gorm.DB, id string, changes map[string]any) (*models.Country, error) {
	if name, ok := changes["country_name"].(string); ok {
		if err := ensureNameFree(db, name, id); err != nil {
			return nil, err
		}
	}

	return controller.UpdateByID[models.Country](db, idColumn, id, changes, ErrCountryNotFound, ErrCountryExists)
}

// Delete removes a country.
func Delete(db *gorm.DB, id string) error {
	return controller.DeleteByID[models.Country](db, idColumn, id, ErrCountryNotFound)
}

// Seed inserts the given country names unless the table already has rows.
func Seed(db *gorm.DB, names []string) (int, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Country{}).Count(&count).Error; err != nil {
		return 0, err
	}

	if count > 0 || len(names) == 0 {
		return 0, nil
	}

	rows := make([]models.Country, 0, len(names))
	for _, n := range names {
		rows = append(rows, models.Country{CountryName: n})
	}

	if err := db.Create(&rows).Error; err != nil {
		return 0, err
	}

	return len(rows), nil
}

func ensureNameFree(db *gorm.DB, name, exceptID string) error {
	taken, err := controller.Exists[models.Country](db, "country_name = ? AND country_id <> ?", name, exceptID)
	if err != nil {
		return err
	}

	if taken {
		return ErrCountryExists
	}

	return nil
}
