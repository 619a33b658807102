// Package brand provides CRUD operations for brands.
package brand

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const idColumn = "brand_id"

var (
	// ErrBrandNotFound is returned when no brand has the requested id.
	ErrBrandNotFound = fmt.Errorf("brand %w", controller.ErrNotFound)

	// ErrBrandExists is returned when the brand name is already taken.
	ErrBrandExists = fmt.Errorf("brand %w", controller.ErrConflict)
)

// List returns all brands ordered by name.
func List(db *gorm.DB) ([]models.Brand, error) {
	return controller.FindAll[models.Brand](db, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("brand_name")
	})
}

// Get retrieves a brand by id.
func Get(db *gorm.DB, id string) (*models.Brand, error) {
	return controller.FindByID[models.Brand](db, idColumn, id, ErrBrandNotFound)
}

// Create inserts b and assigns its id.
func Create(db *gorm.DB, b *models.Brand) error {
	if err := ensureNameFree(db, b.BrandName, ""); err != nil {
		return err
	}

	return controller.Translate(db.Create(b).Error, ErrBrandNotFound, ErrBrandExists)
}

// Update applies the changed columns of a brand.
func Update(db *gorm.DB, id string, changes map[string]any) (*models.Brand, error) {
	if name, ok := changes["brand_name"].(string); ok {
		if err := ensureNameFree(db, name, id); err != nil {
			return nil, err
		}
	}

	return controller.UpdateByID[models.Brand](db, idColumn, id, changes, ErrBrandNotFound, ErrBrandExists)
}

// Delete removes a brand together with its products and their offerings.
func Delete(db *gorm.DB, id string) error {
	return controller.DeleteByID[models.Brand](db, idColumn, id, ErrBrandNotFound)
}

// Exists reports whether a brand with id exists.
func Exists(db *gorm.DB, id string) (bool, error) {
	return controller.Exists[models.Brand](db, idColumn+" = ?", id)
}

func ensureNameFree(db *gorm.DB, name, exceptID string) error {
	taken, err := controller.Exists[models.Brand](db, "brand_name = ? AND brand_id <> ?", name, exceptID)
	if err != nil {
		return err
	}

	if taken {
		return ErrBrandExists
	}

	return nil
}
