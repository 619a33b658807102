// Package product provides CRUD operations for products.
package product

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/controller/brand"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const idColumn = "product_id"

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = fmt.Errorf("product %w", controller.ErrNotFound)

// List returns the products of brandID, or all products when brandID is empty.
func List(db *gorm.DB, brandID string) ([]models.Product, error) {
	return controller.FindAll[models.Product](db, func(tx *gorm.DB) *gorm.DB {
		if brandID != "" {
			tx = tx.Where("brand_id = ?", brandID)
		}

		return tx.Order("product_name")
	})
}

// Get retrieves a product by id.
func Get(db *gorm.DB, id string) (*models.Product, error) {
	return controller.FindByID[models.Product](db, idColumn, id, ErrProductNotFound)
}

// Create inserts p below an existing brand.
func Create(db *gorm.DB, p *models.Product) error {
	if err := ensureBrand(db, p.BrandID); err != nil {
		return err
	}

	return controller.Translate(db.Create(p).Error, ErrProductNotFound, controller.ErrConflict)
}

// Update applies the changed columns of a product, a new brand_id must exist.
func Update(db *gorm.DB, id string, changes map[string]any) (*models.Product, error) {
	if brandID, ok := changes["brand_id"].(string); ok {
		if err := ensureBrand(db, brandID); err != nil {
			return nil, err
		}
	}

	return controller.UpdateByID[models.Product](db, idColumn, id, changes, ErrProductNotFound, controller.ErrConflict)
}

// Delete removes a product together with its offerings.
func Delete(db *gorm.DB, id string) error {
	return controller.DeleteByID[models.Product](db, idColumn, id, ErrProductNotFound)
}

// Exists reports whether a product with id exists.
func Exists(db *gorm.DB, id string) (bool, error) {
	return controller.Exists[models.Product](db, idColumn+" = ?", id)
}

func ensureBrand(db *gorm.DB, brandID string) error {
	ok, err := brand.Exists(db, brandID)
	if err != nil {
		return err
	}

	if !ok {
		return brand.ErrBrandNotFound
	}

	return nil
}
