// Package offering provides CRUD and search operations for offerings.
package offering

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/controller/product"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const idColumn = "offering_id"

// ErrOfferingNotFound is returned when no offering has the requested id.
var ErrOfferingNotFound = fmt.Errorf("offering %w", controller.ErrNotFound)

// Filter narrows Search. Query matches name, summary and tag line case insensitively,
// the other fields must match exactly. Empty fields are ignored.
type Filter struct {
	Query             string
	SaasType          string
	Industry          string
	ClientType        string
	FrameworkCategory string
}

// List returns the offerings of productID, or all offerings when productID is empty.
func List(db *gorm.DB, productID string) ([]models.Offering, error) {
	return controller.FindAll[models.Offering](db, func(tx *gorm.DB) *gorm.DB {
		if productID != "" {
			tx = tx.Where("product_id = ?", productID)
		}

		return tx.Order("offering_name")
	})
}

// Search returns the offerings matching f.
func Search(db *gorm.DB, f Filter) ([]models.Offering, error) {
	return controller.FindAll[models.Offering](db, f.scope)
}

func (f Filter) scope(tx *gorm.DB) *gorm.DB {
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(offering_name) LIKE ? OR LOWER(offering_summary) LIKE ? OR LOWER(tag_line) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	for column, value := range map[string]string{
		"saas_type":          f.SaasType,
		"industry":           f.Industry,
		"client_type":        f.ClientType,
		"framework_category": f.FrameworkCategory,
	} {
		if value != "" {
			tx = tx.Where(column+" = ?", value)
		}
	}

	return tx.Order("offering_name")
}

// Get retrieves an offering by id.
func Get(db *gorm.DB, id string) (*models.Offering, error) {
	return controller.FindByID[models.Offering](db, idColumn, id, ErrOfferingNotFound)
}

// Create inserts o below an existing product.
func Create(db *gorm.DB, o *models.Offering) error {
	if err := ensureProduct(db, o.ProductID); err != nil {
		return err
	}

	return controller.Translate(db.Create(o).Error, ErrOfferingNotFound, controller.ErrConflict)
}

// Update applies the changed columns of an offering and bumps updated_on.
func Update(db *gorm.DB, id string, changes map[string]any) (*models.Offering, error) {
	if productID, ok := changes["product_id"].(string); ok {
		if err := ensureProduct(db, productID); err != nil {
			return nil, err
		}
	}

	return controller.UpdateByID[models.Offering](db, idColumn, id, changes, ErrOfferingNotFound, controller.ErrConflict)
}

// Delete removes an offering and its activity links.
func Delete(db *gorm.DB, id string) error {
	return controller.DeleteByID[models.Offering](db, idColumn, id, ErrOfferingNotFound)
}

// Exists reports whether an offering with id exists.
func Exists(db *gorm.DB, id string) (bool, error) {
	return controller.Exists[models.Offering](db, idColumn+" = ?", id)
}

func ensureProduct(db *gorm.DB, productID string) error {
	ok, err := product.Exists(db, productID)
	if err != nil {
		return err
	}

	if !ok {
		return product.ErrProductNotFound
	}

	return nil
}
