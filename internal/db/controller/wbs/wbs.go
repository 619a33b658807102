// Package wbs manages work breakdown structure entries and their activity associations.
package wbs

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/controller/activity"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const idColumn = "wbs_id"

var (
	// ErrWBSNotFound is returned when no WBS entry has the requested id.
	ErrWBSNotFound = fmt.Errorf("wbs %w", controller.ErrNotFound)

	// ErrAssociationNotFound is returned when the WBS entry is not associated with the activity.
	ErrAssociationNotFound = fmt.Errorf("activity wbs association %w", controller.ErrNotFound)

	// ErrAlreadyAssociated is returned when associating a WBS entry twice with an activity.
	ErrAlreadyAssociated = fmt.Errorf("activity wbs association %w", controller.ErrConflict)
)

// List returns one page of WBS entries.
func List(db *gorm.DB, page controller.Page) ([]models.WBS, error) {
	return controller.FindAll[models.WBS](db, page.Scope, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("wbs_description").Order(idColumn)
	})
}

// Get retrieves a WBS entry by id.
func Get(db *gorm.DB, id string) (*models.WBS, error) {
	return controller.FindByID[models.WBS](db, idColumn, id, ErrWBSNotFound)
}

// ForActivity returns the WBS entries associated with an activity.
func ForActivity(db *gorm.DB, activityID string) ([]models.WBS, error) {
	ok, err := activity.Exists(db, activityID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, activity.ErrActivityNotFound
	}

	return controller.FindAll[models.WBS](db, func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN activity_wbs ON activity_wbs.wbs_id = wbs.wbs_id").
			Where("activity_wbs.activity_id = ?", activityID).
			Order("wbs.wbs_description")
	})
}

// Create inserts a WBS entry.
func Create(db *gorm.DB, w *models.WBS) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return controller.Translate(db.Create(w).Error, ErrWBSNotFound, controller.ErrConflict)
}

// Update applies the changed columns of a WBS entry.
func Update(db *gorm.DB, id string, changes map[string]any) (*models.WBS, error) {
	return controller.UpdateByID[models.WBS](db, idColumn, id, changes, ErrWBSNotFound, controller.ErrConflict)
}

// Delete removes a WBS entry and its activity associations.
func Delete(db *gorm.DB, id string) error {
	return controller.DeleteByID[models.WBS](db, idColumn, id, ErrWBSNotFound)
}

// Associate attaches an existing WBS entry to an existing activity.
func Associate(db *gorm.DB, activityID, wbsID string) (*models.ActivityWBS, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	link := &models.ActivityWBS{ActivityID: activityID, WBSID: wbsID}

	err := db.Transaction(func(tx *gorm.DB) error {
		ok, err := activity.Exists(tx, activityID)
		if err != nil {
			return err
		}

		if !ok {
			return activity.ErrActivityNotFound
		}

		if ok, err = controller.Exists[models.WBS](tx, idColumn+" = ?", wbsID); err != nil {
			return err
		} else if !ok {
			return ErrWBSNotFound
		}

		taken, err := controller.Exists[models.ActivityWBS](tx, "activity_id = ? AND wbs_id = ?", activityID, wbsID)
		if err != nil {
			return err
		}

		if taken {
			return ErrAlreadyAssociated
		}

		return controller.Translate(tx.Create(link).Error, ErrAssociationNotFound, ErrAlreadyAssociated)
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

// Dissociate removes the association of a WBS entry with an activity.
func Dissociate(db *gorm.DB, activityID, wbsID string) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Where("activity_id = ? AND wbs_id = ?", activityID, wbsID).Delete(&models.ActivityWBS{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAssociationNotFound
	}

	return nil
}
