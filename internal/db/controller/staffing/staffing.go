// Package staffing provides CRUD operations for activity staffing details.
package staffing

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/controller/activity"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const idColumn = "staffing_id"

// ErrStaffingNotFound is returned when no staffing detail has the requested id.
var ErrStaffingNotFound = fmt.Errorf("staffing detail %w", controller.ErrNotFound)

// List returns every staffing detail.
func List(db *gorm.DB) ([]models.StaffingDetail, error) {
	return controller.FindAll[models.StaffingDetail](db)
}

// ForActivity returns the staffing details of one activity.
func ForActivity(db *gorm.DB, activityID string) ([]models.StaffingDetail, error) {
	return controller.FindAll[models.StaffingDetail](db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("activity_id = ?", activityID)
	})
}

// ForOffering returns the staffing details of every activity linked to the offering.
func ForOffering(db *gorm.DB, offeringID string) ([]models.StaffingDetail, error) {
	return controller.FindAll[models.StaffingDetail](db, func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN offering_activities ON offering_activities.activity_id = staffing_details.activity_id").
			Where("offering_activities.offering_id = ?", offeringID).
			Order("offering_activities.sequence")
	})
}

// Get retrieves a staffing detail by id.
func Get(db *gorm.DB, id string) (*models.StaffingDetail, error) {
	return controller.FindByID[models.StaffingDetail](db, idColumn, id, ErrStaffingNotFound)
}

// Create inserts s for an existing activity.
func Create(db *gorm.DB, s *models.StaffingDetail) error {
	if err := ensureActivity(db, s.ActivityID); err != nil {
		return err
	}

	return controller.Translate(db.Create(s).Error, ErrStaffingNotFound, controller.ErrConflict)
}

// Update applies the changed columns of a staffing detail.
func Update(db *gorm.DB, id string, changes map[string]any) (*models.StaffingDetail, error) {
	if activityID, ok := changes["activity_id"].(string); ok {
		if err := ensureActivity(db, activityID); err != nil {
			return nil, err
		}
	}

	return controller.UpdateByID[models.StaffingDetail](db, idColumn, id, changes, ErrStaffingNotFound, controller.ErrConflict)
}

// Delete removes a staffing detail.
func Delete(db *gorm.DB, id string) error {
	return controller.DeleteByID[models.StaffingDetail](db, idColumn, id, ErrStaffingNotFound)
}

func ensureActivity(db *gorm.DB, activityID string) error {
	ok, err := activity.Exists(db, activityID)
	if err != nil {
		return err
	}

	if !ok {
		return activity.ErrActivityNotFound
	}

	return nil
}
