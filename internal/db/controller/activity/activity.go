// Package activity manages the activity library and the links between activities and offerings.
package activity

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/controller/offering"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const idColumn = "activity_id"

var (
	// ErrActivityNotFound is returned when no activity has the requested id.
	ErrActivityNotFound = fmt.Errorf("activity %w", controller.ErrNotFound)

	// ErrLinkNotFound is returned when the activity is not linked to the offering.
	ErrLinkNotFound = fmt.Errorf("offering activity link %w", controller.ErrNotFound)

	// ErrAlreadyLinked is returned when linking an activity twice to the same offering.
	ErrAlreadyLinked = fmt.Errorf("offering activity link %w", controller.ErrConflict)
)

// OfferingUse is one offering an activity is linked to.
type OfferingUse struct {
	OfferingID   string `json:"offering_id"`
	OfferingName string `json:"offering_name"`
	Sequence     *int   `json:"sequence"`
	IsMandatory  bool   `json:"is_mandatory"`
}

// Detail is an activity with every offering using it.
type Detail struct {
	models.Activity

	Offerings []OfferingUse `json:"offerings"`
}

// Assigned is an activity as part of one offering.
type Assigned struct {
	models.Activity

	Sequence    *int `json:"sequence"`
	IsMandatory bool `json:"is_mandatory"`
}

// List returns one page of the activity library.
func List(db *gorm.DB, page controller.Page) ([]models.Activity, error) {
	return controller.FindAll[models.Activity](db, page.Scope, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("activity_name").Order(idColumn)
	})
}

// Unassigned returns the activities not linked to any offering.
func Unassigned(db *gorm.DB) ([]models.Activity, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	linked := db.Model(&models.OfferingActivity{}).Select("activity_id")

	return controller.FindAll[models.Activity](db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("activity_id NOT IN (?)", linked).Order("activity_name")
	})
}

// Get retrieves an activity by id.
func Get(db *gorm.DB, id string) (*models.Activity, error) {
	return controller.FindByID[models.Activity](db, idColumn, id, ErrActivityNotFound)
}

// GetDetail retrieves an activity with the offerings using it.
func GetDetail(db *gorm.DB, id string) (*Detail, error) {
	a, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	uses := []OfferingUse{}

	err = db.Table("offerings").
		Select("offerings.offering_id, offerings.offering_name, offering_activities.sequence, offering_activities.is_mandatory").
		Joins("JOIN offering_activities ON offering_activities.offering_id = offerings.offering_id").
		Where("offering_activities.activity_id = ?", id).
		Order("offerings.offering_name").
		Scan(&uses).Error
	if err != nil {
		return nil, err
	}

	return &Detail{Activity: *a, Offerings: uses}, nil
}

// ForOffering returns the activities of an offering ordered by sequence.
func ForOffering(db *gorm.DB, offeringID string) ([]Assigned, error) {
	ok, err := offering.Exists(db, offeringID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, offering.ErrOfferingNotFound
	}

	rows := []Assigned{}

	err = db.Table("activities").
		Select("activities.*, offering_activities.sequence, offering_activities.is_mandatory").
		Joins("JOIN offering_activities ON offering_activities.activity_id = activities.activity_id").
		Where("offering_activities.offering_id = ?", offeringID).
		Order("offering_activities.sequence").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Create inserts a library activity.
func Create(db *gorm.DB, a *models.Activity) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return controller.Translate(db.Create(a).Error, ErrActivityNotFound, controller.ErrConflict)
}

// Update applies the changed columns of an activity.
func Update(db *gorm.DB, id string, changes map[string]any) (*models.Activity, error) {
	return controller.UpdateByID[models.Activity](db, idColumn, id, changes, ErrActivityNotFound, controller.ErrConflict)
}

// Delete removes an activity, its offering links, staffing rows and WBS associations.
func Delete(db *gorm.DB, id string) error {
	return controller.DeleteByID[models.Activity](db, idColumn, id, ErrActivityNotFound)
}

// Exists reports whether an activity with id exists.
func Exists(db *gorm.DB, id string) (bool, error) {
	return controller.Exists[models.Activity](db, idColumn+" = ?", id)
}

// Link attaches an existing activity to an existing offering.
func Link(db *gorm.DB, link *models.OfferingActivity) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		ok, err := offering.Exists(tx, link.OfferingID)
		if err != nil {
			return err
		}

		if !ok {
			return offering.ErrOfferingNotFound
		}

		if ok, err = Exists(tx, link.ActivityID); err != nil {
			return err
		} else if !ok {
			return ErrActivityNotFound
		}

		linked, err := controller.Exists[models.OfferingActivity](tx,
			"offering_id = ? AND activity_id = ?", link.OfferingID, link.ActivityID)
		if err != nil {
			return err
		}

		if linked {
			return ErrAlreadyLinked
		}

		return controller.Translate(tx.Create(link).Error, ErrLinkNotFound, ErrAlreadyLinked)
	})
}

// Unlink detaches an activity from an offering.
func Unlink(db *gorm.DB, offeringID, activityID string) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Where("offering_id = ? AND activity_id = ?", offeringID, activityID).
		Delete(&models.OfferingActivity{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// UpdateSequence changes the position and mandatory flag of an activity within an offering.
// Nil arguments keep the stored value.
func UpdateSequence(db *gorm.DB, offeringID, activityID string, sequence *int, isMandatory *bool) (*models.OfferingActivity, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var link models.OfferingActivity

	err := db.Where("offering_id = ? AND activity_id = ?", offeringID, activityID).First(&link).Error
	if err != nil {
		return nil, controller.Translate(err, ErrLinkNotFound, controller.ErrConflict)
	}

	changes := map[string]any{}

	if sequence != nil {
		changes["sequence"] = *sequence
		link.Sequence = sequence
	}

	if isMandatory != nil {
		changes["is_mandatory"] = *isMandatory
		link.IsMandatory = *isMandatory
	}

	if len(changes) == 0 {
		return &link, nil
	}

	if err = db.Model(&models.OfferingActivity{}).
		Where("offering_id = ? AND activity_id = ?", offeringID, activityID).
		Updates(changes).Error; err != nil {
		return nil, err
	}

	return &link, nil
}
