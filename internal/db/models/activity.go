package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is a reusable unit of delivery work kept in the activity library.
// Offerings reference activities through OfferingActivity.
type Activity struct {
	ID                     string   `gorm:"column:activity_id;primaryKey;size:36" json:"activity_id"`
	ActivityName           string   `gorm:"size:255;not null" json:"activity_name"`
	Brand                  *string  `gorm:"size:150" json:"brand"`
	ProductName            *string  `gorm:"size:255" json:"product_name"`
	Category               *string  `gorm:"size:100" json:"category"`
	PartNumbers            *string  `gorm:"size:100" json:"part_numbers"`
	DurationWeeks          *int     `json:"duration_weeks"`
	DurationHours          *int     `json:"duration_hours"`
	Outcome                *string  `gorm:"type:text" json:"outcome"`
	Description            *string  `gorm:"type:text" json:"description"`
	EffortHours            *int     `json:"effort_hours"`
	FixedPrice             *float64 `gorm:"type:decimal(12,2)" json:"fixed_price"`
	ClientResponsibilities *string  `gorm:"type:text" json:"client_responsibilities"`
	IBMResponsibilities    *string  `gorm:"column:ibm_responsibilities;type:text" json:"ibm_responsibilities"`
	Assumptions            *string  `gorm:"type:text" json:"assumptions"`
	Deliverables           *string  `gorm:"type:text" json:"deliverables"`
	CompletionCriteria     *string  `gorm:"type:text" json:"completion_criteria"`
	WBS                    *string  `gorm:"column:wbs;size:100" json:"wbs"`
	Week                   *int     `json:"week"`

	CreatedOn time.Time `gorm:"autoCreateTime" json:"created_on"`
	UpdatedOn time.Time `gorm:"autoUpdateTime" json:"updated_on"`

	OfferingLinks   []OfferingActivity `gorm:"foreignKey:ActivityID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	StaffingDetails []StaffingDetail   `gorm:"foreignKey:ActivityID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	WBSLinks        []ActivityWBS      `gorm:"foreignKey:ActivityID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName implements gorm.Tabler.
func (Activity) TableName() string { return "activities" }

// BeforeCreate assigns the primary key.
func (a *Activity) BeforeCreate(_ *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// OfferingActivity links an activity to an offering at a position in its delivery plan.
type OfferingActivity struct {
	OfferingID  string    `gorm:"primaryKey;size:36" json:"offering_id"`
	ActivityID  string    `gorm:"primaryKey;size:36" json:"activity_id"`
	Sequence    *int      `json:"sequence"`
	IsMandatory bool      `gorm:"not null" json:"is_mandatory"`
	CreatedOn   time.Time `gorm:"autoCreateTime" json:"created_on"`
}

// TableName implements gorm.Tabler.
func (OfferingActivity) TableName() string { return "offering_activities" }
