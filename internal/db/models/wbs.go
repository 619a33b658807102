package models

import (
	"time"

	"gorm.io/gorm"
)

// WBS is a work breakdown structure entry.
type WBS struct {
	ID             string `gorm:"column:wbs_id;primaryKey;size:36" json:"wbs_id"`
	WBSDescription string `gorm:"column:wbs_description;size:255;not null" json:"wbs_description"`
	WBSWeeks       *int   `gorm:"column:wbs_weeks" json:"wbs_weeks"`

	ActivityLinks []ActivityWBS `gorm:"foreignKey:WBSID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName implements gorm.Tabler.
func (WBS) TableName() string { return "wbs" }

// BeforeCreate assigns the primary key.
func (w *WBS) BeforeCreate(_ *gorm.DB) error {
	assignID(&w.ID)
	return nil
}

// ActivityWBS associates a WBS entry with an activity.
type ActivityWBS struct {
	ActivityID string    `gorm:"primaryKey;size:36" json:"activity_id"`
	WBSID      string    `gorm:"column:wbs_id;primaryKey;size:36" json:"wbs_id"`
	CreatedOn  time.Time `gorm:"autoCreateTime" json:"created_on"`
}

// TableName implements gorm.Tabler.
func (ActivityWBS) TableName() string { return "activity_wbs" }
