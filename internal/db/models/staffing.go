package models

import "gorm.io/gorm"

// StaffingDetail is the effort of one role/band in one country for an activity.
type StaffingDetail struct {
	ID         string  `gorm:"column:staffing_id;primaryKey;size:36" json:"staffing_id"`
	ActivityID string  `gorm:"size:36;not null;index" json:"activity_id"`
	Country    *string `gorm:"size:50" json:"country"`
	Role       *string `gorm:"size:100" json:"role"`
	Band       *int    `json:"band"`
	Hours      *int    `json:"hours"`
}

// TableName implements gorm.Tabler.
func (StaffingDetail) TableName() string { return "staffing_details" }

// BeforeCreate assigns the primary key.
func (s *StaffingDetail) BeforeCreate(_ *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
