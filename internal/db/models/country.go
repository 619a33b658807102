package models

import "gorm.io/gorm"

// Country is a delivery location referenced by staffing and pricing rows.
type Country struct {
	ID          string `gorm:"column:country_id;primaryKey;size:36" json:"country_id"`
	CountryName string `gorm:"size:100;uniqueIndex;not null" json:"country_name"`
}

// TableName implements gorm.Tabler.
func (Country) TableName() string { return "countries" }

// BeforeCreate assigns the primary key.
func (c *Country) BeforeCreate(_ *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
