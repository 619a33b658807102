package models

import "gorm.io/gorm"

// Brand is the top level of the catalog hierarchy.
type Brand struct {
	ID          string  `gorm:"column:brand_id;primaryKey;size:36" json:"brand_id"`
	BrandName   string  `gorm:"size:255;uniqueIndex;not null" json:"brand_name"`
	Description *string `gorm:"type:text" json:"description"`

	Products []Product `gorm:"foreignKey:BrandID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName implements gorm.Tabler.
func (Brand) TableName() string { return "brands" }

// BeforeCreate assigns the primary key.
func (b *Brand) BeforeCreate(_ *gorm.DB) error {
	assignID(&b.ID)
	return nil
}
