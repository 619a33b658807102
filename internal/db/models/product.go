package models

import "gorm.io/gorm"

// Product belongs to a brand and is removed together with it.
type Product struct {
	ID          string  `gorm:"column:product_id;primaryKey;size:36" json:"product_id"`
	BrandID     string  `gorm:"size:36;not null;index" json:"brand_id"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	Description *string `gorm:"type:text" json:"description"`

	Offerings []Offering `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName implements gorm.Tabler.
func (Product) TableName() string { return "products" }

// BeforeCreate assigns the primary key.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
