package models

// PricingDetail is the hourly cost and sale price of a role/band in a country.
type PricingDetail struct {
	Country   string   `gorm:"primaryKey;size:50" json:"country"`
	Role      string   `gorm:"primaryKey;size:100" json:"role"`
	Band      int      `gorm:"primaryKey;autoIncrement:false" json:"band"`
	Cost      *float64 `gorm:"type:decimal(12,2)" json:"cost"`
	SalePrice *float64 `gorm:"type:decimal(12,2)" json:"sale_price"`
}

// TableName implements gorm.Tabler.
func (PricingDetail) TableName() string { return "pricing_details" }
