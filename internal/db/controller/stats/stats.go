// Package stats computes catalog statistics for administrators.
package stats

import (
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

// Counts holds the number of rows per catalog table.
type Counts struct {
	Countries   int64 `json:"countries"`
	Brands      int64 `json:"brands"`
	Products    int64 `json:"products"`
	Offerings   int64 `json:"offerings"`
	Activities  int64 `json:"activities"`
	Staffing    int64 `json:"staffing_details"`
	Pricing     int64 `json:"pricing_details"`
	WBS         int64 `json:"wbs"`
	Unassigned  int64 `json:"unassigned_activities"`
	ActivityUse int64 `json:"offering_activities"`
}

// Bucket is one group of a breakdown.
type Bucket struct {
	Name  string `gorm:"column:name" json:"name"`
	Count int64  `gorm:"column:total" json:"count"`
}

// Detailed extends Counts with breakdowns.
type Detailed struct {
	Counts

	OfferingsBySaasType []Bucket `json:"offerings_by_saas_type"`
	ProductsByBrand     []Bucket `json:"products_by_brand"`
}

// Collect counts the rows of every catalog table.
func Collect(db *gorm.DB) (*Counts, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	c := &Counts{}

	targets := []struct {
		model any
		dst   *int64
	}{
		{&models.Country{}, &c.Countries},
		{&models.Brand{}, &c.Brands},
		{&models.Product{}, &c.Products},
		{&models.Offering{}, &c.Offerings},
		{&models.Activity{}, &c.Activities},
		{&models.OfferingActivity{}, &c.ActivityUse},
		{&models.StaffingDetail{}, &c.Staffing},
		{&models.PricingDetail{}, &c.Pricing},
		{&models.WBS{}, &c.WBS},
	}

	for _, t := range targets {
		if err := db.Model(t.model).Count(t.dst).Error; err != nil {
			return nil, err
		}
	}

	linked := db.Model(&models.OfferingActivity{}).Select("activity_id")
	if err := db.Model(&models.Activity{}).Where("activity_id NOT IN (?)", linked).Count(&c.Unassigned).Error; err != nil {
		return nil, err
	}

	return c, nil
}

// CollectDetailed adds the offerings by SaaS type and products by brand breakdowns to Collect.
func CollectDetailed(db *gorm.DB) (*Detailed, error) {
	c, err := Collect(db)
	if err != nil {
		return nil, err
	}

	d := &Detailed{Counts: *c, OfferingsBySaasType: []Bucket{}, ProductsByBrand: []Bucket{}}

	err = db.Model(&models.Offering{}).
		Select("COALESCE(saas_type, '') AS name, COUNT(*) AS total").
		Group("saas_type").
		Order("name").
		Scan(&d.OfferingsBySaasType).Error
	if err != nil {
		return nil, err
	}

	err = db.Table("brands").
		Select("brands.brand_name AS name, COUNT(products.product_id) AS total").
		Joins("LEFT JOIN products ON products.brand_id = brands.brand_id").
		Group("brands.brand_id, brands.brand_name").
		Order("brands.brand_name").
		Scan(&d.ProductsByBrand).Error
	if err != nil {
		return nil, err
	}

	return d, nil
}
