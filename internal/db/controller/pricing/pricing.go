// Package pricing provides operations on hourly pricing and the offering cost roll up.
package pricing

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/controller/staffing"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

const keyQuery = "country = ? AND role = ? AND band = ?"

var (
	// ErrPricingNotFound is returned when no pricing exists for the country, role and band.
	ErrPricingNotFound = fmt.Errorf("pricing details %w", controller.ErrNotFound)

	// ErrPricingExists is returned when creating pricing for an existing country, role and band.
	ErrPricingExists = fmt.Errorf("pricing for this country, role and band %w", controller.ErrConflict)
)

// Key identifies one pricing row.
type Key struct {
	Country string
	Role    string
	Band    int
}

// Filter narrows Search, empty fields and a nil band are ignored.
type Filter struct {
	Country string
	Role    string
	Band    *int
}

// Line is one priced staffing row of a Rollup.
type Line struct {
	StaffingID       string  `json:"staffing_id"`
	Country          string  `json:"country"`
	Role             string  `json:"role"`
	Band             int     `json:"band"`
	Hours            int     `json:"hours"`
	CostPerHour      float64 `json:"cost_per_hour"`
	SalePricePerHour float64 `json:"sale_price_per_hour"`
	TotalCost        float64 `json:"total_cost"`
	TotalSalePrice   float64 `json:"total_sale_price"`
}

// Rollup sums hours and prices over every staffing row of an offering.
type Rollup struct {
	OfferingID     string  `json:"offering_id"`
	TotalHours     int     `json:"total_hours"`
	TotalCost      float64 `json:"total_cost"`
	TotalSalePrice float64 `json:"total_sale_price"`
	Breakdown      []Line  `json:"breakdown"`
}

// List returns every pricing row.
func List(db *gorm.DB) ([]models.PricingDetail, error) {
	return controller.FindAll[models.PricingDetail](db, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("country").Order("role").Order("band")
	})
}

// Search returns the pricing rows matching f.
func Search(db *gorm.DB, f Filter) ([]models.PricingDetail, error) {
	return controller.FindAll[models.PricingDetail](db, func(tx *gorm.DB) *gorm.DB {
		if f.Country != "" {
			tx = tx.Where("country = ?", f.Country)
		}

		if f.Role != "" {
			tx = tx.Where("role = ?", f.Role)
		}

		if f.Band != nil {
			tx = tx.Where("band = ?", *f.Band)
		}

		return tx.Order("country").Order("role").Order("band")
	})
}

// Get retrieves the pricing of one country, role and band.
func Get(db *gorm.DB, k Key) (*models.PricingDetail, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.PricingDetail
	if err := db.Where(keyQuery, k.Country, k.Role, k.Band).First(&p).Error; err != nil {
		return nil, controller.Translate(err, ErrPricingNotFound, ErrPricingExists)
	}

	return &p, nil
}

// Create inserts p, the country, role and band triple must be new.
func Create(db *gorm.DB, p *models.PricingDetail) error {
	taken, err := controller.Exists[models.PricingDetail](db, keyQuery, p.Country, p.Role, p.Band)
	if err != nil {
		return err
	}

	if taken {
		return ErrPricingExists
	}

	return controller.Translate(db.Create(p).Error, ErrPricingNotFound, ErrPricingExists)
}

// Update applies the changed columns of one pricing row. Changing country, role or band
// moves the row to the new key, which must be free.
func Update(db *gorm.DB, k Key, changes map[string]any) (*models.PricingDetail, error) {
	p, err := Get(db, k)
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		return p, nil
	}

	next := k
	if v, ok := changes["country"].(string); ok {
		next.Country = v
	}

	if v, ok := changes["role"].(string); ok {
		next.Role = v
	}

	if v, ok := changes["band"].(int); ok {
		next.Band = v
	}

	if next != k {
		taken, errExists := controller.Exists[models.PricingDetail](db, keyQuery, next.Country, next.Role, next.Band)
		if errExists != nil {
			return nil, errExists
		}

		if taken {
			return nil, ErrPricingExists
		}
	}

	if err = db.Model(&models.PricingDetail{}).
		Where(keyQuery, k.Country, k.Role, k.Band).
		Updates(changes).Error; err != nil {
		return nil, controller.Translate(err, ErrPricingNotFound, ErrPricingExists)
	}

	return Get(db, next)
}

// Delete removes one pricing row.
func Delete(db *gorm.DB, k Key) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Where(keyQuery, k.Country, k.Role, k.Band).Delete(&models.PricingDetail{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPricingNotFound
	}

	return nil
}

// TotalHoursAndPrices rolls up the staffing of an offering. Hours of every staffing row count,
// cost and sale price only where pricing exists for the row's country, role and band.
func TotalHoursAndPrices(db *gorm.DB, offeringID string) (*Rollup, error) {
	rows, err := staffing.ForOffering(db, offeringID)
	if err != nil {
		return nil, err
	}

	prices, err := List(db)
	if err != nil {
		return nil, err
	}

	byKey := make(map[Key]models.PricingDetail, len(prices))
	for _, p := range prices {
		byKey[Key{Country: p.Country, Role: p.Role, Band: p.Band}] = p
	}

	out := &Rollup{OfferingID: offeringID, Breakdown: []Line{}}

	for _, s := range rows {
		hours := deref(s.Hours)
		out.TotalHours += hours

		k := Key{Country: deref(s.Country), Role: deref(s.Role), Band: deref(s.Band)}

		p, ok := byKey[k]
		if !ok {
			continue
		}

		line := Line{
			StaffingID:       s.ID,
			Country:          k.Country,
			Role:             k.Role,
			Band:             k.Band,
			Hours:            hours,
			CostPerHour:      deref(p.Cost),
			SalePricePerHour: deref(p.SalePrice),
		}
		line.TotalCost = line.CostPerHour * float64(hours)
		line.TotalSalePrice = line.SalePricePerHour * float64(hours)

		out.TotalCost += line.TotalCost
		out.TotalSalePrice += line.TotalSalePrice
		out.Breakdown = append(out.Breakdown, line)
	}

	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
