// Package dbtest opens migrated in memory databases and seeds catalog rows for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/offering-catalog/catalog-api/internal/db/models"
)

// Open creates an in memory SQLite database with foreign keys enabled and the full schema migrated.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	// every connection would get its own memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

// Brand inserts a brand.
func Brand(t testing.TB, db *gorm.DB, name string) *models.Brand {
	t.Helper()

	b := &models.Brand{BrandName: name}
	require.NoError(t, db.Create(b).Error)

	return b
}

// Product inserts a product below brandID.
func Product(t testing.TB, db *gorm.DB, brandID, name string) *models.Product {
	t.Helper()

	p := &models.Product{BrandID: brandID, ProductName: name}
	require.NoError(t, db.Create(p).Error)

	return p
}

// Offering inserts an offering below productID.
func Offering(t testing.TB, db *gorm.DB, productID, name string) *models.Offering {
	t.Helper()

	o := &models.Offering{ProductID: productID, OfferingName: name}
	require.NoError(t, db.Create(o).Error)

	return o
}

// Activity inserts a library activity.
func Activity(t testing.TB, db *gorm.DB, name string) *models.Activity {
	t.Helper()

	a := &models.Activity{ActivityName: name}
	require.NoError(t, db.Create(a).Error)

	return a
}

// Link attaches an activity to an offering.
func Link(t testing.TB, db *gorm.DB, offeringID, activityID string, sequence int) {
	t.Helper()

	require.NoError(t, db.Create(&models.OfferingActivity{
		OfferingID:  offeringID,
		ActivityID:  activityID,
		Sequence:    &sequence,
		IsMandatory: true,
	}).Error)
}

// Staffing inserts a staffing row for an activity.
func Staffing(t testing.TB, db *gorm.DB, activityID, country, role string, band, hours int) *models.StaffingDetail {
	t.Helper()

	s := &models.StaffingDetail{ActivityID: activityID, Country: &country, Role: &role, Band: &band, Hours: &hours}
	require.NoError(t, db.Create(s).Error)

	return s
}

// Pricing inserts a pricing row.
func Pricing(t testing.TB, db *gorm.DB, country, role string, band int, cost, sale float64) *models.PricingDetail {
	t.Helper()

	p := &models.PricingDetail{Country: country, Role: role, Band: band, Cost: &cost, SalePrice: &sale}
	require.NoError(t, db.Create(p).Error)

	return p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
