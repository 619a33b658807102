package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/db/dbtest"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

func TestForeignKeysPointAtParents(t *testing.T) {
	db := dbtest.Open(t)
	m := db.Migrator()

	testCases := []struct {
		name     string
		model    any
		relation string
	}{
		{name: "brand products", model: &models.Brand{}, relation: "Products"},
		{name: "product offerings", model: &models.Product{}, relation: "Offerings"},
		{name: "offering activity links", model: &models.Offering{}, relation: "ActivityLinks"},
		{name: "activity offering links", model: &models.Activity{}, relation: "OfferingLinks"},
		{name: "activity staffing", model: &models.Activity{}, relation: "StaffingDetails"},
		{name: "activity wbs links", model: &models.Activity{}, relation: "WBSLinks"},
		{name: "wbs activity links", model: &models.WBS{}, relation: "ActivityLinks"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, m.HasConstraint(tc.model, tc.relation))
		})
	}

	// parents carry no foreign key of their own
	var parentFKs int64
	require.NoError(t, db.Raw(
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ? AND sql LIKE '%FOREIGN KEY%'",
		[]string{"brands", "activities", "wbs"},
	).Scan(&parentFKs).Error)
	assert.Zero(t, parentFKs)
}

func TestInsertAndCascade(t *testing.T) {
	db := dbtest.Open(t)

	b := dbtest.Brand(t, db, "Automation")
	p := dbtest.Product(t, db, b.ID, "Instana")
	o := dbtest.Offering(t, db, p.ID, "Observability Quickstart")
	a := dbtest.Activity(t, db, "Discovery")
	dbtest.Link(t, db, o.ID, a.ID, 1)
	dbtest.Staffing(t, db, a.ID, "US", "Consultant", 7, 40)

	w := &models.WBS{WBSDescription: "Plan"}
	require.NoError(t, db.Create(w).Error)
	require.NoError(t, db.Create(&models.ActivityWBS{ActivityID: a.ID, WBSID: w.ID}).Error)

	// children of missing parents are rejected
	assert.Error(t, db.Create(&models.Product{BrandID: "missing", ProductName: "Orphan"}).Error)

	require.NoError(t, db.Delete(&models.Brand{}, "brand_id = ?", b.ID).Error)

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)

		return n
	}

	assert.Zero(t, count(&models.Product{}))
	assert.Zero(t, count(&models.Offering{}))
	assert.Zero(t, count(&models.OfferingActivity{}))
	assert.Equal(t, int64(1), count(&models.Activity{}))

	require.NoError(t, db.Delete(&models.Activity{}, "activity_id = ?", a.ID).Error)

	assert.Zero(t, count(&models.StaffingDetail{}))
	assert.Zero(t, count(&models.ActivityWBS{}))
	assert.Equal(t, int64(1), count(&models.WBS{}))
}
