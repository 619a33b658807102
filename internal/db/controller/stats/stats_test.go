package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
	"github.com/offering-catalog/catalog-api/internal/db/dbtest"
	"github.com/offering-catalog/catalog-api/internal/db/models"
)

func TestCollectDetailed(t *testing.T) {
	db := dbtest.Open(t)

	auto := dbtest.Brand(t, db, "Automation")
	dbtest.Brand(t, db, "Data")
	p := dbtest.Product(t, db, auto.ID, "Orchestrator")
	dbtest.Product(t, db, auto.ID, "Bots")

	require.NoError(t, db.Create(&models.Offering{ProductID: p.ID, OfferingName: "a", SaasType: dbtest.Ptr("SaaS")}).Error)
	require.NoError(t, db.Create(&models.Offering{ProductID: p.ID, OfferingName: "b", SaasType: dbtest.Ptr("SaaS")}).Error)
	o := dbtest.Offering(t, db, p.ID, "c")

	linked := dbtest.Activity(t, db, "Discovery")
	dbtest.Activity(t, db, "Spare")
	dbtest.Link(t, db, o.ID, linked.ID, 1)
	dbtest.Pricing(t, db, "US", "Consultant", 7, 100, 150)

	got, err := CollectDetailed(db)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.Brands)
	assert.Equal(t, int64(2), got.Products)
	assert.Equal(t, int64(3), got.Offerings)
	assert.Equal(t, int64(2), got.Activities)
	assert.Equal(t, int64(1), got.Unassigned)
	assert.Equal(t, int64(1), got.Pricing)

	assert.Equal(t, []Bucket{{Name: "", Count: 1}, {Name: "SaaS", Count: 2}}, got.OfferingsBySaasType)
	assert.Equal(t, []Bucket{{Name: "Automation", Count: 2}, {Name: "Data", Count: 0}}, got.ProductsByBrand)
}

func TestCollectNilDB(t *testing.T) {
	_, err := Collect(nil)
	assert.ErrorIs(t, err, controller.ErrDBNil)
}
