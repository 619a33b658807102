package pricing

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/db/controller/pricing"
	"github.com/offering-catalog/catalog-api/internal/db/dbtest"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler/handlertest"
)

func TestPricingRoutes(t *testing.T) {
	env := handlertest.New(t, &Service{})

	create := CreateRequest{Country: "US", Role: "Consultant", Band: dbtest.Ptr(7), Cost: dbtest.Ptr(100.0), SalePrice: dbtest.Ptr(150.0)}

	resp := env.As(handlertest.ArchitectEmail, http.MethodPost, DetailsPath, create)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, DetailsPath, create)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, DetailsPath, create)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// band 0 is a band
	resp = env.As(handlertest.AdminEmail, http.MethodPost, DetailsPath, CreateRequest{Country: "US", Role: "Consultant", Band: dbtest.Ptr(0)})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, DetailsPath, CreateRequest{Country: "US", Role: "Consultant"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, DetailsPath+"?country=US&role=Consultant&band=7", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.InDelta(t, 150.0, *handlertest.Decode[models.PricingDetail](t, resp).SalePrice, 0.001)

	resp = env.As(handlertest.UserEmail, http.MethodGet, DetailsPath+"?country=US&role=Consultant&band=9", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, DetailsPath+"?country=US&role=Consultant", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/all", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, handlertest.Decode[[]models.PricingDetail](t, resp), 2)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/search?band=7", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, handlertest.Decode[[]models.PricingDetail](t, resp), 1)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/search?band=seven", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPut, DetailsPath+"/US/Consultant/7", UpdateRequest{Cost: dbtest.Ptr(110.0)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.InDelta(t, 110.0, *handlertest.Decode[models.PricingDetail](t, resp).Cost, 0.001)

	resp = env.As(handlertest.AdminEmail, http.MethodPut, DetailsPath+"/US/Consultant/x", UpdateRequest{Cost: dbtest.Ptr(1.0)})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodDelete, DetailsPath+"/US/Consultant/7", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodDelete, DetailsPath+"/US/Consultant/7", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPricingPathWithEscapedRole(t *testing.T) {
	env := handlertest.New(t, &Service{})

	dbtest.Pricing(t, env.DB, "US", "Project Manager", 7, 120, 180)

	const path = DetailsPath + "/US/Project%20Manager/7"

	resp := env.As(handlertest.AdminEmail, http.MethodPut, path, UpdateRequest{SalePrice: dbtest.Ptr(190.0)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := handlertest.Decode[models.PricingDetail](t, resp)
	assert.Equal(t, "Project Manager", updated.Role)
	assert.InDelta(t, 190.0, *updated.SalePrice, 0.001)

	// an empty body changes nothing
	resp = env.As(handlertest.AdminEmail, http.MethodPut, path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.InDelta(t, 190.0, *handlertest.Decode[models.PricingDetail](t, resp).SalePrice, 0.001)

	resp = env.As(handlertest.AdminEmail, http.MethodDelete, path, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, DetailsPath+"?country=US&role=Project%20Manager&band=7", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRollup(t *testing.T) {
	env := handlertest.New(t, &Service{})

	b := dbtest.Brand(t, env.DB, "Data")
	p := dbtest.Product(t, env.DB, b.ID, "Db2")
	o := dbtest.Offering(t, env.DB, p.ID, "Db2 Migration")
	a := dbtest.Activity(t, env.DB, "Migrate")
	dbtest.Link(t, env.DB, o.ID, a.ID, 1)
	dbtest.Staffing(t, env.DB, a.ID, "US", "Consultant", 7, 10)
	dbtest.Staffing(t, env.DB, a.ID, "IN", "Architect", 8, 5)
	dbtest.Pricing(t, env.DB, "US", "Consultant", 7, 100, 150)

	resp := env.As(handlertest.UserEmail, http.MethodGet, RollupPath+"/"+o.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	r := handlertest.Decode[pricing.Rollup](t, resp)
	assert.Equal(t, o.ID, r.OfferingID)
	assert.Equal(t, 15, r.TotalHours)
	assert.InDelta(t, 1000.0, r.TotalCost, 0.001)
	assert.InDelta(t, 1500.0, r.TotalSalePrice, 0.001)
	assert.Len(t, r.Breakdown, 1)

	resp = env.As(handlertest.UserEmail, http.MethodGet, RollupPath+"/unstaffed", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, handlertest.Decode[pricing.Rollup](t, resp).TotalHours)
}
