package offering

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/db/dbtest"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler/handlertest"
)

func TestOfferingRoutes(t *testing.T) {
	env := handlertest.New(t, &Service{})

	b := dbtest.Brand(t, env.DB, "Automation")
	p := dbtest.Product(t, env.DB, b.ID, "Instana")

	resp := env.As(handlertest.AdminEmail, http.MethodPost, Path, map[string]any{
		"product_id":    p.ID,
		"offering_name": "Instana Quickstart",
		"saas_type":     "SaaS",
		"industry":      "Banking",
		"tag_line":      "Observe everything",
		"sale_price":    25000.5,
		// server assigned
		"offering_id": "chosen-by-client",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	o := handlertest.Decode[models.Offering](t, resp)
	assert.NotEqual(t, "chosen-by-client", o.ID)
	assert.Equal(t, "SaaS", *o.SaasType)
	assert.InDelta(t, 25000.5, *o.SalePrice, 0.001)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path, map[string]any{"product_id": p.ID})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path, map[string]any{"product_id": "missing", "offering_name": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	dbtest.Offering(t, env.DB, p.ID, "Instana Health Check")

	searches := []struct {
		query    string
		expected int
	}{
		{query: "", expected: 2},
		{query: "?query=OBSERVE", expected: 1},
		{query: "?query=instana&industry=Banking", expected: 1},
		{query: "?saas_type=On-Prem", expected: 0},
	}

	for _, s := range searches {
		resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/search"+s.query, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, handlertest.Decode[[]models.Offering](t, resp), s.expected, s.query)
	}

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"?product_id="+p.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, handlertest.Decode[[]models.Offering](t, resp), 2)

	time.Sleep(10 * time.Millisecond)

	resp = env.As(handlertest.AdminEmail, http.MethodPut, Path+"/"+o.ID, UpdateRequest{
		Fields: Fields{Industry: dbtest.Ptr("Retail")},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := handlertest.Decode[models.Offering](t, resp)
	assert.Equal(t, "Retail", *updated.Industry)
	assert.Equal(t, "Instana Quickstart", updated.OfferingName)
	assert.True(t, updated.UpdatedOn.After(o.UpdatedOn))

	resp = env.As(handlertest.UserEmail, http.MethodDelete, Path+"/"+o.ID, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodDelete, Path+"/"+o.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/"+o.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
