package staffing

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/db/dbtest"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler/handlertest"
)

func TestStaffingRoutes(t *testing.T) {
	env := handlertest.New(t, &Service{})

	b := dbtest.Brand(t, env.DB, "Data")
	p := dbtest.Product(t, env.DB, b.ID, "watsonx.data")
	o := dbtest.Offering(t, env.DB, p.ID, "Lakehouse Pilot")
	a := dbtest.Activity(t, env.DB, "Pilot")
	dbtest.Link(t, env.DB, o.ID, a.ID, 1)

	resp := env.As(handlertest.AdminEmail, http.MethodPost, Path, CreateRequest{ActivityID: "missing"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path, map[string]any{"country": "US"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path, CreateRequest{
		ActivityID: a.ID,
		Fields: Fields{
			Country: dbtest.Ptr("US"),
			Role:    dbtest.Ptr("Consultant"),
			Band:    dbtest.Ptr(7),
			Hours:   dbtest.Ptr(10),
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	row := handlertest.Decode[models.StaffingDetail](t, resp)

	for _, path := range []string{"/all", "/activity/" + a.ID, "/" + o.ID} {
		resp = env.As(handlertest.UserEmail, http.MethodGet, Path+path, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		assert.Len(t, handlertest.Decode[[]models.StaffingDetail](t, resp), 1, path)
	}

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/detail/"+row.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, *handlertest.Decode[models.StaffingDetail](t, resp).Hours)

	resp = env.As(handlertest.AdminEmail, http.MethodPut, Path+"/"+row.ID, UpdateRequest{Fields: Fields{Hours: dbtest.Ptr(12)}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := handlertest.Decode[models.StaffingDetail](t, resp)
	assert.Equal(t, 12, *updated.Hours)
	assert.Equal(t, "Consultant", *updated.Role)

	resp = env.As(handlertest.ArchitectEmail, http.MethodDelete, Path+"/"+row.ID, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodDelete, Path+"/"+row.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/detail/"+row.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
