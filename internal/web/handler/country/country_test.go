package country

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler/handlertest"
)

func TestCountryRoutes(t *testing.T) {
	env := handlertest.New(t, &Service{})

	// reads need a session
	resp := env.As("", http.MethodGet, Path, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// writes need an administrator
	for _, email := range []string{handlertest.UserEmail, handlertest.ArchitectEmail} {
		resp = env.As(email, http.MethodPost, Path, CreateRequest{CountryName: "US"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, email)
	}

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path, CreateRequest{CountryName: "US"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	us := handlertest.Decode[models.Country](t, resp)
	assert.NotEmpty(t, us.ID)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path, CreateRequest{CountryName: "US"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path, map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, handlertest.Decode[[]models.Country](t, resp), 1)

	renamed := "United States"
	resp = env.As(handlertest.AdminEmail, http.MethodPut, Path+"/"+us.ID, UpdateRequest{CountryName: &renamed})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, renamed, handlertest.Decode[models.Country](t, resp).CountryName)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/"+us.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodDelete, Path+"/"+us.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"/"+us.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
