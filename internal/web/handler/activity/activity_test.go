package activity

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/db/controller/activity"
	"github.com/offering-catalog/catalog-api/internal/db/dbtest"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/web/handler/handlertest"
)

func seedOffering(t *testing.T, env *handlertest.Env) *models.Offering {
	t.Helper()

	b := dbtest.Brand(t, env.DB, "Automation")
	p := dbtest.Product(t, env.DB, b.ID, "Turbonomic")

	return dbtest.Offering(t, env.DB, p.ID, "Turbonomic Quickstart")
}

func TestLibraryRoutes(t *testing.T) {
	env := handlertest.New(t, &Service{})

	resp := env.As(handlertest.ArchitectEmail, http.MethodPost, LibraryPath, CreateRequest{ActivityName: "Discovery"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, LibraryPath, CreateRequest{
		ActivityName: "Discovery",
		Fields:       Fields{EffortHours: dbtest.Ptr(40), Category: dbtest.Ptr("Assessment")},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	a := handlertest.Decode[models.Activity](t, resp)
	assert.Equal(t, 40, *a.EffortHours)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, LibraryPath, CreateRequest{
		ActivityName: "Negative",
		Fields:       Fields{EffortHours: dbtest.Ptr(-1)},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	dbtest.Activity(t, env.DB, "Build")

	resp = env.As(handlertest.UserEmail, http.MethodGet, LibraryPath+"?limit=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	page := handlertest.Decode[[]models.Activity](t, resp)
	require.Len(t, page, 1)
	assert.Equal(t, "Build", page[0].ActivityName)

	resp = env.As(handlertest.UserEmail, http.MethodGet, LibraryPath+"?limit=501", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, LibraryPath+"/unassigned", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, handlertest.Decode[[]models.Activity](t, resp), 2)

	resp = env.As(handlertest.AdminEmail, http.MethodPut, LibraryPath+"/"+a.ID, UpdateRequest{ActivityName: dbtest.Ptr("Discovery workshop")})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Discovery workshop", handlertest.Decode[models.Activity](t, resp).ActivityName)

	resp = env.As(handlertest.AdminEmail, http.MethodDelete, LibraryPath+"/"+a.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, LibraryPath+"/"+a.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLinkLifecycle(t *testing.T) {
	env := handlertest.New(t, &Service{})

	o := seedOffering(t, env)
	a := dbtest.Activity(t, env.DB, "Discovery")

	link := LinkRequest{OfferingID: o.ID, ActivityID: a.ID, Sequence: dbtest.Ptr(1)}

	resp := env.As(handlertest.UserEmail, http.MethodPost, Path+"/link", link)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// solution architects may link
	resp = env.As(handlertest.ArchitectEmail, http.MethodPost, Path+"/link", link)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	created := handlertest.Decode[LinkResponse](t, resp)
	assert.Equal(t, "Activity linked to offering successfully", created.Message)
	assert.True(t, created.IsMandatory, "is_mandatory defaults to true")

	// and so do administrators
	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path+"/link", link)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.As(handlertest.AdminEmail, http.MethodPost, Path+"/link",
		LinkRequest{OfferingID: "missing", ActivityID: a.ID})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"?offering_id="+o.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assigned := handlertest.Decode[[]activity.Assigned](t, resp)
	require.Len(t, assigned, 1)
	assert.Equal(t, 1, *assigned[0].Sequence)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, Path+"?offering_id=missing", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.As(handlertest.UserEmail, http.MethodGet, LibraryPath+"/"+a.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	detail := handlertest.Decode[activity.Detail](t, resp)
	require.Len(t, detail.Offerings, 1)
	assert.Equal(t, "Turbonomic Quickstart", detail.Offerings[0].OfferingName)

	key := "?offering_id=" + o.ID + "&activity_id=" + a.ID

	resp = env.As(handlertest.ArchitectEmail, http.MethodPatch, Path+"/update-sequence"+key,
		SequenceRequest{Sequence: dbtest.Ptr(3), IsMandatory: dbtest.Ptr(false)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	moved := handlertest.Decode[LinkResponse](t, resp)
	assert.Equal(t, "Activity sequence updated successfully", moved.Message)
	assert.Equal(t, 3, *moved.Sequence)
	assert.False(t, moved.IsMandatory)

	// the body is optional, the link stays as it is
	resp = env.As(handlertest.ArchitectEmail, http.MethodPatch, Path+"/update-sequence"+key, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	unchanged := handlertest.Decode[LinkResponse](t, resp)
	assert.Equal(t, 3, *unchanged.Sequence)
	assert.False(t, unchanged.IsMandatory)

	resp = env.As(handlertest.ArchitectEmail, http.MethodPatch, Path+"/update-sequence?offering_id="+o.ID, SequenceRequest{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.As(handlertest.ArchitectEmail, http.MethodDelete, Path+"/unlink"+key, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Activity unlinked from offering successfully", handlertest.Decode[MessageResponse](t, resp).Message)

	resp = env.As(handlertest.ArchitectEmail, http.MethodDelete, Path+"/unlink"+key, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLinkRoleRecheckedLive(t *testing.T) {
	env := handlertest.New(t, &Service{})

	o := seedOffering(t, env)
	a := dbtest.Activity(t, env.DB, "Discovery")
	sessionID := env.Login(handlertest.ArchitectEmail)

	// demoted after login
	env.SetGroups(handlertest.ArchitectEmail)

	resp := env.Do(env.Request(http.MethodPost, Path+"/link",
		LinkRequest{OfferingID: o.ID, ActivityID: a.ID}, sessionID))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
