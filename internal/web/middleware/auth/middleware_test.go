package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/auth"
	"github.com/offering-catalog/catalog-api/internal/web/session"
)

func TestMiddleware(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), session.Options{})

	require.NoError(t, store.Write("live", &session.Data{
		Subject:   "sub",
		Email:     "alice@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}, time.Hour))
	require.NoError(t, store.Write("stale", &session.Data{
		Subject:   "sub",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, time.Hour))
	require.NoError(t, store.Write("pending", &session.Data{
		State:       "abc",
		StateExpiry: time.Now().Add(time.Minute),
	}, time.Minute))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return c.SendStatus(fiber.StatusUnauthorized)
			}

			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(New(store))
	app.Get("/", func(c *fiber.Ctx) error {
		sess, ok := session.FromLocals(c)
		require.True(t, ok)

		return c.SendString(sess.Email)
	})

	testCases := []struct {
		name         string
		cookie       string
		expectedCode int
	}{
		{name: "no cookie", expectedCode: fiber.StatusUnauthorized},
		{name: "unknown session", cookie: "nope", expectedCode: fiber.StatusUnauthorized},
		{name: "expired session", cookie: "stale", expectedCode: fiber.StatusUnauthorized},
		{name: "pending login", cookie: "pending", expectedCode: fiber.StatusUnauthorized},
		{name: "live session", cookie: "live", expectedCode: fiber.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tc.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCode, resp.StatusCode)
		})
	}
}
