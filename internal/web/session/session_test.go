package session

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(NewMemoryStorage(), Options{})
	assert.Equal(t, time.Hour, s.Expiry())

	id, err := GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, id, 64)

	in := &Data{
		Subject:   "sub-1",
		Email:     "alice@example.com",
		Roles:     []string{"Administrator", "SolutionArchitect"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, s.Write(id, in, time.Hour))

	out, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, in.Roles, out.Roles)
	assert.True(t, out.Authenticated())

	require.NoError(t, s.Delete(id))

	_, err = s.Read(id)
	require.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	require.NoError(t, s.Delete(id))
	require.NoError(t, s.Delete(""))

	_, err = s.Read("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDataStates(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name          string
		data          *Data
		state         string
		authenticated bool
		stateValid    bool
	}{
		{name: "nil", data: nil},
		{
			name:          "authenticated",
			data:          &Data{Subject: "s", ExpiresAt: now.Add(time.Minute)},
			authenticated: true,
		},
		{
			name: "expired",
			data: &Data{Subject: "s", ExpiresAt: now.Add(-time.Minute)},
		},
		{
			name:       "pending login",
			data:       &Data{State: "abc", StateExpiry: now.Add(time.Minute)},
			state:      "abc",
			stateValid: true,
		},
		{
			name:  "state mismatch",
			data:  &Data{State: "abc", StateExpiry: now.Add(time.Minute)},
			state: "xyz",
		},
		{
			name:  "state expired",
			data:  &Data{State: "abc", StateExpiry: now.Add(-time.Second)},
			state: "abc",
		},
		{
			name: "empty state never matches",
			data: &Data{StateExpiry: now.Add(time.Minute)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.authenticated, tc.data.Authenticated())
			assert.Equal(t, tc.stateValid, tc.data.StateValid(tc.state))
		})
	}
}

func TestCookies(t *testing.T) {
	s := NewStore(NewMemoryStorage(), Options{Expiry: time.Minute, Secure: true, SameSite: "Strict"})

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		s.SetCookie(c, "abc", s.Expiry())
		return nil
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		s.ClearCookie(c)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/set", nil))
	require.NoError(t, err)

	cookie := resp.Header.Get(fiber.HeaderSetCookie)
	assert.Contains(t, cookie, "session=abc")
	assert.Contains(t, cookie, "max-age=60")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "secure")
	assert.Contains(t, cookie, "SameSite=Strict")

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/clear", nil))
	require.NoError(t, err)

	cookie = resp.Header.Get(fiber.HeaderSetCookie)
	assert.Contains(t, cookie, "session=;")
	assert.Contains(t, cookie, "1970")
}

func TestLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := FromLocals(c)
		assert.False(t, ok)

		ToLocals(c, &Data{Email: "alice@example.com"})

		d, ok := FromLocals(c)
		require.True(t, ok)

		return c.SendString(d.Email)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
