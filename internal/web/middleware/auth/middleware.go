package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/offering-catalog/catalog-api/internal/auth"
	"github.com/offering-catalog/catalog-api/internal/web/session"
)

// New returns a Fiber middleware that requires an authenticated session.
func New(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessData, err := Load(c, store)
		if err != nil {
			return err
		}

		if !sessData.Authenticated() {
			return auth.ErrUnauthenticated
		}

		session.ToLocals(c, sessData)

		return c.Next()
	}
}

// Load reads the session of the request's cookie. A missing cookie or record is
// auth.ErrUnauthenticated, storage failures are returned as is.
func Load(c *fiber.Ctx, store *session.Store) (*session.Data, error) {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return nil, auth.ErrUnauthenticated
	}

	sessData, err := store.Read(sessionID)

	switch {
	case errors.Is(err, session.ErrNotFound):
		return nil, auth.ErrUnauthenticated
	case err != nil:
		log.Error().Err(err).Msg("failed to read session")
		return nil, err
	}

	return sessData, nil
}
