// Package logout ends the caller's session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/offering-catalog/catalog-api/internal/config"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
	"github.com/offering-catalog/catalog-api/internal/web/session"
)

// Path is the logout route, relative to the API prefix.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	sessions *session.Store
	idp      handler.IdentityProvider
}

// Handler is the logout handler.
var Handler = Service{}

// Response is the body of a logout.
type Response struct {
	Message   string `json:"message"`
	LogoutURL string `json:"logout_url"`
}

// Init initializes the logout handler.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || deps.Cfg == nil || deps.Sessions == nil {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.cfg = deps.Cfg
	s.sessions = deps.Sessions
	s.idp = deps.IdP

	// logout route (outside auth middleware protection)
	router.Get(Path, s.Logout)
	router.Post(Path, s.Logout)

	return nil
}

// Logout handles user logout by clearing the session. Logging out twice is fine.
func (s *Service) Logout(c *fiber.Ctx) error {
	// Get session cookie
	if sessionID := c.Cookies(session.CookieName); sessionID != "" {
		// Delete session from store
		if err := s.sessions.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	// Clear the session cookie
	s.sessions.ClearCookie(c)

	logoutURL := ""
	if s.idp != nil {
		logoutURL = s.idp.LogoutURL(c.UserContext())
	}

	if logoutURL == "" {
		logoutURL = s.cfg.Frontend.LogoutURL
	}

	return c.JSON(Response{Message: "Logged out successfully", LogoutURL: logoutURL})
}
