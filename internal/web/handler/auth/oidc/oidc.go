package oidc

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/offering-catalog/catalog-api/internal/auth"
	"github.com/offering-catalog/catalog-api/internal/config"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
	authmw "github.com/offering-catalog/catalog-api/internal/web/middleware/auth"
	"github.com/offering-catalog/catalog-api/internal/web/session"
)

const (
	// LoginPath initiates the login flow.
	LoginPath = handler.RootPath + "login"

	// CallbackPath receives the provider's redirect.
	CallbackPath = handler.RootPath + "auth/callback"

	// StateTTL bounds how long a pending login waits for its callback.
	StateTTL = 5 * time.Minute

	// error codes passed to the frontend login page.
	errStateMismatch = "state_mismatch"
	errAuthFailed    = "auth_failed"
)

// Service is the OIDC handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	sessions *session.Store
	resolver *auth.Resolver
	idp      handler.IdentityProvider
}

// Handler is the OIDC handler.
var Handler = Service{}

// UserView is the caller as reported by check and me.
type UserView struct {
	Sub        string   `json:"sub"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	GivenName  string   `json:"given_name"`
	FamilyName string   `json:"family_name"`
	Roles      []string `json:"roles"`
}

// MeView adds the live roles of the caller to UserView.
type MeView struct {
	UserView

	IsAdmin             bool `json:"is_admin"`
	IsSolutionArchitect bool `json:"is_solution_architect"`
	HasCatalogAccess    bool `json:"has_catalog_access"`
}

// Init initializes the OIDC handler. Routes are registered on router without session protection.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || !deps.Valid() || deps.IdP == nil {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)
		return handler.ErrNotConfigured
	}

	s.cfg = deps.Cfg
	s.sessions = deps.Sessions
	s.resolver = deps.Gate.Resolver()
	s.idp = deps.IdP

	requireSession := authmw.New(s.sessions)

	router.Get(LoginPath, s.Login)
	router.Get(CallbackPath, s.Callback)
	router.Get(handler.RootPath+"check", s.Check)
	router.Get(handler.RootPath+"me", requireSession, s.Me)
	router.Get(handler.RootPath+"user", requireSession, s.Me)
	router.Get(handler.RootPath+"validate", requireSession, s.Validate)

	return nil
}

// Login initiates the OIDC login flow.
func (s *Service) Login(c *fiber.Ctx) error {
	if old := c.Cookies(session.CookieName); old != "" {
		if err := s.sessions.Delete(old); err != nil {
			log.Warn().Err(err).Msg("failed to delete previous session")
		}
	}

	// the previous record is gone, the browser must not keep pointing at it
	abort := func(err error) error {
		s.sessions.ClearCookie(c)
		return err
	}

	// Generate state token for CSRF protection
	state, err := auth.GenerateStateToken()
	if err != nil {
		return abort(err)
	}

	authURL, err := s.idp.AuthCodeURL(c.UserContext(), state)
	if err != nil {
		log.Error().Err(err).Msg("failed to build authorization url")
		return abort(err)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return abort(err)
	}

	pending := &session.Data{State: state, StateExpiry: time.Now().Add(StateTTL)}
	if err = s.sessions.Write(sessionID, pending, StateTTL); err != nil {
		return abort(err)
	}

	s.sessions.SetCookie(c, sessionID, StateTTL)

	return c.Redirect(authURL, fiber.StatusFound)
}

// Callback handles the OIDC callback.
func (s *Service) Callback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	// the pending session is single use
	pending, err := authmw.Load(c, s.sessions)
	if err == nil {
		if errDelete := s.sessions.Delete(pending.ID); errDelete != nil {
			log.Warn().Err(errDelete).Msg("failed to delete pending session")
		}
	}

	if idpErr := c.Query("error"); idpErr != "" {
		log.Warn().Str("error", idpErr).Str("description", c.Query("error_description")).
			Msg("identity provider returned an error")

		return s.fail(c, idpErr)
	}

	if !pending.StateValid(c.Query("state")) {
		log.Warn().Msg("missing, expired or mismatched state in OIDC callback")
		return s.fail(c, errStateMismatch)
	}

	code := c.Query("code")
	if code == "" {
		return s.fail(c, errAuthFailed)
	}

	id, token, err := s.idp.Authenticate(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("OIDC authentication failed")
		return s.fail(c, errAuthFailed)
	}

	roles := s.resolver.Resolve(ctx, id.Email)

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.fail(c, errAuthFailed)
	}

	expiry := s.sessions.Expiry()
	userSession := newSessionData(id, token, roles, time.Now().Add(expiry))

	if err = s.sessions.Write(sessionID, userSession, expiry); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.fail(c, errAuthFailed)
	}

	s.sessions.SetCookie(c, sessionID, expiry)

	log.Info().Str("email", id.Email).Strs("roles", roles.Strings()).Msg("User logged in successfully via OIDC")

	return c.Redirect(s.cfg.Frontend.URL+s.cfg.Frontend.LandingPath, fiber.StatusFound)
}

// Check reports whether the request carries a live session. It never fails with 401.
func (s *Service) Check(c *fiber.Ctx) error {
	sess, err := authmw.Load(c, s.sessions)
	if err != nil || !sess.Authenticated() {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{"authenticated": true, "user": userView(sess)})
}

// Me returns the caller's claims and live roles.
func (s *Service) Me(c *fiber.Ctx) error {
	sess, ok := session.FromLocals(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	roles := s.resolver.Resolve(c.UserContext(), sess.Email)

	return c.JSON(MeView{
		UserView:            userView(sess),
		IsAdmin:             roles.IsAdministrator(),
		IsSolutionArchitect: roles.IsSolutionArchitect(),
		HasCatalogAccess:    true,
	})
}

// Validate confirms the session is live.
func (s *Service) Validate(c *fiber.Ctx) error {
	sess, ok := session.FromLocals(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	return c.JSON(fiber.Map{"valid": true, "expires_at": sess.ExpiresAt})
}

// fail clears the session cookie and sends the browser back to the login page.
func (s *Service) fail(c *fiber.Ctx, reason string) error {
	s.sessions.ClearCookie(c)

	target := s.cfg.Frontend.URL + s.cfg.Frontend.LoginPath + "?error=" + url.QueryEscape(reason)

	return c.Redirect(target, fiber.StatusFound)
}

func newSessionData(id *auth.Identity, token *oauth2.Token, roles auth.RoleSet, expiresAt time.Time) *session.Data {
	subject := id.Subject
	if subject == "" {
		subject = id.Email
	}

	d := &session.Data{
		Subject:    subject,
		Email:      id.Email,
		Name:       id.DisplayName(),
		GivenName:  id.GivenName,
		FamilyName: id.FamilyName,
		Roles:      roles.Strings(),
		ExpiresAt:  expiresAt,
	}

	if token != nil {
		d.AccessToken = token.AccessToken
		d.TokenType = token.TokenType
		d.TokenExpiry = token.Expiry

		if raw, ok := token.Extra("id_token").(string); ok {
			d.IDToken = raw
		}
	}

	return d
}

func userView(sess *session.Data) UserView {
	roles := sess.Roles
	if roles == nil {
		roles = []string{}
	}

	return UserView{
		Sub:        sess.Subject,
		Email:      sess.Email,
		Name:       sess.Name,
		GivenName:  sess.GivenName,
		FamilyName: sess.FamilyName,
		Roles:      roles,
	}
}
