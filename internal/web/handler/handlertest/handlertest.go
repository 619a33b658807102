// Package handlertest runs handler services inside a fiber app backed by an in memory
// database, an in memory session store and a switchable group directory.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/auth"
	"github.com/offering-catalog/catalog-api/internal/config"
	"github.com/offering-catalog/catalog-api/internal/db/dbtest"
	"github.com/offering-catalog/catalog-api/internal/directory"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
	authmw "github.com/offering-catalog/catalog-api/internal/web/middleware/auth"
	"github.com/offering-catalog/catalog-api/internal/web/session"
)

const (
	// Prefix is the API prefix the services are mounted below.
	Prefix = "/api/v1"

	// AdminGroup and ArchitectGroup are the directory groups of the roles.
	AdminGroup     = "catalog-admins"
	ArchitectGroup = "catalog-architects"

	// Emails of the default users.
	AdminEmail     = "admin@example.com"
	ArchitectEmail = "architect@example.com"
	UserEmail      = "user@example.com"

	// FrontendURL is the configured frontend origin.
	FrontendURL = "http://frontend.test"
)

// Env is a running API with its collaborators.
type Env struct {
	t *testing.T

	App      *fiber.App
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions *session.Store
	Deps     handler.Deps

	mu      sync.RWMutex
	members map[string]map[string]bool
}

// Options change the environment before the services are initialized.
type Options struct {
	// Public services are mounted without session middleware.
	Public []handler.Service
	// IdP is passed to the services, nil leaves Deps.IdP unset.
	IdP handler.IdentityProvider
}

// New mounts protected behind the session middleware.
func New(t *testing.T, protected ...handler.Service) *Env {
	t.Helper()

	return NewWithOptions(t, Options{}, protected...)
}

// NewWithOptions mounts the public services and the protected ones.
func NewWithOptions(t *testing.T, opts Options, protected ...handler.Service) *Env {
	t.Helper()

	e := &Env{
		t:  t,
		DB: dbtest.Open(t),
		Cfg: &config.Config{
			Title: "test",
			Webserver: config.Webserver{
				APIPrefix: Prefix,
				Session:   config.Session{ExpiryTime: time.Hour},
			},
			Frontend: config.Frontend{
				URL:         FrontendURL,
				LandingPath: "/catalog",
				LoginPath:   "/login",
				LogoutURL:   FrontendURL + "/bye",
			},
			Directory: config.Directory{
				Kind:                   directory.KindStatic,
				AdminGroup:             AdminGroup,
				SolutionArchitectGroup: ArchitectGroup,
			},
		},
		members: map[string]map[string]bool{
			AdminEmail:     {AdminGroup: true},
			ArchitectEmail: {ArchitectGroup: true},
		},
	}

	e.Sessions = session.NewStore(session.NewMemoryStorage(), session.Options{Expiry: time.Hour})

	resolver := auth.NewResolver(directory.OracleFunc(e.isMember), AdminGroup, ArchitectGroup)

	e.Deps = handler.Deps{
		Cfg:      e.Cfg,
		DB:       e.DB,
		Gate:     auth.NewGate(resolver),
		Sessions: e.Sessions,
		IdP:      opts.IdP,
	}

	e.App = fiber.New(fiber.Config{
		UnescapePath: true,
		ErrorHandler: handler.ErrorHandler,
	})
	api := e.App.Group(Prefix)

	for _, svc := range opts.Public {
		require.NoError(t, svc.Init(api, e.Deps))
	}

	protectedAPI := api.Group("", authmw.New(e.Sessions))
	for _, svc := range protected {
		require.NoError(t, svc.Init(protectedAPI, e.Deps))
	}

	return e
}

func (e *Env) isMember(_ context.Context, email, group string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.members[email][group]
}

// SetGroups replaces the directory groups of email.
func (e *Env) SetGroups(email string, groups ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set := make(map[string]bool, len(groups))
	for _, g := range groups {
		set[g] = true
	}

	e.members[email] = set
}

// Login stores an authenticated session for email and returns its id.
func (e *Env) Login(email string) string {
	e.t.Helper()

	id, err := session.GenerateSessionID()
	require.NoError(e.t, err)

	d := &session.Data{
		Subject:   "sub-" + email,
		Email:     email,
		Name:      email,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(e.t, e.Sessions.Write(id, d, time.Hour))

	return id
}

// Request builds a request below Prefix. body is sent as JSON unless nil.
// A non empty sessionID is sent as the session cookie.
func (e *Env) Request(method, path string, body any, sessionID string) *http.Request {
	e.t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, Prefix+path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	return req
}

// Do sends the request and returns the response.
func (e *Env) Do(req *http.Request) *http.Response {
	e.t.Helper()

	resp, err := e.App.Test(req, -1)
	require.NoError(e.t, err)

	e.t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

// As sends a request as a freshly logged in user, an empty email sends no cookie.
func (e *Env) As(email, method, path string, body any) *http.Response {
	e.t.Helper()

	sessionID := ""
	if email != "" {
		sessionID = e.Login(email)
	}

	return e.Do(e.Request(method, path, body, sessionID))
}

// Decode reads the JSON body of resp into a new T.
func Decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

// Detail returns the detail of an error response.
func Detail(t *testing.T, resp *http.Response) any {
	t.Helper()

	return Decode[handler.ErrorBody](t, resp).Detail
}
