// Package session keeps server side session records keyed by an opaque identifier
// carried in the "session" cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "session"

	localsKey = "session"
)

// ErrNotFound is returned when no record exists for a session identifier.
var ErrNotFound = errors.New("session not found")

// Data represents the session data structure.
// A record either holds a pending login (State set) or an authenticated user.
type Data struct {
	ID string `json:"-"`

	Subject    string   `json:"sub,omitempty"`
	Email      string   `json:"email,omitempty"`
	Name       string   `json:"name,omitempty"`
	GivenName  string   `json:"given_name,omitempty"`
	FamilyName string   `json:"family_name,omitempty"`
	Roles      []string `json:"roles,omitempty"`

	AccessToken string    `json:"access_token,omitempty"`
	TokenType   string    `json:"token_type,omitempty"`
	IDToken     string    `json:"id_token,omitempty"`
	TokenExpiry time.Time `json:"token_expiry,omitzero"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`

	State       string    `json:"state,omitempty"`
	StateExpiry time.Time `json:"state_expiry,omitzero"`
}

// Authenticated reports whether d belongs to a logged in user and has not expired.
func (d *Data) Authenticated() bool {
	return d != nil && d.Subject != "" && time.Now().Before(d.ExpiresAt)
}

// StateValid reports whether state matches the pending login state and has not expired.
func (d *Data) StateValid(state string) bool {
	return d != nil && d.State != "" && d.State == state && time.Now().Before(d.StateExpiry)
}

// Options configure the session cookie.
type Options struct {
	Expiry   time.Duration
	Secure   bool
	SameSite string
}

// Store persists session records in a fiber storage backend.
type Store struct {
	storage fiber.Storage
	opts    Options
}

// NewStore returns a store writing to storage.
func NewStore(storage fiber.Storage, opts Options) *Store {
	if storage == nil {
		panic("storage is nil")
	}

	if opts.Expiry <= 0 {
		opts.Expiry = time.Hour
	}

	if opts.SameSite == "" {
		opts.SameSite = fiber.CookieSameSiteLaxMode
	}

	return &Store{storage: storage, opts: opts}
}

// NewMemoryStorage returns the in process storage of fiber's session middleware.
func NewMemoryStorage() fiber.Storage {
	return fibersession.New().Storage
}

// Expiry is the lifetime of an authenticated session.
func (s *Store) Expiry() time.Duration {
	return s.opts.Expiry
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Store) Write(sessionID string, d *Data, exp time.Duration) error {
	out, err := json.Marshal(d)
	if err != nil {
		return err
	}

	return s.storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Store) Read(sessionID string) (*Data, error) {
	if sessionID == "" {
		return nil, ErrNotFound
	}

	byteData, err := s.storage.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if len(byteData) == 0 {
		return nil, ErrNotFound
	}

	d := new(Data)
	if err = json.Unmarshal(byteData, d); err != nil {
		return nil, err
	}

	d.ID = sessionID

	return d, nil
}

// Delete removes the record of sessionID, a missing record is not an error.
func (s *Store) Delete(sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return s.storage.Delete(sessionID)
}

// SetCookie sends the session cookie for sessionID.
func (s *Store) SetCookie(c *fiber.Ctx, sessionID string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: s.opts.SameSite,
	})
}

// ClearCookie expires the session cookie in the browser.
func (s *Store) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: s.opts.SameSite,
	})
}

// ToLocals stores d for the handlers of the current request.
func ToLocals(c *fiber.Ctx, d *Data) {
	c.Locals(localsKey, d)
}

// FromLocals returns the session stored by ToLocals.
func FromLocals(c *fiber.Ctx) (*Data, bool) {
	d, ok := c.Locals(localsKey).(*Data)
	return d, ok && d != nil
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
