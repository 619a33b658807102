package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/offering-catalog/catalog-api/internal/auth"
	"github.com/offering-catalog/catalog-api/internal/config"
	"github.com/offering-catalog/catalog-api/internal/web/session"
)

// IdentityProvider runs the authorization code flow, see auth.OIDCProvider.
type IdentityProvider interface {
	AuthCodeURL(ctx context.Context, state string) (string, error)
	Authenticate(ctx context.Context, code string) (*auth.Identity, *oauth2.Token, error)
	LogoutURL(ctx context.Context) string
}

// Deps are the collaborators shared by all handler services.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Gate     *auth.Gate
	Sessions *session.Store
	IdP      IdentityProvider
}

// Valid reports whether every collaborator is set.
func (d Deps) Valid() bool {
	return d.Cfg != nil && d.DB != nil && d.Gate != nil && d.Sessions != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(router fiber.Router, deps Deps) error
}
