package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/offering-catalog/catalog-api/internal/config"
)

// Identity is the caller as described by the identity provider.
type Identity struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// DisplayName is the name claim, or given and family name joined.
func (i *Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}

	return strings.TrimSpace(i.GivenName + " " + i.FamilyName)
}

// OIDCProvider runs the authorization code flow against one identity provider.
// Discovery happens on first use and is retried on the next call when it fails,
// so the service starts even while the provider is down.
type OIDCProvider struct {
	cfg config.OIDC

	mu         sync.Mutex
	provider   *oidc.Provider
	verifier   *oidc.IDTokenVerifier
	oauth2     oauth2.Config
	endSession string
}

// NewOIDCProvider creates a provider for cfg without contacting it.
func NewOIDCProvider(cfg config.OIDC) *OIDCProvider {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &OIDCProvider{cfg: cfg}
}

// GenerateStateToken generates a random state token for CSRF protection.
func GenerateStateToken() (string, error) {
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// discover loads the provider metadata once.
func (p *OIDCProvider) discover(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provider != nil {
		return nil
	}

	provider, err := oidc.NewProvider(ctx, p.cfg.DiscoveryURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	var claims struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}

	if err = provider.Claims(&claims); err != nil {
		log.Warn().Err(err).Msg("failed to read identity provider metadata")
	}

	p.provider = provider
	p.verifier = provider.Verifier(&oidc.Config{ClientID: p.cfg.ClientID})
	p.endSession = claims.EndSessionEndpoint
	p.oauth2 = oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		RedirectURL:  p.cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       p.cfg.Scopes,
	}

	log.Info().Str("issuer", p.cfg.DiscoveryURL).Msg("identity provider discovered")

	return nil
}

// AuthCodeURL returns the authorization URL carrying state.
func (p *OIDCProvider) AuthCodeURL(ctx context.Context, state string) (string, error) {
	if err := p.discover(ctx); err != nil {
		return "", err
	}

	return p.oauth2.AuthCodeURL(state), nil
}

// Authenticate exchanges code for tokens and extracts the caller's identity,
// first from the verified ID token, then from the user info endpoint.
func (p *OIDCProvider) Authenticate(ctx context.Context, code string) (*Identity, *oauth2.Token, error) {
	if err := p.discover(ctx); err != nil {
		return nil, nil, err
	}

	token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	id, errIDToken := p.identityFromIDToken(ctx, token)
	if errIDToken == nil {
		return id, token, nil
	}

	log.Debug().Err(errIDToken).Msg("no identity in id token, asking user info endpoint")

	id, err = p.identityFromUserInfo(ctx, token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w, %w", ErrNoIdentity, errIDToken, err)
	}

	return id, token, nil
}

// LogoutURL returns the end session endpoint of the provider, empty when it has none.
func (p *OIDCProvider) LogoutURL(ctx context.Context) string {
	if err := p.discover(ctx); err != nil {
		log.Warn().Err(err).Msg("no logout url, identity provider unavailable")
		return ""
	}

	return p.endSession
}

func (p *OIDCProvider) identityFromIDToken(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, ErrNoIDToken
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var id Identity
	if err = idToken.Claims(&id); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	if id.Email == "" {
		return nil, fmt.Errorf("%w: id token has no email", ErrNoIdentity)
	}

	return &id, nil
}

func (p *OIDCProvider) identityFromUserInfo(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	info, err := p.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	var id Identity
	if err = info.Claims(&id); err != nil {
		return nil, fmt.Errorf("failed to parse user info claims: %w", err)
	}

	if id.Subject == "" {
		id.Subject = info.Subject
	}

	if id.Email == "" {
		id.Email = info.Email
	}

	if id.Email == "" {
		return nil, fmt.Errorf("%w: user info has no email", ErrNoIdentity)
	}

	return &id, nil
}
