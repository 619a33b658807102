// Package directory answers group membership questions against an external directory.
//
// Every implementation fails closed: transport errors, unexpected responses and
// unknown users all report "not a member" and are logged, never returned.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/offering-catalog/catalog-api/internal/config"
)

const (
	// KindHTTP queries the XML group web service.
	KindHTTP = "http"
	// KindLDAP searches an LDAP server.
	KindLDAP = "ldap"
	// KindStatic answers from the configuration.
	KindStatic = "static"
)

var (
	// ErrAllowAllRequiresDevMode is returned when the allow all static directory is configured outside dev mode.
	ErrAllowAllRequiresDevMode = errors.New("static directory AllowAll is only permitted in dev mode")

	// ErrUnknownKind is returned for an unsupported directory kind.
	ErrUnknownKind = errors.New("unknown directory kind")
)

// Oracle reports whether email is a member of group.
type Oracle interface {
	IsMember(ctx context.Context, email, group string) bool
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context, email, group string) bool

// IsMember implements Oracle.
func (f OracleFunc) IsMember(ctx context.Context, email, group string) bool {
	return f(ctx, email, group)
}

// New builds the oracle selected by cfg.Kind.
func New(cfg config.Directory, devMode bool) (Oracle, error) {
	switch cfg.Kind {
	case KindHTTP:
		return NewHTTPOracle(cfg.HTTP.URL, cfg.Timeout), nil
	case KindLDAP:
		return NewLDAPOracle(cfg.LDAP, cfg.Timeout), nil
	case KindStatic:
		if cfg.Static.AllowAll && !devMode {
			return nil, ErrAllowAllRequiresDevMode
		}

		return NewStaticOracle(cfg.Static), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
