package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/offering-catalog/catalog-api/internal/web/session"
)

// Gate guards routes by role. It expects the session middleware to have put the
// caller's session into the request locals.
type Gate struct {
	resolver *Resolver
}

// NewGate returns a gate deciding with resolver.
func NewGate(resolver *Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// Resolver returns the resolver of the gate.
func (g *Gate) Resolver() *Resolver {
	return g.resolver
}

// RequireAdministrator allows live members of the administrator group.
func (g *Gate) RequireAdministrator() fiber.Handler {
	return g.require(RoleAdministrator, g.resolver.IsAdministrator)
}

// RequireSolutionArchitect allows live administrators and solution architects.
func (g *Gate) RequireSolutionArchitect() fiber.Handler {
	return g.require(RoleSolutionArchitect, g.resolver.IsSolutionArchitect)
}

func (g *Gate) require(role Role, allowed func(ctx context.Context, email string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := session.FromLocals(c)
		if !ok || !sess.Authenticated() {
			return ErrUnauthenticated
		}

		if sess.Email == "" || !allowed(c.UserContext(), sess.Email) {
			log.Warn().Str("email", sess.Email).Str("role", string(role)).
				Str("path", c.Path()).Msg("User lacks required role")

			return ErrForbidden
		}

		return c.Next()
	}
}
