package auth

import (
	"context"

	"github.com/offering-catalog/catalog-api/internal/directory"
)

// Role is a named permission level.
type Role string

const (
	// RoleAdministrator may change the catalog.
	RoleAdministrator Role = "Administrator"

	// RoleSolutionArchitect may arrange the activities of offerings.
	RoleSolutionArchitect Role = "SolutionArchitect"
)

// RoleSet is the set of roles of one caller. Administrator implies SolutionArchitect.
type RoleSet struct {
	admin bool
	sa    bool
}

// NewRoleSet returns the set of roles, adding SolutionArchitect when Administrator is present.
func NewRoleSet(roles ...Role) RoleSet {
	var rs RoleSet

	for _, r := range roles {
		switch r {
		case RoleAdministrator:
			rs.admin = true
			rs.sa = true
		case RoleSolutionArchitect:
			rs.sa = true
		}
	}

	return rs
}

// ParseRoleSet builds a RoleSet from role names, unknown names are ignored.
func ParseRoleSet(names []string) RoleSet {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, Role(n))
	}

	return NewRoleSet(roles...)
}

// Has reports whether r is in the set.
func (rs RoleSet) Has(r Role) bool {
	switch r {
	case RoleAdministrator:
		return rs.admin
	case RoleSolutionArchitect:
		return rs.sa
	default:
		return false
	}
}

// IsAdministrator reports whether the set holds RoleAdministrator.
func (rs RoleSet) IsAdministrator() bool { return rs.admin }

// IsSolutionArchitect reports whether the set holds RoleSolutionArchitect.
func (rs RoleSet) IsSolutionArchitect() bool { return rs.sa }

// Empty reports whether the set holds no role.
func (rs RoleSet) Empty() bool { return !rs.admin && !rs.sa }

// Strings returns the role names in a stable order.
func (rs RoleSet) Strings() []string {
	out := []string{}

	if rs.admin {
		out = append(out, string(RoleAdministrator))
	}

	if rs.sa {
		out = append(out, string(RoleSolutionArchitect))
	}

	return out
}

// Resolver maps an email to its roles by asking the oracle about two groups.
type Resolver struct {
	oracle     directory.Oracle
	adminGroup string
	saGroup    string
}

// NewResolver returns a resolver querying oracle for the given group names.
func NewResolver(oracle directory.Oracle, adminGroup, saGroup string) *Resolver {
	return &Resolver{
		oracle:     oracle,
		adminGroup: adminGroup,
		saGroup:    saGroup,
	}
}

// Resolve returns the roles of email. Administrator membership short-circuits
// the solution architect lookup. An empty email has no roles.
func (r *Resolver) Resolve(ctx context.Context, email string) RoleSet {
	if email == "" {
		return RoleSet{}
	}

	if r.oracle.IsMember(ctx, email, r.adminGroup) {
		return NewRoleSet(RoleAdministrator)
	}

	if r.oracle.IsMember(ctx, email, r.saGroup) {
		return NewRoleSet(RoleSolutionArchitect)
	}

	return RoleSet{}
}

// IsAdministrator reports whether email is a member of the administrator group.
func (r *Resolver) IsAdministrator(ctx context.Context, email string) bool {
	if email == "" {
		return false
	}

	return r.oracle.IsMember(ctx, email, r.adminGroup)
}

// IsSolutionArchitect reports whether email is an administrator or a member of the solution architect group.
func (r *Resolver) IsSolutionArchitect(ctx context.Context, email string) bool {
	return r.Resolve(ctx, email).IsSolutionArchitect()
}
