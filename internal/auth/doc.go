// Package auth resolves who a caller is and what the caller may do.
//
// Identity comes from an OpenID Connect authorization code login, see OIDCProvider.
// Permissions come from group membership in an external directory: the Resolver asks
// a directory.Oracle whether the caller's email is in the administrator group or the
// solution architect group. Administrators are always solution architects too.
//
// The Gate turns the resolver into fiber middleware. Membership is checked live on
// every gated request, and any oracle failure counts as "not a member":
//
//	gate := auth.NewGate(auth.NewResolver(oracle, cfg.Directory.AdminGroup, cfg.Directory.SolutionArchitectGroup))
//	api.Post("/brands", gate.RequireAdministrator(), createBrand)
//	api.Post("/activities/link", gate.RequireSolutionArchitect(), link)
package auth
