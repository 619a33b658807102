// Package oidc provides handlers for the OpenID Connect (OIDC) login flow.
//
// The flow keeps all state server side:
//   - login stores a random state in a new pending session and redirects to the provider
//   - callback consumes the pending session, checks the state, exchanges the code,
//     resolves the caller's roles and stores an authenticated session under a new id
//   - check, me and validate report on the current session
//
// Failed callbacks never answer with an error status, they redirect to the frontend
// login page with an error query parameter.
//
// Routes, relative to the API prefix:
//
//	GET /login          - initiate the login flow
//	GET /auth/callback  - handle the provider callback
//	GET /check          - {authenticated, user}
//	GET /me, GET /user  - claims and live roles of the caller
//	GET /validate       - {valid, expires_at}
package oidc
