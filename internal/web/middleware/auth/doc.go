// Package auth provides the session middleware of the API.
//
// The middleware loads the session named by the session cookie and puts it into
// fiber.Locals, see session.FromLocals. Requests without a live session end with
// auth.ErrUnauthenticated, which the API error handler answers with 401.
//
// Usage:
//
//	api := app.Group("/api/v1", authmiddleware.New(store))
package auth
