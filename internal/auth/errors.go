package auth

import "errors"

var (
	// ErrUnauthenticated is returned when a request carries no live session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the caller lacks the role required by a route.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrUpstreamUnavailable is returned when the identity provider can not be reached.
	ErrUpstreamUnavailable = errors.New("identity provider unavailable")

	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrNoIdentity is returned when neither the ID token nor the user info endpoint yield an identity.
	ErrNoIdentity = errors.New("no identity claims available")
)
