package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/offering-catalog/catalog-api/internal/auth"
	"github.com/offering-catalog/catalog-api/internal/db/controller"
)

var (
	// ErrInvalidInput is returned for malformed bodies and query parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured is returned by handler services missing a collaborator.
	ErrNotConfigured = errors.New(ErrNilACDFatalLogMsg)
)

// ErrorBody is the JSON document of every error response.
type ErrorBody struct {
	Detail any `json:"detail"`
}

// Status maps err onto an HTTP status code.
func Status(err error) int {
	var (
		fe *fiber.Error
		ve *ValidationError
	)

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, controller.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, controller.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, auth.ErrUpstreamUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &ve), errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber error handler of the API. It answers with ErrorBody.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := Status(err)

	var (
		detail any = err.Error()
		ve     *ValidationError
	)

	switch {
	case errors.As(err, &ve):
		detail = ve.Fields
	case code == fiber.StatusInternalServerError:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")

		detail = "internal server error"
	}

	return c.Status(code).JSON(ErrorBody{Detail: detail})
}
