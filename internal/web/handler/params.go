package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/offering-catalog/catalog-api/internal/db/controller"
)

// Page reads the skip and limit query parameters. limit must be within 1 and MaxLimit.
func Page(c *fiber.Ctx) (controller.Page, error) {
	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		return controller.Page{}, err
	}

	limit, err := intQuery(c, "limit", DefaultLimit)
	if err != nil {
		return controller.Page{}, err
	}

	if skip < 0 {
		return controller.Page{}, fmt.Errorf("%w: skip must not be negative", ErrInvalidInput)
	}

	if limit < 1 || limit > MaxLimit {
		return controller.Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxLimit)
	}

	return controller.Page{Skip: skip, Limit: limit}, nil
}

// OptionalInt reads an integer query parameter, nil when absent.
func OptionalInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidInput, key)
	}

	return &n, nil
}

// RequiredQuery reads a query parameter that must be present.
func RequiredQuery(c *fiber.Ctx, key string) (string, error) {
	v := c.Query(key)
	if v == "" {
		return "", fmt.Errorf("%w: query parameter %s is required", ErrInvalidInput, key)
	}

	return v, nil
}

func intQuery(c *fiber.Ctx, key string, def int) (int, error) {
	n, err := OptionalInt(c, key)
	if err != nil {
		return 0, err
	}

	if n == nil {
		return def, nil
	}

	return *n, nil
}
