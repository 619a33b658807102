package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	// FieldError describes one failed validation rule.
	FieldError struct {
		Field string `json:"field"`
		Tag   string `json:"tag"`
		Param string `json:"param,omitempty"`
		Value any    `json:"value"`
	}

	// ValidationError carries every failed rule of a request body.
	ValidationError struct {
		Fields []FieldError
	}

	// XValidator validates request structs by their validate tags.
	XValidator struct {
		validate *validator.Validate
	}
)

// Error implements error.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed on %s", f.Field, f.Tag))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator is shared by all handlers, field names are reported by their json tag.
var Validator = NewXValidator() //nolint:gochecknoglobals

// NewXValidator returns a validator reporting json field names.
func NewXValidator() *XValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &XValidator{validate: v}
}

// Validate performs validation on the provided data, nil when it passes.
func (v *XValidator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	ve := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		ve.Fields = append(ve.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}

	return ve
}

// Bind parses the JSON body of c into dst and validates it.
// An empty body leaves dst untouched, so only its validation rules apply.
func Bind(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return Validator.Validate(dst)
	}

	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return Validator.Validate(dst)
}

// BindModel validates the body of c against req and decodes it into model as well.
// Request and model share their json names, server assigned fields must be reset by the caller.
func BindModel(c *fiber.Ctx, req, model any) error {
	if err := Bind(c, req); err != nil {
		return err
	}

	if len(c.Body()) == 0 {
		return nil
	}

	if err := c.BodyParser(model); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}
