package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every request validation failure.
var ErrValidation = errors.New("validation failed")

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries the field errors of a rejected request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CreatePersonRequest is the payload for creating a person. An empty ID asks
// the service to generate one.
type CreatePersonRequest struct {
	ID     string `json:"id,omitempty" validate:"omitempty,max=128"`
	Name   string `json:"name" validate:"required,max=256"`
	Gender string `json:"gender" validate:"required"`
}

// LinkRequest names the person on the other end of an edge.
type LinkRequest struct {
	ID string `json:"id" validate:"required"`
}

// RequestValidator validates request payloads.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a request validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// Validate checks req against its struct tags.
func (v *RequestValidator) Validate(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return fmt.Sprintf("failed '%s'", fe.Tag())
}
