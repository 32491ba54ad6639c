package validate

import (
	"errors"
	"fmt"

	apperrors "cuecafe/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate runs struct-tag validation and translates failures into a single
// validation error with per-field details.
func (v *Validator) Validate(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.Internal("validation could not run", err)
	}

	details := make(map[string]any, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details[fieldErr.Field()] = translateFieldError(fieldErr)
	}
	return apperrors.Validation(summarize(validationErrs), details)
}

// summarize keeps the two messages users actually see: missing fields beat a
// short password.
func summarize(errs validator.ValidationErrors) string {
	for _, fieldErr := range errs {
		if fieldErr.Tag() == "required" {
			return "All fields are required"
		}
	}
	for _, fieldErr := range errs {
		if fieldErr.Field() == "Password" && fieldErr.Tag() == "min" {
			return "Password must be at least 6 characters"
		}
	}
	return "Validation failed"
}

func translateFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "datetime":
		return fmt.Sprintf("must match format %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
