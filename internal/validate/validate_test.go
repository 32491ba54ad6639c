package validate

import (
	"errors"
	"testing"

	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/model"
)

func appError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

func TestValidate_AllFieldsPresent(t *testing.T) {
	v := NewValidator()
	err := v.Validate(model.SignupInput{
		Email:    "ana@example.com",
		Phone:    "9876543210",
		Name:     "Ana",
		Password: "secret123",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	v := NewValidator()
	err := v.Validate(model.SignupInput{Email: "ana@example.com"})

	appErr := appError(t, err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if appErr.Message != "All fields are required" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	if _, ok := appErr.Details["Name"]; !ok {
		t.Error("details should name the missing Name field")
	}
}

func TestValidate_ShortPassword(t *testing.T) {
	v := NewValidator()
	err := v.Validate(model.SignupInput{
		Email:    "ana@example.com",
		Phone:    "9876543210",
		Name:     "Ana",
		Password: "abc",
	})

	appErr := appError(t, err)
	if appErr.Message != "Password must be at least 6 characters" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

// A missing field outranks a short password in the summary line.
func TestValidate_RequiredBeatsMin(t *testing.T) {
	v := NewValidator()
	err := v.Validate(model.SignupInput{
		Email:    "ana@example.com",
		Password: "abc",
	})

	appErr := appError(t, err)
	if appErr.Message != "All fields are required" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestValidate_BookingDateFormat(t *testing.T) {
	v := NewValidator()
	err := v.Validate(model.CreateBookingInput{
		GameID:    "game-1",
		Date:      "01-09-2026",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	if err == nil {
		t.Fatal("expected a validation error for a non ISO date")
	}
	appErr := appError(t, err)
	if _, ok := appErr.Details["Date"]; !ok {
		t.Error("details should name the Date field")
	}
}
