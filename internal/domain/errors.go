package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrMissingCredential ErrorKind = "MISSING_CREDENTIAL"
	ErrMissingField      ErrorKind = "MISSING_FIELD"
	ErrInvalidHours      ErrorKind = "INVALID_HOURS"
	ErrInvalidDeadline   ErrorKind = "INVALID_DEADLINE"
	ErrHTTP              ErrorKind = "HTTP_ERROR"
	ErrGeneric           ErrorKind = "GENERIC_ERROR"
)

// PlanError is the single error variant returned by every pipeline stage.
// StatusCode and Body are only set for ErrHTTP; Field only for ErrMissingField.
type PlanError struct {
	Kind       ErrorKind
	Field      string
	Message    string
	StatusCode int
	Body       string
}

func (e *PlanError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// IsValidation reports whether the error came from input validation rather
// than from the completion endpoint.
func (e *PlanError) IsValidation() bool {
	switch e.Kind {
	case ErrMissingCredential, ErrMissingField, ErrInvalidHours, ErrInvalidDeadline:
		return true
	default:
		return false
	}
}

// Warning is the user-facing sentence for a validation error.
func (e *PlanError) Warning() string {
	switch e.Kind {
	case ErrMissingCredential:
		return "Please enter your OpenRouter API key."
	case ErrMissingField:
		return "Please fill in all fields! (" + e.Field + " is empty)"
	case ErrInvalidHours:
		return "Please enter a valid, positive number for total study hours."
	case ErrInvalidDeadline:
		return "Please choose a deadline of today or later, as YYYY-MM-DD."
	default:
		return e.Message
	}
}

func NewValidationError(kind ErrorKind, field, message string) *PlanError {
	return &PlanError{Kind: kind, Field: field, Message: message}
}

func NewHTTPError(status int, body string) *PlanError {
	return &PlanError{
		Kind:       ErrHTTP,
		Message:    fmt.Sprintf("completion endpoint returned status %d", status),
		StatusCode: status,
		Body:       body,
	}
}

func NewGenericError(err error) *PlanError {
	return &PlanError{Kind: ErrGeneric, Message: err.Error()}
}

// AsPlanError unwraps err into a *PlanError, converting anything foreign
// into an ErrGeneric variant. Returns nil for a nil error.
func AsPlanError(err error) *PlanError {
	if err == nil {
		return nil
	}
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe
	}
	return NewGenericError(err)
}

// KindOf returns the ErrorKind carried by err, or ErrGeneric for foreign errors.
func KindOf(err error) ErrorKind {
	if pe := AsPlanError(err); pe != nil {
		return pe.Kind
	}
	return ""
}
