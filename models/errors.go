package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched with errors.Is for every missing entity
var ErrNotFound = errors.New("not found")

// NotFoundError names the entity and identity that could not be found
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationKind classifies a validation failure
type ValidationKind string

const (
	ValidationRequired  ValidationKind = "required"
	ValidationEnum      ValidationKind = "enum"
	ValidationEmail     ValidationKind = "email"
	ValidationPhone     ValidationKind = "phone"
	ValidationMin       ValidationKind = "min"
	ValidationDuplicate ValidationKind = "duplicate"
	ValidationFormat    ValidationKind = "format"
)

// ValidationError is returned for any input the store refuses to persist
type ValidationError struct {
	Field   string         `json:"field"`
	Kind    ValidationKind `json:"kind"`
	Message string         `json:"message"`
}

func NewValidationError(field string, kind ValidationKind, message string) *ValidationError {
	if message == "" {
		message = defaultValidationMessage(field, kind)
	}
	return &ValidationError{Field: field, Kind: kind, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func defaultValidationMessage(field string, kind ValidationKind) string {
	switch kind {
	case ValidationRequired:
		return field + " is required"
	case ValidationEnum:
		return field + " has an unsupported value"
	case ValidationEmail:
		return "Please provide a valid email"
	case ValidationPhone:
		return field + " is not a valid phone number"
	case ValidationMin:
		return field + " must not be negative"
	case ValidationDuplicate:
		return fmt.Sprintf("%s already exists", field)
	default:
		return field + " is invalid"
	}
}

// IsValidationError reports whether err carries a *ValidationError
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
