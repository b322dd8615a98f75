package domain

import (
	"errors"
	"fmt"
)

var (
	// Format errors
	ErrUnknownFormat = errors.New("unknown format")
	ErrUnknownKind   = errors.New("cannot detect payload kind")

	// Validation errors
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrAmountTooLarge    = errors.New("amount exceeds maximum allowed")
	ErrInvalidCurrency   = errors.New("invalid currency code")
	ErrEmptyProducts     = errors.New("products must not be empty")
	ErrInvalidQuantity   = errors.New("product quantity must be at least 1")
	ErrSameBusiness      = errors.New("cannot trade with the same business")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
)

// ValidationError reports which field of a strongly-typed payload broke a rule.
type ValidationError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %s: %v", e.Kind, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(kind Kind, field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Kind: kind, Field: field, Err: err}
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
