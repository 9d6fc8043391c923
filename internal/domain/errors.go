package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFoundf wraps ErrNotFound with the entity that was missing.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validationf wraps ErrValidation with the reason the payload was rejected.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict for duplicate unique names.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Unauthorizedf wraps ErrUnauthorized for failed credential checks.
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// InsufficientStockError rejects a ledger batch that would drive a material's
// inventory negative. The whole batch is rolled back.
type InsufficientStockError struct {
	MaterialID   int64
	MaterialName string
	Required     float64
	Available    float64
}

func (e *InsufficientStockError) Error() string {
	name := e.MaterialName
	if name == "" {
		name = fmt.Sprintf("material %d", e.MaterialID)
	}
	return fmt.Sprintf("insufficient stock for %s (required: %.1fkg, available: %.1fkg)",
		name, e.Required, e.Available)
}

// IsInsufficientStock reports whether err is a ledger stock rejection.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
