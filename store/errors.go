package store

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for store operations. Callers match with errors.Is; beyond
// that the distinctions are informational, every failure surfaces to the user
// as a single message per operation.
var (
	ErrNetwork          = errors.New("network unreachable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrValidationFailed = errors.New("validation failed")
)

// statusError maps a non-success HTTP status to the error taxonomy.
func statusError(op string, status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", op, ErrValidationFailed)
	default:
		return fmt.Errorf("%s: unexpected status %d", op, status)
	}
}

func networkError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrNetwork, err)
}
