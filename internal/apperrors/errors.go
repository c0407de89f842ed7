package apperrors

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Services wrap these with entity context via fmt.Errorf and %w; handlers
// map them to HTTP statuses with errors.Is.
var (
	// ErrNotFound covers missing entities and entities not in the state an
	// operation expects (e.g. cancelling an order that is not pending).
	ErrNotFound = errors.New("not found")

	// ErrConflict covers duplicate registration and deletion of sold bags.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized covers missing, malformed, expired or wrong-type tokens
	// and failed credential checks.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden covers role and ownership mismatches.
	ErrForbidden = errors.New("forbidden")

	// ErrNotAvailable is returned when a purchase hits a bag that is sold
	// out or no longer listed.
	ErrNotAvailable = errors.New("not available")

	// ErrValidation covers malformed input detected before any persistence
	// access.
	ErrValidation = errors.New("validation failed")
)
