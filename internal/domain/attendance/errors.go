package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Clock errors
	ErrNotEnrolled          = errors.New("no face embedding enrolled for this account")
	ErrNoLocationConfigured = errors.New("no clock-in location configured for this account")
	ErrLocationNotAllowed   = errors.New("work location is not in the allowed set")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
	ErrInvalidKind   = errors.New("event type must be IN or OUT")
)

// IdentityMismatchError is returned when the live face does not match the
// enrolled embedding. The cosine distance is carried for diagnostics.
type IdentityMismatchError struct {
	Distance float64
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("face verification failed (distance: %.2f)", e.Distance)
}
