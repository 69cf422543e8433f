package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events. Range
// arguments are half-open instants [from, to); callers anchor calendar days
// to the application timezone before querying.
type EventRepository interface {
	// Create appends a new event.
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves a single event.
	GetByID(ctx context.Context, id string) (Event, error)

	// LatestOfKind returns the employee's most recent event of the given
	// kind in [from, to), or nil when none exists. Drives IN/OUT inference.
	LatestOfKind(ctx context.Context, employeeID string, kind EventKind, from, to time.Time) (*Event, error)

	// ListForEmployee returns the employee's events in [from, to), ordered
	// by timestamp ascending.
	ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)

	// ListAll returns every event in [from, to) ordered by timestamp, for
	// dashboard aggregation across employees.
	ListAll(ctx context.Context, from, to time.Time) ([]Event, error)

	// ListRecent returns the latest events across all employees, newest
	// first, capped at limit. Feeds the live monitor view.
	ListRecent(ctx context.Context, limit int) ([]Event, error)

	// Update rewrites an existing event. Callers must pair it with a change
	// log write inside one transaction.
	Update(ctx context.Context, event Event) error

	// Delete removes an event. Same transactional contract as Update.
	Delete(ctx context.Context, id string) error
}

// ChangeLogRepository persists the append-only audit trail.
type ChangeLogRepository interface {
	Create(ctx context.Context, entry ChangeLogEntry) (ChangeLogEntry, error)
	ListForEvent(ctx context.Context, attendanceID string) ([]ChangeLogEntry, error)
}
