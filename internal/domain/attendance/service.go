package attendance

import "context"

// AttendanceService defines business logic for clock events.
type AttendanceService interface {
	// Clock runs the full decision chain for a clock submission: enrollment
	// check, face verification, location resolution, geofence evaluation,
	// IN/OUT inference, persistence.
	Clock(ctx context.Context, req ClockRequest) (ClockResponse, error)

	// CreateManual records an event on behalf of an employee, with an audit
	// entry (admin/hr/manager).
	CreateManual(ctx context.Context, req ManualEventRequest) (EventResponse, error)

	// Edit corrects an event. The before/after snapshots and the audit
	// entry are written atomically with the change.
	Edit(ctx context.Context, id string, req EditEventRequest) (EventResponse, error)

	// Delete removes an event, with an audit entry.
	Delete(ctx context.Context, id string, reason string) error

	// GetRecent returns the newest events across employees (monitor view).
	GetRecent(ctx context.Context, limit int) ([]EventResponse, error)

	// GetChangeLog returns the audit trail of one event.
	GetChangeLog(ctx context.Context, id string) ([]ChangeLogResponse, error)
}
