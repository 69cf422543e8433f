package attendance

import (
	"time"

	"github.com/timekeep/attendance-backend-go/internal/pkg/geo"
)

type EventKind string

const (
	KindIn  EventKind = "IN"
	KindOut EventKind = "OUT"
)

func (k EventKind) Valid() bool {
	return k == KindIn || k == KindOut
}

// Event is a single clock-in or clock-out record. Events are append-only;
// the only mutation path is an audited edit that writes a ChangeLogEntry in
// the same transaction.
type Event struct {
	ID             string
	EmployeeID     string
	Timestamp      time.Time
	Kind           EventKind
	Coordinate     geo.Coordinate
	DistanceMeters float64
	WithinGeofence bool
	WorkLocationID string
	Note           string
	CreatedBy      *string
	ChangedBy      *string
	ChangedAt      *time.Time
	CreatedAt      time.Time

	// DTO
	EmployeeUsername *string
	WorkLocationName *string
}

// Change-log actions.
const (
	ActionCreated = "created"
	ActionEdited  = "edited"
	ActionDeleted = "deleted"
)

// ChangeLogEntry is the write-once audit record produced whenever an event
// is created manually, edited, or deleted.
type ChangeLogEntry struct {
	ID           string
	AttendanceID string
	Action       string
	Reason       string
	BeforeData   map[string]any
	AfterData    map[string]any
	ChangedBy    string
	ChangedAt    time.Time
}

// Snapshot captures the audit-relevant fields of an event for a change-log
// before/after payload.
func Snapshot(e Event) map[string]any {
	return map[string]any{
		"id":               e.ID,
		"employee_id":      e.EmployeeID,
		"timestamp":        e.Timestamp.Format(time.RFC3339),
		"type":             string(e.Kind),
		"latitude":         e.Coordinate.Latitude,
		"longitude":        e.Coordinate.Longitude,
		"distance_m":       e.DistanceMeters,
		"within_geofence":  e.WithinGeofence,
		"work_location_id": e.WorkLocationID,
		"note":             e.Note,
	}
}
