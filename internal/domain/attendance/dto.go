package attendance

import (
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/pkg/validator"
)

// ClockRequest is a clock event submission. Kind is optional; when empty the
// service infers IN vs OUT from the same-day event history. WorkLocationID
// is optional; when empty the employee's first allowed location is used.
type ClockRequest struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Kind           EventKind `json:"type,omitempty"`
	WorkLocationID string    `json:"work_location_id,omitempty"`
	Note           string    `json:"note,omitempty"`

	// FaceImage is the raw live capture, handed to the embedding extractor.
	FaceImage []byte `json:"-"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.Kind != "" && !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be IN or OUT"})
	}
	if len(r.FaceImage) == 0 {
		errs = append(errs, validator.ValidationError{Field: "face_image", Message: "a face image is required to clock"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClockResponse reports the accepted event. WithinGeofence is advisory: an
// out-of-fence event is recorded and flagged, never rejected.
type ClockResponse struct {
	EventID        string                    `json:"event_id"`
	Kind           EventKind                 `json:"type"`
	Timestamp      time.Time                 `json:"timestamp"`
	DistanceMeters float64                   `json:"distance_m"`
	WithinGeofence bool                      `json:"within_geofence"`
	FaceDistance   float64                   `json:"face_distance"`
	WorkLocation   location.LocationResponse `json:"work_location"`
}

// ManualEventRequest creates an event on behalf of an employee (admin flow).
type ManualEventRequest struct {
	EmployeeID     string    `json:"employee_id"`
	Timestamp      string    `json:"timestamp"` // RFC3339
	Kind           EventKind `json:"type"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	WorkLocationID string    `json:"work_location_id"`
	Note           string    `json:"note"`
	Reason         string    `json:"reason"`
}

func (r *ManualEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
	}
	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be IN or OUT"})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if validator.IsEmpty(r.WorkLocationID) {
		errs = append(errs, validator.ValidationError{Field: "work_location_id", Message: "work_location_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EditEventRequest is an audited correction of an existing event.
type EditEventRequest struct {
	Timestamp      *string    `json:"timestamp"` // RFC3339
	Kind           *EventKind `json:"type"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	WorkLocationID *string    `json:"work_location_id"`
	Note           *string    `json:"note"`
	Reason         string     `json:"reason"`
}

func (r *EditEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
	}
	if r.Kind != nil && !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be IN or OUT"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employee_id"`
	EmployeeUsername string    `json:"employee_username,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Kind             EventKind `json:"type"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	DistanceMeters   float64   `json:"distance_m"`
	WithinGeofence   bool      `json:"within_geofence"`
	WorkLocationID   string    `json:"work_location_id"`
	WorkLocationName string    `json:"work_location_name,omitempty"`
	Note             string    `json:"note,omitempty"`
}

func ToEventResponse(e Event) EventResponse {
	resp := EventResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		Timestamp:      e.Timestamp,
		Kind:           e.Kind,
		Latitude:       e.Coordinate.Latitude,
		Longitude:      e.Coordinate.Longitude,
		DistanceMeters: e.DistanceMeters,
		WithinGeofence: e.WithinGeofence,
		WorkLocationID: e.WorkLocationID,
		Note:           e.Note,
	}
	if e.EmployeeUsername != nil {
		resp.EmployeeUsername = *e.EmployeeUsername
	}
	if e.WorkLocationName != nil {
		resp.WorkLocationName = *e.WorkLocationName
	}
	return resp
}

type ChangeLogResponse struct {
	ID           string         `json:"id"`
	AttendanceID string         `json:"attendance_id"`
	Action       string         `json:"action"`
	Reason       string         `json:"reason,omitempty"`
	BeforeData   map[string]any `json:"before_data,omitempty"`
	AfterData    map[string]any `json:"after_data,omitempty"`
	ChangedBy    string         `json:"changed_by"`
	ChangedAt    time.Time      `json:"changed_at"`
}

func ToChangeLogResponse(c ChangeLogEntry) ChangeLogResponse {
	return ChangeLogResponse{
		ID:           c.ID,
		AttendanceID: c.AttendanceID,
		Action:       c.Action,
		Reason:       c.Reason,
		BeforeData:   c.BeforeData,
		AfterData:    c.AfterData,
		ChangedBy:    c.ChangedBy,
		ChangedAt:    c.ChangedAt,
	}
}
