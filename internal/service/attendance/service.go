package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/pkg/database"
	"github.com/timekeep/attendance-backend-go/internal/pkg/face"
	"github.com/timekeep/attendance-backend-go/internal/pkg/geo"
	"github.com/timekeep/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

const defaultRecentLimit = 20

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.EventRepository
	attendance.ChangeLogRepository
	employee.EmployeeRepository
	location.WorkLocationRepository

	// extractor is nil when no embedding service is configured; clocking
	// then fails with face.ErrCapabilityUnavailable.
	extractor face.Extractor
	matcher   *face.Matcher
	loc       *time.Location
}

func NewAttendanceService(
	db *database.DB,
	eventRepo attendance.EventRepository,
	changeLogRepo attendance.ChangeLogRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.WorkLocationRepository,
	extractor face.Extractor,
	matcher *face.Matcher,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                     db,
		EventRepository:        eventRepo,
		ChangeLogRepository:    changeLogRepo,
		EmployeeRepository:     employeeRepo,
		WorkLocationRepository: locationRepo,
		extractor:              extractor,
		matcher:                matcher,
		loc:                    loc,
	}
}

func claimsIdentity(ctx context.Context) (employeeID, username string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	username, _ = claims["username"].(string)

	return employeeID, username, nil
}

// resolveLocation picks the clock target: the named location when the
// request carries one (it must be in the employee's allowed set), otherwise
// the employee's primary location.
func resolveLocation(emp *employee.Employee, requestedID string) (*location.WorkLocation, error) {
	if requestedID != "" {
		if !emp.AllowsLocation(requestedID) {
			return nil, attendance.ErrLocationNotAllowed
		}
		for i := range emp.AllowedLocations {
			if emp.AllowedLocations[i].ID == requestedID {
				return &emp.AllowedLocations[i], nil
			}
		}
		return nil, attendance.ErrLocationNotAllowed
	}

	primary := emp.PrimaryLocation()
	if primary == nil {
		return nil, attendance.ErrNoLocationConfigured
	}
	return primary, nil
}

// inferKind toggles IN/OUT from the employee's same-day history: OUT when
// the day's most recent IN is newer than its most recent OUT, IN otherwise.
func (a *AttendanceServiceImpl) inferKind(ctx context.Context, employeeID string, now time.Time) (attendance.EventKind, error) {
	local := now.In(a.loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)
	to := from.AddDate(0, 0, 1)

	lastIn, err := a.EventRepository.LatestOfKind(ctx, employeeID, attendance.KindIn, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to look up latest IN: %w", err)
	}
	lastOut, err := a.EventRepository.LatestOfKind(ctx, employeeID, attendance.KindOut, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to look up latest OUT: %w", err)
	}

	if lastIn != nil && (lastOut == nil || lastIn.Timestamp.After(lastOut.Timestamp)) {
		return attendance.KindOut, nil
	}
	return attendance.KindIn, nil
}

// Clock implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Clock(ctx context.Context, req attendance.ClockRequest) (attendance.ClockResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResponse{}, err
	}

	employeeID, _, err := claimsIdentity(ctx)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if !emp.IsActive {
		return attendance.ClockResponse{}, employee.ErrEmployeeInactive
	}
	if !emp.IsEnrolled() {
		return attendance.ClockResponse{}, attendance.ErrNotEnrolled
	}

	if a.extractor == nil {
		return attendance.ClockResponse{}, face.ErrCapabilityUnavailable
	}
	live, err := a.extractor.Extract(ctx, req.FaceImage)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	decision, err := a.matcher.Decide(emp.FaceEmbedding, live)
	if err != nil {
		return attendance.ClockResponse{}, err
	}
	if !decision.Match {
		return attendance.ClockResponse{}, &attendance.IdentityMismatchError{Distance: decision.Distance}
	}

	workLocation, err := resolveLocation(&emp, req.WorkLocationID)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	point := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}

	// Geofence is advisory: an out-of-fence event is recorded and flagged,
	// never rejected.
	within, distance, err := geo.IsWithin(point, workLocation.Coordinate, workLocation.RadiusMeters)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	now := time.Now().In(a.loc)

	kind := req.Kind
	if kind == "" {
		kind, err = a.inferKind(ctx, employeeID, now)
		if err != nil {
			return attendance.ClockResponse{}, err
		}
	}

	event := attendance.Event{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		Timestamp:      now,
		Kind:           kind,
		Coordinate:     point,
		DistanceMeters: distance,
		WithinGeofence: within,
		WorkLocationID: workLocation.ID,
		Note:           req.Note,
		CreatedAt:      now,
	}

	created, err := a.EventRepository.Create(ctx, event)
	if err != nil {
		return attendance.ClockResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return attendance.ClockResponse{
		EventID:        created.ID,
		Kind:           created.Kind,
		Timestamp:      created.Timestamp,
		DistanceMeters: created.DistanceMeters,
		WithinGeofence: created.WithinGeofence,
		FaceDistance:   decision.Distance,
		WorkLocation:   location.ToResponse(*workLocation),
	}, nil
}

// CreateManual implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateManual(ctx context.Context, req attendance.ManualEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	_, actor, err := claimsIdentity(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.EventResponse{}, err
	}

	workLocation, err := a.WorkLocationRepository.GetByID(ctx, req.WorkLocationID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}

	point := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	within, distance, err := geo.IsWithin(point, workLocation.Coordinate, workLocation.RadiusMeters)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	now := time.Now().In(a.loc)
	event := attendance.Event{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		Timestamp:      timestamp.In(a.loc),
		Kind:           req.Kind,
		Coordinate:     point,
		DistanceMeters: distance,
		WithinGeofence: within,
		WorkLocationID: workLocation.ID,
		Note:           req.Note,
		CreatedBy:      &actor,
		CreatedAt:      now,
	}

	err = postgresql.WithTransaction(ctx, a.db, func(ctx context.Context) error {
		created, err := a.EventRepository.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to create attendance event: %w", err)
		}
		event = created

		_, err = a.ChangeLogRepository.Create(ctx, attendance.ChangeLogEntry{
			ID:           uuid.NewString(),
			AttendanceID: created.ID,
			Action:       attendance.ActionCreated,
			Reason:       req.Reason,
			AfterData:    attendance.Snapshot(created),
			ChangedBy:    actor,
			ChangedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to write change log: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return attendance.ToEventResponse(event), nil
}

// Edit implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Edit(ctx context.Context, id string, req attendance.EditEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	_, actor, err := claimsIdentity(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	event, err := a.EventRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	before := attendance.Snapshot(event)

	if req.Timestamp != nil {
		timestamp, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			return attendance.EventResponse{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		event.Timestamp = timestamp.In(a.loc)
	}
	if req.Kind != nil {
		event.Kind = *req.Kind
	}
	if req.Latitude != nil {
		event.Coordinate.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		event.Coordinate.Longitude = *req.Longitude
	}
	if req.WorkLocationID != nil {
		event.WorkLocationID = *req.WorkLocationID
	}
	if req.Note != nil {
		event.Note = *req.Note
	}

	// Re-evaluate the geofence against the (possibly changed) location.
	workLocation, err := a.WorkLocationRepository.GetByID(ctx, event.WorkLocationID)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	within, distance, err := geo.IsWithin(event.Coordinate, workLocation.Coordinate, workLocation.RadiusMeters)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	event.DistanceMeters = distance
	event.WithinGeofence = within

	now := time.Now().In(a.loc)
	event.ChangedBy = &actor
	event.ChangedAt = &now

	err = postgresql.WithTransaction(ctx, a.db, func(ctx context.Context) error {
		if err := a.EventRepository.Update(ctx, event); err != nil {
			return fmt.Errorf("failed to update attendance event: %w", err)
		}

		_, err := a.ChangeLogRepository.Create(ctx, attendance.ChangeLogEntry{
			ID:           uuid.NewString(),
			AttendanceID: event.ID,
			Action:       attendance.ActionEdited,
			Reason:       req.Reason,
			BeforeData:   before,
			AfterData:    attendance.Snapshot(event),
			ChangedBy:    actor,
			ChangedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to write change log: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return attendance.ToEventResponse(event), nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string, reason string) error {
	_, actor, err := claimsIdentity(ctx)
	if err != nil {
		return err
	}

	event, err := a.EventRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().In(a.loc)

	return postgresql.WithTransaction(ctx, a.db, func(ctx context.Context) error {
		// Audit entry first: the change log references the event row.
		_, err := a.ChangeLogRepository.Create(ctx, attendance.ChangeLogEntry{
			ID:           uuid.NewString(),
			AttendanceID: event.ID,
			Action:       attendance.ActionDeleted,
			Reason:       reason,
			BeforeData:   attendance.Snapshot(event),
			ChangedBy:    actor,
			ChangedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to write change log: %w", err)
		}

		if err := a.EventRepository.Delete(ctx, event.ID); err != nil {
			return fmt.Errorf("failed to delete attendance event: %w", err)
		}
		return nil
	})
}

// GetRecent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecent(ctx context.Context, limit int) ([]attendance.EventResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	events, err := a.EventRepository.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.ToEventResponse(ev))
	}
	return responses, nil
}

// GetChangeLog implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetChangeLog(ctx context.Context, id string) ([]attendance.ChangeLogResponse, error) {
	entries, err := a.ChangeLogRepository.ListForEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list change log: %w", err)
	}

	responses := make([]attendance.ChangeLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, attendance.ToChangeLogResponse(entry))
	}
	return responses, nil
}
