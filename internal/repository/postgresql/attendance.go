package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `
	e.id, e.employee_id, e.timestamp, e.type,
	e.latitude, e.longitude, e.distance_m, e.within_geofence,
	e.work_location_id, e.note,
	e.created_by, e.changed_by, e.changed_at, e.created_at
`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.Timestamp, &ev.Kind,
		&ev.Coordinate.Latitude, &ev.Coordinate.Longitude, &ev.DistanceMeters, &ev.WithinGeofence,
		&ev.WorkLocationID, &ev.Note,
		&ev.CreatedBy, &ev.ChangedBy, &ev.ChangedAt, &ev.CreatedAt,
	)
	return ev, err
}

// Create implements attendance.EventRepository.
func (r *eventRepository) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, employee_id, timestamp, type,
			latitude, longitude, distance_m, within_geofence,
			work_location_id, note, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.Timestamp,
		event.Kind,
		event.Coordinate.Latitude,
		event.Coordinate.Longitude,
		event.DistanceMeters,
		event.WithinGeofence,
		event.WorkLocationID,
		event.Note,
		event.CreatedBy,
	).Scan(&event.CreatedAt)

	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

// GetByID implements attendance.EventRepository.
func (r *eventRepository) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		WHERE e.id = $1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance event: %w", err)
	}

	return ev, nil
}

// LatestOfKind implements attendance.EventRepository.
func (r *eventRepository) LatestOfKind(ctx context.Context, employeeID string, kind attendance.EventKind, from, to time.Time) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		WHERE e.employee_id = $1
		  AND e.type = $2
		  AND e.timestamp >= $3
		  AND e.timestamp < $4
		ORDER BY e.timestamp DESC
		LIMIT 1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, employeeID, kind, from, to))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest %s event: %w", kind, err)
	}

	return &ev, nil
}

// ListForEmployee implements attendance.EventRepository.
func (r *eventRepository) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		WHERE e.employee_id = $1
		  AND e.timestamp >= $2
		  AND e.timestamp < $3
		ORDER BY e.timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListAll implements attendance.EventRepository.
func (r *eventRepository) ListAll(ctx context.Context, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		WHERE e.timestamp >= $1
		  AND e.timestamp < $2
		ORDER BY e.timestamp ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListRecent implements attendance.EventRepository.
func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id, e.employee_id, e.timestamp, e.type,
			e.latitude, e.longitude, e.distance_m, e.within_geofence,
			e.work_location_id, e.note,
			e.created_by, e.changed_by, e.changed_at, e.created_at,
			emp.username, loc.name
		FROM attendance_events e
		JOIN employees emp ON emp.id = e.employee_id
		JOIN work_locations loc ON loc.id = e.work_location_id
		ORDER BY e.timestamp DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.Timestamp, &ev.Kind,
			&ev.Coordinate.Latitude, &ev.Coordinate.Longitude, &ev.DistanceMeters, &ev.WithinGeofence,
			&ev.WorkLocationID, &ev.Note,
			&ev.CreatedBy, &ev.ChangedBy, &ev.ChangedAt, &ev.CreatedAt,
			&ev.EmployeeUsername, &ev.WorkLocationName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance events: %w", err)
	}

	return events, nil
}

// Update implements attendance.EventRepository.
func (r *eventRepository) Update(ctx context.Context, event attendance.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events SET
			timestamp = $2,
			type = $3,
			latitude = $4,
			longitude = $5,
			distance_m = $6,
			within_geofence = $7,
			work_location_id = $8,
			note = $9,
			changed_by = $10,
			changed_at = $11
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		event.ID,
		event.Timestamp,
		event.Kind,
		event.Coordinate.Latitude,
		event.Coordinate.Longitude,
		event.DistanceMeters,
		event.WithinGeofence,
		event.WorkLocationID,
		event.Note,
		event.ChangedBy,
		event.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrEventNotFound
	}

	return nil
}

// Delete implements attendance.EventRepository.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrEventNotFound
	}

	return nil
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance events: %w", err)
	}
	return events, nil
}
