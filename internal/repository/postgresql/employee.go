package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
	"github.com/timekeep/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, username, password_hash, full_name, email, phone, role, shift_id, is_active, face_embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.Username, e.PasswordHash, e.FullName, e.Email, e.Phone,
		e.Role, e.ShiftID, e.IsActive, e.FaceEmbedding,
	).Scan(&e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrUsernameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, `e.id = $1`, id)
}

// GetByUsername implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	return r.getOne(ctx, `e.username = $1`, username)
}

func (r *employeeRepository) getOne(ctx context.Context, where string, arg any) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id, e.username, e.password_hash, e.full_name, e.email, e.phone,
			e.role, e.shift_id, e.is_active, e.face_embedding, e.created_at, e.updated_at,
			s.id, s.name, s.start_time, s.end_time, s.break_minutes, s.late_grace_minutes, s.early_grace_minutes
		FROM employees e
		LEFT JOIN shifts s ON s.id = e.shift_id
		WHERE ` + where + `
	`

	var e employee.Employee
	var shiftID, shiftName, startTime, endTime *string
	var s shift.Shift
	var breakMin, lateGrace, earlyGrace *int

	err := q.QueryRow(ctx, query, arg).Scan(
		&e.ID, &e.Username, &e.PasswordHash, &e.FullName, &e.Email, &e.Phone,
		&e.Role, &e.ShiftID, &e.IsActive, &e.FaceEmbedding, &e.CreatedAt, &e.UpdatedAt,
		&shiftID, &shiftName, &startTime, &endTime, &breakMin, &lateGrace, &earlyGrace,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if shiftID != nil {
		s.ID = *shiftID
		s.Name = *shiftName
		s.StartTime, _ = time.Parse("15:04", *startTime)
		s.EndTime, _ = time.Parse("15:04", *endTime)
		s.BreakMinutes = *breakMin
		s.LateGraceMinutes = *lateGrace
		s.EarlyGraceMinutes = *earlyGrace
		e.Shift = &s
	}

	locations, err := r.allowedLocations(ctx, e.ID)
	if err != nil {
		return employee.Employee{}, err
	}
	e.AllowedLocations = locations

	return e, nil
}

func (r *employeeRepository) allowedLocations(ctx context.Context, employeeID string) ([]location.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.name, l.latitude, l.longitude, l.radius_m, l.created_at, l.updated_at
		FROM employee_locations el
		JOIN work_locations l ON l.id = el.work_location_id
		WHERE el.employee_id = $1
		ORDER BY el.position ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowed locations: %w", err)
	}
	defer rows.Close()

	var locations []location.WorkLocation
	for rows.Next() {
		var loc location.WorkLocation
		err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Coordinate.Latitude, &loc.Coordinate.Longitude,
			&loc.RadiusMeters, &loc.CreatedAt, &loc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allowed location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read allowed locations: %w", err)
	}

	return locations, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, ``)
}

// ListActiveWithShift implements employee.EmployeeRepository.
func (r *employeeRepository) ListActiveWithShift(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, `WHERE e.is_active = TRUE`)
}

func (r *employeeRepository) list(ctx context.Context, where string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id, e.username, e.password_hash, e.full_name, e.email, e.phone,
			e.role, e.shift_id, e.is_active, e.face_embedding, e.created_at, e.updated_at,
			s.id, s.name, s.start_time, s.end_time, s.break_minutes, s.late_grace_minutes, s.early_grace_minutes
		FROM employees e
		LEFT JOIN shifts s ON s.id = e.shift_id
		` + where + `
		ORDER BY e.username ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		var shiftID, shiftName, startTime, endTime *string
		var s shift.Shift
		var breakMin, lateGrace, earlyGrace *int

		err := rows.Scan(
			&e.ID, &e.Username, &e.PasswordHash, &e.FullName, &e.Email, &e.Phone,
			&e.Role, &e.ShiftID, &e.IsActive, &e.FaceEmbedding, &e.CreatedAt, &e.UpdatedAt,
			&shiftID, &shiftName, &startTime, &endTime, &breakMin, &lateGrace, &earlyGrace,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}

		if shiftID != nil {
			s.ID = *shiftID
			s.Name = *shiftName
			s.StartTime, _ = time.Parse("15:04", *startTime)
			s.EndTime, _ = time.Parse("15:04", *endTime)
			s.BreakMinutes = *breakMin
			s.LateGraceMinutes = *lateGrace
			s.EarlyGraceMinutes = *earlyGrace
			e.Shift = &s
		}

		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	for i := range employees {
		locations, err := r.allowedLocations(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
		employees[i].AllowedLocations = locations
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			full_name = $2,
			email = $3,
			phone = $4,
			role = $5,
			shift_id = $6,
			is_active = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, e.ID, e.FullName, e.Email, e.Phone, e.Role, e.ShiftID, e.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdatePasswordHash implements employee.EmployeeRepository.
func (r *employeeRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateFaceEmbedding implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateFaceEmbedding(ctx context.Context, id string, embedding []float64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET face_embedding = $2, updated_at = NOW() WHERE id = $1`, id, embedding)
	if err != nil {
		return fmt.Errorf("failed to update face embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetAllowedLocations implements employee.EmployeeRepository.
func (r *employeeRepository) SetAllowedLocations(ctx context.Context, id string, locationIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM employee_locations WHERE employee_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear allowed locations: %w", err)
	}

	for i, locID := range locationIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO employee_locations (employee_id, work_location_id, position) VALUES ($1, $2, $3)`,
			id, locID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to set allowed location: %w", err)
		}
	}

	return nil
}
