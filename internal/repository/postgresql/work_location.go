package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/pkg/database"
)

type workLocationRepository struct {
	db *database.DB
}

func NewWorkLocationRepository(db *database.DB) location.WorkLocationRepository {
	return &workLocationRepository{db: db}
}

// Create implements location.WorkLocationRepository.
func (r *workLocationRepository) Create(ctx context.Context, loc location.WorkLocation) (location.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_locations (id, name, latitude, longitude, radius_m)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loc.ID, loc.Name, loc.Coordinate.Latitude, loc.Coordinate.Longitude, loc.RadiusMeters,
	).Scan(&loc.CreatedAt, &loc.UpdatedAt)

	if err != nil {
		return location.WorkLocation{}, fmt.Errorf("failed to create work location: %w", err)
	}

	return loc, nil
}

// GetByID implements location.WorkLocationRepository.
func (r *workLocationRepository) GetByID(ctx context.Context, id string) (location.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_m, created_at, updated_at
		FROM work_locations
		WHERE id = $1
	`

	var loc location.WorkLocation
	err := q.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Coordinate.Latitude, &loc.Coordinate.Longitude,
		&loc.RadiusMeters, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return location.WorkLocation{}, location.ErrLocationNotFound
		}
		return location.WorkLocation{}, fmt.Errorf("failed to get work location: %w", err)
	}

	return loc, nil
}

// List implements location.WorkLocationRepository.
func (r *workLocationRepository) List(ctx context.Context) ([]location.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_m, created_at, updated_at
		FROM work_locations
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
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
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work locations: %w", err)
	}

	return locations, nil
}

// Update implements location.WorkLocationRepository.
func (r *workLocationRepository) Update(ctx context.Context, loc location.WorkLocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_locations SET
			name = $2,
			latitude = $3,
			longitude = $4,
			radius_m = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, loc.ID, loc.Name, loc.Coordinate.Latitude, loc.Coordinate.Longitude, loc.RadiusMeters)
	if err != nil {
		return fmt.Errorf("failed to update work location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// Delete implements location.WorkLocationRepository.
func (r *workLocationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_locations WHERE id = $1`, id)
	if err != nil {
		// Attendance events reference locations with ON DELETE RESTRICT.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return location.ErrLocationInUse
		}
		return fmt.Errorf("failed to delete work location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
