package postgresql

import (
	"context"
	"fmt"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/pkg/database"
)

type changeLogRepository struct {
	db *database.DB
}

func NewChangeLogRepository(db *database.DB) attendance.ChangeLogRepository {
	return &changeLogRepository{db: db}
}

// Create implements attendance.ChangeLogRepository.
func (r *changeLogRepository) Create(ctx context.Context, entry attendance.ChangeLogEntry) (attendance.ChangeLogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_change_logs (
			id, attendance_id, action, reason, before_data, after_data, changed_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING changed_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.AttendanceID,
		entry.Action,
		entry.Reason,
		entry.BeforeData,
		entry.AfterData,
		entry.ChangedBy,
	).Scan(&entry.ChangedAt)

	if err != nil {
		return attendance.ChangeLogEntry{}, fmt.Errorf("failed to create change log entry: %w", err)
	}

	return entry, nil
}

// ListForEvent implements attendance.ChangeLogRepository.
func (r *changeLogRepository) ListForEvent(ctx context.Context, attendanceID string) ([]attendance.ChangeLogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, action, reason, before_data, after_data, changed_by, changed_at
		FROM attendance_change_logs
		WHERE attendance_id = $1
		ORDER BY changed_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list change log entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.ChangeLogEntry
	for rows.Next() {
		var entry attendance.ChangeLogEntry
		err := rows.Scan(
			&entry.ID, &entry.AttendanceID, &entry.Action, &entry.Reason,
			&entry.BeforeData, &entry.AfterData, &entry.ChangedBy, &entry.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read change log entries: %w", err)
	}

	return entries, nil
}
