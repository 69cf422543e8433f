package employee

import (
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// CanManageAttendance reports whether the role may create or edit attendance
// records on behalf of others.
func (r Role) CanManageAttendance() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleManager
}

// CanManageEmployees reports whether the role may administer employee
// accounts and master data.
func (r Role) CanManageEmployees() bool {
	return r == RoleAdmin || r == RoleHR
}

type Employee struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Phone        string
	Role         Role
	ShiftID      *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// FaceEmbedding is the enrolled reference vector, nil until enrollment.
	FaceEmbedding []float64

	// Resolved relations. The evaluation core never traverses relations
	// lazily; the orchestrating boundary loads these before invoking it.
	Shift            *shift.Shift
	AllowedLocations []location.WorkLocation
}

// IsEnrolled reports whether a reference face embedding has been registered.
func (e *Employee) IsEnrolled() bool {
	return len(e.FaceEmbedding) > 0
}

// AllowsLocation reports whether the given work location belongs to the
// employee's allowed set.
func (e *Employee) AllowsLocation(locationID string) bool {
	for _, loc := range e.AllowedLocations {
		if loc.ID == locationID {
			return true
		}
	}
	return false
}

// PrimaryLocation returns the first allowed location, used when a clock
// request names no explicit target. Nil when none is configured.
func (e *Employee) PrimaryLocation() *location.WorkLocation {
	if len(e.AllowedLocations) == 0 {
		return nil
	}
	return &e.AllowedLocations[0]
}
