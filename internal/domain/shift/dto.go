package shift

import (
	"time"

	"github.com/timekeep/attendance-backend-go/internal/pkg/validator"
)

type UpsertShiftRequest struct {
	Name              string `json:"name"`
	StartTime         string `json:"start_time"` // "HH:MM"
	EndTime           string `json:"end_time"`   // "HH:MM"
	BreakMinutes      int    `json:"break_minutes"`
	LateGraceMinutes  *int   `json:"late_grace_minutes"`
	EarlyGraceMinutes *int   `json:"early_grace_minutes"`
}

func (r *UpsertShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	start, okStart := validator.IsValidTimeOfDay(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM"})
	}
	end, okEnd := validator.IsValidTimeOfDay(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM"})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be after start_time"})
	}

	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "break_minutes must not be negative"})
	}
	if r.LateGraceMinutes != nil && *r.LateGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_grace_minutes", Message: "late_grace_minutes must not be negative"})
	}
	if r.EarlyGraceMinutes != nil && *r.EarlyGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "early_grace_minutes", Message: "early_grace_minutes must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToShift builds a Shift entity, applying the default grace windows when the
// request leaves them unset.
func (r *UpsertShiftRequest) ToShift() Shift {
	start, _ := time.Parse("15:04", r.StartTime)
	end, _ := time.Parse("15:04", r.EndTime)

	lateGrace := DefaultLateGraceMinutes
	if r.LateGraceMinutes != nil {
		lateGrace = *r.LateGraceMinutes
	}
	earlyGrace := DefaultEarlyGraceMinutes
	if r.EarlyGraceMinutes != nil {
		earlyGrace = *r.EarlyGraceMinutes
	}

	return Shift{
		Name:              r.Name,
		StartTime:         start,
		EndTime:           end,
		BreakMinutes:      r.BreakMinutes,
		LateGraceMinutes:  lateGrace,
		EarlyGraceMinutes: earlyGrace,
	}
}

type ShiftResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	BreakMinutes      int    `json:"break_minutes"`
	LateGraceMinutes  int    `json:"late_grace_minutes"`
	EarlyGraceMinutes int    `json:"early_grace_minutes"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:                s.ID,
		Name:              s.Name,
		StartTime:         s.StartTime.Format("15:04"),
		EndTime:           s.EndTime.Format("15:04"),
		BreakMinutes:      s.BreakMinutes,
		LateGraceMinutes:  s.LateGraceMinutes,
		EarlyGraceMinutes: s.EarlyGraceMinutes,
	}
}
