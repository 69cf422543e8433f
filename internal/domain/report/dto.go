package report

import (
	"fmt"
	"math"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/pkg/validator"
)

// Period selects the range a history query covers.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

type HistoryRequest struct {
	Period Period `json:"period"`
	Date   string `json:"date"` // reference date, "YYYY-MM-DD"; empty = today
}

func (r *HistoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Period != "" && r.Period != PeriodDay && r.Period != PeriodWeek && r.Period != PeriodMonth {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "period must be day, week or month"})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Interval is one paired IN/OUT span inside a day.
type Interval struct {
	InTime  time.Time `json:"in_time"`
	OutTime time.Time `json:"out_time"`
}

// Hours returns the interval duration in hours, clamped at zero.
func (iv Interval) Hours() float64 {
	seconds := iv.OutTime.Sub(iv.InTime).Seconds()
	if seconds < 0 {
		return 0
	}
	return seconds / 3600.0
}

// DaySummary is the evaluated attendance of one employee on one day.
// TotalHours is rounded for presentation; aggregation uses raw hours.
type DaySummary struct {
	Date         string                     `json:"date"` // "YYYY-MM-DD"
	Events       []attendance.EventResponse `json:"items"`
	Intervals    []Interval                 `json:"intervals"`
	TotalHours   float64                    `json:"total_hours"`
	Unmatched    int                        `json:"unmatched"`
	IsLate       bool                       `json:"late"`
	IsEarlyLeave bool                       `json:"early_leave"`

	rawHours float64
}

// RawHours returns the unrounded worked hours for range accumulation.
func (d DaySummary) RawHours() float64 {
	return d.rawHours
}

// SetRawHours stores the exact figure and the rounded presentation value.
func (d *DaySummary) SetRawHours(hours float64) {
	d.rawHours = hours
	d.TotalHours = Round2(hours)
}

type RangeSummary struct {
	Period   Period       `json:"period"`
	Start    string       `json:"start"`
	End      string       `json:"end"`
	Days     []DaySummary `json:"days"`
	SumHours float64      `json:"sum_hours"`
}

// MonthlyRow is one employee's line in the month-by-day table.
type MonthlyRow struct {
	EmployeeID string    `json:"employee_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	DailyHours []float64 `json:"daily_hours"`
	TotalHours float64   `json:"total_hours"`
}

type MonthlyTable struct {
	Month string       `json:"month"` // "YYYY-MM"
	Days  []string     `json:"days"`  // "DD/MM" column labels
	Rows  []MonthlyRow `json:"rows"`
}

// Filename returns the export file name convention for the table.
func (t MonthlyTable) Filename(ext string) string {
	m, _ := time.Parse("2006-01", t.Month)
	return fmt.Sprintf("attendance_%04d_%02d.%s", m.Year(), int(m.Month()), ext)
}

type DashboardRequest struct {
	Date string `json:"date"` // reference date; empty = today
	View string `json:"view"` // day|month|year
}

func (r *DashboardRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.View != "" && !validator.IsInSlice(r.View, []string{"day", "month", "year"}) {
		errs = append(errs, validator.ValidationError{Field: "view", Message: "view must be day, month or year"})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// Dashboard summarizes presence across all active employees for a range.
type Dashboard struct {
	Start          string       `json:"start"`
	End            string       `json:"end"`
	TotalEmployees int          `json:"total_employees"`
	Present        int          `json:"present"`
	Absent         int          `json:"absent"`
	LateCount      int          `json:"late_count"`
	DailyHours     []DailyHours `json:"daily_hours"`
}

// Round2 rounds to 2 decimal places. Applied at presentation time only so
// rounding error never compounds across days.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
