package shift

import "time"

// Default tolerance windows in minutes.
const (
	DefaultLateGraceMinutes  = 5
	DefaultEarlyGraceMinutes = 5
)

// Shift is a daily working window. Start and End carry only a time of day;
// a shift does not span midnight (Start < End).
type Shift struct {
	ID                string
	Name              string
	StartTime         time.Time
	EndTime           time.Time
	BreakMinutes      int
	LateGraceMinutes  int
	EarlyGraceMinutes int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StartOn anchors the shift start to the given calendar day in loc.
func (s *Shift) StartOn(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0, loc)
}

// EndOn anchors the shift end to the given calendar day in loc.
func (s *Shift) EndOn(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		s.EndTime.Hour(), s.EndTime.Minute(), 0, 0, loc)
}
