package report

import (
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/domain/report"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
)

// PairEvents pairs one day's chronologically ordered events into worked
// intervals: a greedy merge of the IN and OUT subsequences that consumes
// both heads when the current IN precedes or equals the current OUT, and
// skips an OUT that has no preceding unconsumed IN. It does not try to find
// an optimal matching for days with overlapping or duplicate events.
// Unpaired events (a skipped OUT, an IN with no later OUT) contribute zero
// hours and are counted so callers can flag the day.
func PairEvents(events []attendance.Event) ([]report.Interval, int) {
	var ins, outs []attendance.Event
	for _, ev := range events {
		switch ev.Kind {
		case attendance.KindIn:
			ins = append(ins, ev)
		case attendance.KindOut:
			outs = append(outs, ev)
		}
	}

	var intervals []report.Interval
	skipped := 0
	i, j := 0, 0
	for i < len(ins) && j < len(outs) {
		if !ins[i].Timestamp.After(outs[j].Timestamp) {
			intervals = append(intervals, report.Interval{
				InTime:  ins[i].Timestamp,
				OutTime: outs[j].Timestamp,
			})
			i++
			j++
		} else {
			skipped++
			j++
		}
	}

	unmatched := skipped + (len(ins) - i) + (len(outs) - j)
	return intervals, unmatched
}

// TotalHours sums interval durations in hours. Accumulation is exact
// (seconds-based); rounding happens at presentation time.
func TotalHours(intervals []report.Interval) float64 {
	var total float64
	for _, iv := range intervals {
		total += iv.Hours()
	}
	return total
}

// EvaluateShift classifies one day against the employee's assigned shift.
// A nil shift yields no classification. A day without an IN is never late;
// absence is computed elsewhere.
func EvaluateShift(day time.Time, events []attendance.Event, s *shift.Shift, loc *time.Location) (isLate, isEarlyLeave bool) {
	if s == nil {
		return false, false
	}

	var firstIn, lastOut *time.Time
	for idx := range events {
		ev := events[idx]
		switch ev.Kind {
		case attendance.KindIn:
			if firstIn == nil {
				t := ev.Timestamp
				firstIn = &t
			}
		case attendance.KindOut:
			t := ev.Timestamp
			lastOut = &t
		}
	}

	start := s.StartOn(day, loc)
	end := s.EndOn(day, loc)
	graceIn := time.Duration(s.LateGraceMinutes) * time.Minute
	graceOut := time.Duration(s.EarlyGraceMinutes) * time.Minute

	if firstIn != nil && firstIn.After(start.Add(graceIn)) {
		isLate = true
	}
	if lastOut != nil && lastOut.Before(end.Add(-graceOut)) {
		isEarlyLeave = true
	}

	return isLate, isEarlyLeave
}

// DayBounds returns the half-open instant range [from, to) covering the
// calendar day of d in loc.
func DayBounds(d time.Time, loc *time.Location) (time.Time, time.Time) {
	d = d.In(loc)
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}

// WeekBounds returns the Monday and Sunday of the week containing d.
func WeekBounds(d time.Time) (time.Time, time.Time) {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	start := d.AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, 6)
}

// MonthBounds returns the first and last calendar day of d's month.
func MonthBounds(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}
