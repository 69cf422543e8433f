package report

import (
	"testing"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/domain/report"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func eventAt(kind attendance.EventKind, hour, minute int) attendance.Event {
	return attendance.Event{
		Kind:      kind,
		Timestamp: time.Date(2026, time.March, 9, hour, minute, 0, 0, jakarta),
	}
}

func timeOfDay(hour, minute int) time.Time {
	return time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)
}

func TestPairEvents_TwoCompletePairs(t *testing.T) {
	events := []attendance.Event{
		eventAt(attendance.KindIn, 9, 0),
		eventAt(attendance.KindOut, 12, 0),
		eventAt(attendance.KindIn, 13, 0),
		eventAt(attendance.KindOut, 17, 30),
	}

	intervals, unmatched := PairEvents(events)

	require.Len(t, intervals, 2)
	assert.Equal(t, 0, unmatched)
	assert.InDelta(t, 7.5, TotalHours(intervals), 1e-9)
}

func TestPairEvents_StrayLeadingOut(t *testing.T) {
	events := []attendance.Event{
		eventAt(attendance.KindOut, 8, 0),
		eventAt(attendance.KindIn, 9, 0),
		eventAt(attendance.KindOut, 17, 0),
	}

	intervals, unmatched := PairEvents(events)

	require.Len(t, intervals, 1)
	assert.Equal(t, 1, unmatched)
	assert.InDelta(t, 8.0, TotalHours(intervals), 1e-9)
}

func TestPairEvents_TrailingInUnpaired(t *testing.T) {
	events := []attendance.Event{
		eventAt(attendance.KindIn, 9, 0),
		eventAt(attendance.KindOut, 12, 0),
		eventAt(attendance.KindIn, 13, 0),
	}

	intervals, unmatched := PairEvents(events)

	require.Len(t, intervals, 1)
	assert.Equal(t, 1, unmatched)
	assert.InDelta(t, 3.0, TotalHours(intervals), 1e-9)
}

func TestPairEvents_Empty(t *testing.T) {
	intervals, unmatched := PairEvents(nil)

	assert.Empty(t, intervals)
	assert.Equal(t, 0, unmatched)
	assert.Zero(t, TotalHours(intervals))
}

func TestPairEvents_SimultaneousInOut(t *testing.T) {
	events := []attendance.Event{
		eventAt(attendance.KindIn, 9, 0),
		eventAt(attendance.KindOut, 9, 0),
	}

	intervals, unmatched := PairEvents(events)

	require.Len(t, intervals, 1)
	assert.Equal(t, 0, unmatched)
	assert.Zero(t, TotalHours(intervals))
}

func standardShift() *shift.Shift {
	return &shift.Shift{
		Name:              "Office",
		StartTime:         timeOfDay(8, 0),
		EndTime:           timeOfDay(17, 0),
		LateGraceMinutes:  5,
		EarlyGraceMinutes: 5,
	}
}

func TestEvaluateShift_Lateness(t *testing.T) {
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta)

	tests := []struct {
		name   string
		inAt   [2]int
		isLate bool
	}{
		{"on time", [2]int{7, 55}, false},
		{"exactly at start", [2]int{8, 0}, false},
		{"within grace", [2]int{8, 4}, false},
		{"at grace boundary", [2]int{8, 5}, false},
		{"past grace", [2]int{8, 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []attendance.Event{
				eventAt(attendance.KindIn, tt.inAt[0], tt.inAt[1]),
				eventAt(attendance.KindOut, 17, 0),
			}
			isLate, isEarlyLeave := EvaluateShift(day, events, standardShift(), jakarta)
			assert.Equal(t, tt.isLate, isLate)
			assert.False(t, isEarlyLeave)
		})
	}
}

func TestEvaluateShift_EarlyLeave(t *testing.T) {
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta)

	tests := []struct {
		name    string
		outAt   [2]int
		isEarly bool
	}{
		{"before grace window", [2]int{16, 50}, true},
		{"at grace boundary", [2]int{16, 55}, false},
		{"within grace", [2]int{16, 56}, false},
		{"past end", [2]int{17, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []attendance.Event{
				eventAt(attendance.KindIn, 8, 0),
				eventAt(attendance.KindOut, tt.outAt[0], tt.outAt[1]),
			}
			isLate, isEarlyLeave := EvaluateShift(day, events, standardShift(), jakarta)
			assert.False(t, isLate)
			assert.Equal(t, tt.isEarly, isEarlyLeave)
		})
	}
}

func TestEvaluateShift_NilShift(t *testing.T) {
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta)
	events := []attendance.Event{eventAt(attendance.KindIn, 11, 0)}

	isLate, isEarlyLeave := EvaluateShift(day, events, nil, jakarta)

	assert.False(t, isLate)
	assert.False(t, isEarlyLeave)
}

func TestEvaluateShift_NoEvents(t *testing.T) {
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta)

	isLate, isEarlyLeave := EvaluateShift(day, nil, standardShift(), jakarta)

	assert.False(t, isLate)
	assert.False(t, isEarlyLeave)
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2026, time.March, 9, 13, 45, 12, 0, jakarta)

	from, to := DayBounds(at, jakarta)

	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta), from)
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, jakarta), to)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name  string
		day   time.Time
		start time.Time
	}{
		{
			"wednesday",
			time.Date(2026, time.March, 11, 0, 0, 0, 0, jakarta),
			time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta),
		},
		{
			"monday maps to itself",
			time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta),
			time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta),
		},
		{
			"sunday belongs to the preceding monday",
			time.Date(2026, time.March, 15, 0, 0, 0, 0, jakarta),
			time.Date(2026, time.March, 9, 0, 0, 0, 0, jakarta),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.day)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.start.AddDate(0, 0, 6), end)
		})
	}
}

func TestMonthBounds_DecemberRollover(t *testing.T) {
	day := time.Date(2026, time.December, 15, 0, 0, 0, 0, jakarta)

	start, end := MonthBounds(day)

	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, jakarta), start)
	assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, jakarta), end)
}

func TestMonthBounds_February(t *testing.T) {
	day := time.Date(2026, time.February, 10, 0, 0, 0, 0, jakarta)

	start, end := MonthBounds(day)

	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 28, end.Day())
}

func TestIntervalHours_ClampedAtZero(t *testing.T) {
	iv := report.Interval{
		InTime:  time.Date(2026, time.March, 9, 12, 0, 0, 0, jakarta),
		OutTime: time.Date(2026, time.March, 9, 9, 0, 0, 0, jakarta),
	}

	assert.Zero(t, iv.Hours())
}
