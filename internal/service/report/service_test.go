package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/domain/report"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEventRepo struct {
	attendance.EventRepository
	events []attendance.Event
}

func (s *stubEventRepo) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range s.events {
		if ev.EmployeeID != employeeID {
			continue
		}
		if ev.Timestamp.Before(from) || !ev.Timestamp.Before(to) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *stubEventRepo) ListAll(ctx context.Context, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range s.events {
		if ev.Timestamp.Before(from) || !ev.Timestamp.Before(to) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range s.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) ListActiveWithShift(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range s.employees {
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func shiftedEmployee() employee.Employee {
	return employee.Employee{
		ID:       "emp-1",
		Username: "alice",
		FullName: "Alice Tran",
		IsActive: true,
		Shift: &shift.Shift{
			Name:              "Office",
			StartTime:         timeOfDay(8, 0),
			EndTime:           timeOfDay(17, 0),
			LateGraceMinutes:  5,
			EarlyGraceMinutes: 5,
		},
	}
}

func dayEvent(employeeID string, day int, hour, minute int, kind attendance.EventKind) attendance.Event {
	return attendance.Event{
		EmployeeID: employeeID,
		Kind:       kind,
		Timestamp:  time.Date(2026, time.March, day, hour, minute, 0, 0, jakarta),
	}
}

func newStubService(events []attendance.Event, employees ...employee.Employee) report.ReportService {
	return NewReportService(
		&stubEventRepo{events: events},
		&stubEmployeeRepo{employees: employees},
		jakarta,
	)
}

func TestGetDaySummary_LateDay(t *testing.T) {
	events := []attendance.Event{
		dayEvent("emp-1", 9, 8, 20, attendance.KindIn),
		dayEvent("emp-1", 9, 17, 0, attendance.KindOut),
	}
	svc := newStubService(events, shiftedEmployee())

	summary, err := svc.GetDaySummary(context.Background(), "emp-1", "2026-03-09")

	require.NoError(t, err)
	assert.True(t, summary.IsLate)
	assert.False(t, summary.IsEarlyLeave)
	assert.InDelta(t, 8.67, summary.TotalHours, 0.005)
	assert.Equal(t, 0, summary.Unmatched)
	require.Len(t, summary.Events, 2)
}

func TestGetRangeSummary_WeekCoversMondayThroughSunday(t *testing.T) {
	// 2026-03-11 is a Wednesday; the week runs 03-09 through 03-15.
	events := []attendance.Event{
		dayEvent("emp-1", 9, 9, 0, attendance.KindIn),
		dayEvent("emp-1", 9, 17, 0, attendance.KindOut),
		dayEvent("emp-1", 11, 9, 0, attendance.KindIn),
		dayEvent("emp-1", 11, 13, 30, attendance.KindOut),
	}
	svc := newStubService(events, shiftedEmployee())

	summary, err := svc.GetRangeSummary(context.Background(), "emp-1", report.HistoryRequest{
		Period: report.PeriodWeek,
		Date:   "2026-03-11",
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", summary.Start)
	assert.Equal(t, "2026-03-15", summary.End)
	require.Len(t, summary.Days, 7)

	assert.InDelta(t, 8.0, summary.Days[0].TotalHours, 1e-9)
	assert.Zero(t, summary.Days[1].TotalHours, "empty days appear with zero hours")
	assert.InDelta(t, 4.5, summary.Days[2].TotalHours, 1e-9)
	assert.InDelta(t, 12.5, summary.SumHours, 1e-9)
}

func TestGetRangeSummary_DefaultsToSingleDay(t *testing.T) {
	svc := newStubService(nil, shiftedEmployee())

	summary, err := svc.GetRangeSummary(context.Background(), "emp-1", report.HistoryRequest{
		Date: "2026-03-09",
	})

	require.NoError(t, err)
	assert.Equal(t, report.PeriodDay, summary.Period)
	require.Len(t, summary.Days, 1)
}

func TestGetRangeSummary_RejectsUnknownPeriod(t *testing.T) {
	svc := newStubService(nil, shiftedEmployee())

	_, err := svc.GetRangeSummary(context.Background(), "emp-1", report.HistoryRequest{
		Period: "fortnight",
	})

	assert.Error(t, err)
}

func TestGetMonthlyTable_TotalsEqualSumOfDays(t *testing.T) {
	events := []attendance.Event{
		dayEvent("emp-1", 2, 9, 0, attendance.KindIn),
		dayEvent("emp-1", 2, 17, 0, attendance.KindOut),
		dayEvent("emp-1", 3, 9, 0, attendance.KindIn),
		dayEvent("emp-1", 3, 13, 30, attendance.KindOut),
	}
	svc := newStubService(events, shiftedEmployee())

	table, err := svc.GetMonthlyTable(context.Background(), "2026-03")

	require.NoError(t, err)
	assert.Equal(t, "2026-03", table.Month)
	require.Len(t, table.Days, 31)
	assert.Equal(t, "01/03", table.Days[0])
	assert.Equal(t, "31/03", table.Days[30])

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "alice", row.Username)
	assert.InDelta(t, 8.0, row.DailyHours[1], 1e-9)
	assert.InDelta(t, 4.5, row.DailyHours[2], 1e-9)
	assert.InDelta(t, 12.5, row.TotalHours, 1e-9)
}

func TestExportMonthlyCSV(t *testing.T) {
	events := []attendance.Event{
		dayEvent("emp-1", 2, 9, 0, attendance.KindIn),
		dayEvent("emp-1", 2, 17, 0, attendance.KindOut),
	}
	svc := newStubService(events, shiftedEmployee())

	var buf bytes.Buffer
	table, err := svc.ExportMonthlyCSV(context.Background(), "2026-03", &buf)
	require.NoError(t, err)

	assert.Equal(t, "attendance_2026_03.csv", table.Filename("csv"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "Username", header[0])
	assert.Equal(t, "Full Name", header[1])
	assert.Equal(t, "01/03", header[2])
	assert.Equal(t, "Total Hours", header[len(header)-1])

	row := records[1]
	assert.Equal(t, "alice", row[0])
	assert.Equal(t, "Alice Tran", row[1])
	assert.Equal(t, "8.00", row[3]) // 02/03 column
	assert.Equal(t, "8.00", row[len(row)-1])
}

func TestGetDashboard_PresenceCounts(t *testing.T) {
	absent := employee.Employee{ID: "emp-2", Username: "bob", FullName: "Bob Le", IsActive: true}
	events := []attendance.Event{
		dayEvent("emp-1", 9, 8, 30, attendance.KindIn),
		dayEvent("emp-1", 9, 17, 0, attendance.KindOut),
	}
	svc := newStubService(events, shiftedEmployee(), absent)

	dashboard, err := svc.GetDashboard(context.Background(), report.DashboardRequest{Date: "2026-03-09"})

	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.TotalEmployees)
	assert.Equal(t, 1, dashboard.Present)
	assert.Equal(t, 1, dashboard.Absent)
	assert.Equal(t, 1, dashboard.LateCount)
	require.Len(t, dashboard.DailyHours, 1)
	assert.InDelta(t, 8.5, dashboard.DailyHours[0].Hours, 1e-9)
}
