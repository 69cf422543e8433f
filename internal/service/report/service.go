package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/domain/report"
	"github.com/go-chi/jwtauth/v5"
)

type ReportServiceImpl struct {
	attendance.EventRepository
	employee.EmployeeRepository
	loc *time.Location
}

func NewReportService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		loc:                loc,
	}
}

// resolveDate parses a "YYYY-MM-DD" reference date in the app timezone,
// defaulting to today.
func (s *ReportServiceImpl) resolveDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Now().In(s.loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return d, nil
}

// summarizeDay evaluates one day's ordered events against the employee's
// shift. Works for empty days too; those report zero hours.
func (s *ReportServiceImpl) summarizeDay(day time.Time, events []attendance.Event, emp *employee.Employee) report.DaySummary {
	intervals, unmatched := PairEvents(events)

	isLate, isEarlyLeave := EvaluateShift(day, events, emp.Shift, s.loc)

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.ToEventResponse(ev))
	}

	summary := report.DaySummary{
		Date:         day.Format("2006-01-02"),
		Events:       responses,
		Intervals:    intervals,
		Unmatched:    unmatched,
		IsLate:       isLate,
		IsEarlyLeave: isEarlyLeave,
	}
	summary.SetRawHours(TotalHours(intervals))
	return summary
}

// groupByDay buckets ordered events by their local calendar date.
func (s *ReportServiceImpl) groupByDay(events []attendance.Event) map[string][]attendance.Event {
	byDay := make(map[string][]attendance.Event)
	for _, ev := range events {
		key := ev.Timestamp.In(s.loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}
	return byDay
}

// GetDaySummary implements report.ReportService.
func (s *ReportServiceImpl) GetDaySummary(ctx context.Context, employeeID string, date string) (report.DaySummary, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return report.DaySummary{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return report.DaySummary{}, err
	}

	from, to := DayBounds(day, s.loc)
	events, err := s.EventRepository.ListForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return report.DaySummary{}, fmt.Errorf("failed to list events: %w", err)
	}

	return s.summarizeDay(day, events, &emp), nil
}

// GetRangeSummary implements report.ReportService.
func (s *ReportServiceImpl) GetRangeSummary(ctx context.Context, employeeID string, req report.HistoryRequest) (report.RangeSummary, error) {
	if err := req.Validate(); err != nil {
		return report.RangeSummary{}, err
	}

	ref, err := s.resolveDate(req.Date)
	if err != nil {
		return report.RangeSummary{}, err
	}

	period := req.Period
	if period == "" {
		period = report.PeriodDay
	}

	var startDay, endDay time.Time
	switch period {
	case report.PeriodWeek:
		startDay, endDay = WeekBounds(ref)
	case report.PeriodMonth:
		startDay, endDay = MonthBounds(ref)
	default:
		startDay, endDay = ref, ref
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return report.RangeSummary{}, err
	}

	from, _ := DayBounds(startDay, s.loc)
	_, to := DayBounds(endDay, s.loc)
	events, err := s.EventRepository.ListForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return report.RangeSummary{}, fmt.Errorf("failed to list events: %w", err)
	}

	byDay := s.groupByDay(events)

	summary := report.RangeSummary{
		Period: period,
		Start:  startDay.Format("2006-01-02"),
		End:    endDay.Format("2006-01-02"),
	}

	var sum float64
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		daySummary := s.summarizeDay(day, byDay[day.Format("2006-01-02")], &emp)
		sum += daySummary.RawHours()
		summary.Days = append(summary.Days, daySummary)
	}
	summary.SumHours = report.Round2(sum)

	return summary, nil
}

// GetMyRangeSummary implements report.ReportService.
func (s *ReportServiceImpl) GetMyRangeSummary(ctx context.Context, req report.HistoryRequest) (report.RangeSummary, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return report.RangeSummary{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return report.RangeSummary{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	return s.GetRangeSummary(ctx, employeeID, req)
}

// buildMonthlyTable assembles the per-employee day-by-day hours grid for
// one "YYYY-MM" month.
func (s *ReportServiceImpl) buildMonthlyTable(ctx context.Context, month string) (report.MonthlyTable, error) {
	ref, err := time.ParseInLocation("2006-01", month, s.loc)
	if err != nil {
		return report.MonthlyTable{}, fmt.Errorf("failed to parse month: %w", err)
	}

	startDay, endDay := MonthBounds(ref)
	daysInMonth := endDay.Day()

	table := report.MonthlyTable{Month: ref.Format("2006-01")}
	for d := 1; d <= daysInMonth; d++ {
		table.Days = append(table.Days, fmt.Sprintf("%02d/%02d", d, int(ref.Month())))
	}

	employees, err := s.EmployeeRepository.ListActiveWithShift(ctx)
	if err != nil {
		return report.MonthlyTable{}, fmt.Errorf("failed to list employees: %w", err)
	}

	from, _ := DayBounds(startDay, s.loc)
	_, to := DayBounds(endDay, s.loc)
	events, err := s.EventRepository.ListAll(ctx, from, to)
	if err != nil {
		return report.MonthlyTable{}, fmt.Errorf("failed to list events: %w", err)
	}

	// employee -> day-of-month -> events
	perEmployee := make(map[string]map[int][]attendance.Event)
	for _, ev := range events {
		local := ev.Timestamp.In(s.loc)
		if perEmployee[ev.EmployeeID] == nil {
			perEmployee[ev.EmployeeID] = make(map[int][]attendance.Event)
		}
		perEmployee[ev.EmployeeID][local.Day()] = append(perEmployee[ev.EmployeeID][local.Day()], ev)
	}

	for _, emp := range employees {
		row := report.MonthlyRow{
			EmployeeID: emp.ID,
			Username:   emp.Username,
			FullName:   emp.FullName,
			DailyHours: make([]float64, daysInMonth),
		}

		var total float64
		for d := 1; d <= daysInMonth; d++ {
			intervals, _ := PairEvents(perEmployee[emp.ID][d])
			raw := TotalHours(intervals)
			row.DailyHours[d-1] = report.Round2(raw)
			total += raw
		}
		row.TotalHours = report.Round2(total)

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// GetMonthlyTable implements report.ReportService.
func (s *ReportServiceImpl) GetMonthlyTable(ctx context.Context, month string) (report.MonthlyTable, error) {
	return s.buildMonthlyTable(ctx, month)
}

// ExportMonthlyCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyCSV(ctx context.Context, month string, w io.Writer) (report.MonthlyTable, error) {
	table, err := s.buildMonthlyTable(ctx, month)
	if err != nil {
		return report.MonthlyTable{}, err
	}

	writer := csv.NewWriter(w)

	header := append([]string{"Username", "Full Name"}, table.Days...)
	header = append(header, "Total Hours")
	if err := writer.Write(header); err != nil {
		return report.MonthlyTable{}, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range table.Rows {
		record := []string{row.Username, row.FullName}
		for _, hours := range row.DailyHours {
			record = append(record, strconv.FormatFloat(hours, 'f', 2, 64))
		}
		record = append(record, strconv.FormatFloat(row.TotalHours, 'f', 2, 64))
		if err := writer.Write(record); err != nil {
			return report.MonthlyTable{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return report.MonthlyTable{}, fmt.Errorf("failed to flush csv: %w", err)
	}

	return table, nil
}

// GetDashboard implements report.ReportService.
func (s *ReportServiceImpl) GetDashboard(ctx context.Context, req report.DashboardRequest) (report.Dashboard, error) {
	if err := req.Validate(); err != nil {
		return report.Dashboard{}, err
	}

	ref, err := s.resolveDate(req.Date)
	if err != nil {
		return report.Dashboard{}, err
	}

	var startDay, endDay time.Time
	switch req.View {
	case "month":
		startDay, endDay = MonthBounds(ref)
	case "year":
		startDay = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, s.loc)
		endDay = time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, s.loc)
	default:
		startDay, endDay = ref, ref
	}

	employees, err := s.EmployeeRepository.ListActiveWithShift(ctx)
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("failed to list employees: %w", err)
	}

	from, _ := DayBounds(startDay, s.loc)
	_, to := DayBounds(endDay, s.loc)
	events, err := s.EventRepository.ListAll(ctx, from, to)
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("failed to list events: %w", err)
	}

	shifts := make(map[string]*employee.Employee, len(employees))
	for idx := range employees {
		shifts[employees[idx].ID] = &employees[idx]
	}

	// employee -> local date -> events
	perEmployee := make(map[string]map[string][]attendance.Event)
	present := make(map[string]bool)
	for _, ev := range events {
		key := ev.Timestamp.In(s.loc).Format("2006-01-02")
		if perEmployee[ev.EmployeeID] == nil {
			perEmployee[ev.EmployeeID] = make(map[string][]attendance.Event)
		}
		perEmployee[ev.EmployeeID][key] = append(perEmployee[ev.EmployeeID][key], ev)
		if ev.Kind == attendance.KindIn {
			present[ev.EmployeeID] = true
		}
	}

	dashboard := report.Dashboard{
		Start:          startDay.Format("2006-01-02"),
		End:            endDay.Format("2006-01-02"),
		TotalEmployees: len(employees),
	}
	for _, emp := range employees {
		if present[emp.ID] {
			dashboard.Present++
		}
	}
	dashboard.Absent = dashboard.TotalEmployees - dashboard.Present

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		var dayHours float64
		for employeeID, byDay := range perEmployee {
			dayEvents := byDay[key]
			if len(dayEvents) == 0 {
				continue
			}
			intervals, _ := PairEvents(dayEvents)
			dayHours += TotalHours(intervals)

			if emp, ok := shifts[employeeID]; ok {
				isLate, _ := EvaluateShift(day, dayEvents, emp.Shift, s.loc)
				if isLate {
					dashboard.LateCount++
				}
			}
		}
		dashboard.DailyHours = append(dashboard.DailyHours, report.DailyHours{
			Date:  key,
			Hours: report.Round2(dayHours),
		})
	}

	return dashboard, nil
}
