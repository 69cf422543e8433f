package report

import (
	"context"
	"io"
)

// ReportService derives attendance metrics from stored events. All figures
// are recomputed from events on every call; worked hours are never stored.
type ReportService interface {
	// GetDaySummary evaluates one employee's day.
	GetDaySummary(ctx context.Context, employeeID string, date string) (DaySummary, error)

	// GetRangeSummary evaluates a day/week/month window around a reference
	// date for one employee. Days without events appear with zero hours.
	GetRangeSummary(ctx context.Context, employeeID string, req HistoryRequest) (RangeSummary, error)

	// GetMyRangeSummary is GetRangeSummary for the authenticated employee.
	GetMyRangeSummary(ctx context.Context, req HistoryRequest) (RangeSummary, error)

	// GetMonthlyTable builds the month-by-employee hours table.
	GetMonthlyTable(ctx context.Context, month string) (MonthlyTable, error)

	// ExportMonthlyCSV writes the monthly table as CSV to w.
	ExportMonthlyCSV(ctx context.Context, month string, w io.Writer) (MonthlyTable, error)

	// GetDashboard aggregates presence counts and daily hours.
	GetDashboard(ctx context.Context, req DashboardRequest) (Dashboard, error)
}
