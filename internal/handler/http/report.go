package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/report"
	"github.com/timekeep/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	MyHistory(w http.ResponseWriter, r *http.Request)
	EmployeeHistory(w http.ResponseWriter, r *http.Request)
	MonthlyTable(w http.ResponseWriter, r *http.Request)
	ExportMonthlyCSV(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func historyRequestFromQuery(r *http.Request) report.HistoryRequest {
	return report.HistoryRequest{
		Period: report.Period(r.URL.Query().Get("period")),
		Date:   r.URL.Query().Get("date"),
	}
}

// MyHistory implements ReportHandler.
func (h *reportHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetMyRangeSummary(r.Context(), historyRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeHistory implements ReportHandler.
func (h *reportHandlerImpl) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	result, err := h.reportService.GetRangeSummary(r.Context(), employeeID, historyRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func monthFromQuery(r *http.Request) string {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	return month
}

// MonthlyTable implements ReportHandler.
func (h *reportHandlerImpl) MonthlyTable(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetMonthlyTable(r.Context(), monthFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyCSV implements ReportHandler.
func (h *reportHandlerImpl) ExportMonthlyCSV(w http.ResponseWriter, r *http.Request) {
	month := monthFromQuery(r)

	// Parse the month up front so a bad parameter still yields a JSON error
	// instead of a half-written attachment.
	if _, err := time.Parse("2006-01", month); err != nil {
		response.BadRequest(w, "month must be YYYY-MM", nil)
		return
	}

	table := report.MonthlyTable{Month: month}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table.Filename("csv")))

	if _, err := h.reportService.ExportMonthlyCSV(r.Context(), month, w); err != nil {
		response.HandleError(w, err)
		return
	}
}

// Dashboard implements ReportHandler.
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	req := report.DashboardRequest{
		Date: r.URL.Query().Get("date"),
		View: r.URL.Query().Get("view"),
	}

	result, err := h.reportService.GetDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
