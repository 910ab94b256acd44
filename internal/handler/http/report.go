package http

import (
	"net/http"

	"github.com/securefront/workforce-backend-go/internal/domain/report"
	"github.com/securefront/workforce-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	SiteSummary(w http.ResponseWriter, r *http.Request)
	Timesheet(w http.ResponseWriter, r *http.Request)
	ExportTimesheet(w http.ResponseWriter, r *http.Request)
	ListHourlyReports(w http.ResponseWriter, r *http.Request)
	SubmitHourlyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// AttendanceSummary handles GET /attendance/summary
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.AttendanceSummary(r.Context(), id.AgencyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SiteSummary handles GET /attendance/site-summary?start_date=&end_date=
func (h *reportHandlerImpl) SiteSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.SiteSummary(r.Context(), report.SiteSummaryRequest{
		AgencyID:  id.AgencyID,
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Timesheet handles GET /timesheets
func (h *reportHandlerImpl) Timesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.Timesheet(r.Context(), timesheetFilter(r, id.AgencyID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportTimesheet handles GET /timesheets/export?format=csv|xlsx
func (h *reportHandlerImpl) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	format := report.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = report.ExportCSV
	}

	file, err := h.reportService.ExportTimesheet(r.Context(), timesheetFilter(r, id.AgencyID), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Data)
}

// ListHourlyReports handles GET /hourly-reports
func (h *reportHandlerImpl) ListHourlyReports(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.ListHourlyReports(r.Context(), id.AgencyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitHourlyReport handles POST /hourly-reports
func (h *reportHandlerImpl) SubmitHourlyReport(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req report.HourlyReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AgencyID = id.AgencyID
	req.UserID = id.UserID

	result, err := h.reportService.SubmitHourlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Hourly report submitted", result)
}

func timesheetFilter(r *http.Request, agencyID string) report.TimesheetFilter {
	q := r.URL.Query()
	return report.TimesheetFilter{
		AgencyID:   agencyID,
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
		SiteID:     q.Get("site_id"),
	}
}
