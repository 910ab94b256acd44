package report

import "context"

// ReportService derives read-only views over shifts, attendance and employees
type ReportService interface {
	// AttendanceSummary covers today's presence, lateness, overtime and absences
	AttendanceSummary(ctx context.Context, agencyID string) (AttendanceSummaryResponse, error)

	// SiteSummary aggregates attendance per site over a date range
	SiteSummary(ctx context.Context, req SiteSummaryRequest) (SiteSummaryResponse, error)

	// Timesheet lists one row per shift in range
	Timesheet(ctx context.Context, filter TimesheetFilter) (TimesheetResponse, error)

	// ExportTimesheet renders the timesheet as CSV or XLSX
	ExportTimesheet(ctx context.Context, filter TimesheetFilter, format ExportFormat) (ExportFile, error)

	SubmitHourlyReport(ctx context.Context, req HourlyReportRequest) (HourlyReportResponse, error)
	ListHourlyReports(ctx context.Context, agencyID string) ([]HourlyReportResponse, error)
}
