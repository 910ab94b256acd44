package report

import (
	"time"

	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"github.com/securefront/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE SUMMARY
// ========================================

type AttendanceSummaryResponse struct {
	Date           string          `json:"date"`
	TotalEmployees int             `json:"total_employees"`
	Scheduled      int             `json:"scheduled"`
	Unscheduled    int             `json:"unscheduled"`
	Present        int             `json:"present"`
	Late           LateSummary     `json:"late"`
	Overtime       OvertimeSummary `json:"overtime"`
	Absent         AbsentSummary   `json:"absent"`
}

type LateSummary struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type OvertimeSummary struct {
	TotalHours float64 `json:"total_hours"`
	Employees  int     `json:"employees"`
	Period     string  `json:"period"`
}

type AbsentSummary struct {
	Scheduled   int `json:"scheduled"`
	Unscheduled int `json:"unscheduled"`
	Total       int `json:"total"`
}

// ========================================
// SITE SUMMARY
// ========================================

type SiteSummaryRequest struct {
	AgencyID  string
	StartDate string
	EndDate   string
}

func (r *SiteSummaryRequest) Validate() error {
	return validateDateRange(r.StartDate, r.EndDate)
}

// Range returns [StartDate 00:00, day after EndDate 00:00).
func (r *SiteSummaryRequest) Range() (time.Time, time.Time) {
	return dateRange(r.StartDate, r.EndDate)
}

type SiteSummaryResponse struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Sites     []SiteSummaryRow `json:"sites"`
}

type SiteSummaryRow struct {
	SiteID         string `json:"site_id"`
	SiteName       string `json:"site_name"`
	TotalAssigned  int    `json:"total_assigned"`
	Present        int    `json:"present"`
	Late           int    `json:"late"`
	Absent         int    `json:"absent"`
	AttendanceRate string `json:"attendance_rate"`
}

// ========================================
// TIMESHEET
// ========================================

type TimesheetFilter struct {
	AgencyID   string
	StartDate  string
	EndDate    string
	EmployeeID string
	SiteID     string
}

func (f *TimesheetFilter) Validate() error {
	return validateDateRange(f.StartDate, f.EndDate)
}

func (f *TimesheetFilter) Range() (time.Time, time.Time) {
	return dateRange(f.StartDate, f.EndDate)
}

type TimesheetResponse struct {
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Rows      []TimesheetRowResponse `json:"rows"`
	Totals    TimesheetTotals        `json:"totals"`
}

type TimesheetTotals struct {
	Shifts        int     `json:"shifts"`
	Present       int     `json:"present"`
	Late          int     `json:"late"`
	Absent        int     `json:"absent"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type TimesheetRowResponse struct {
	ShiftID        string  `json:"shift_id"`
	AttendanceID   string  `json:"attendance_id,omitempty"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	EmployeeCode   string  `json:"employee_code"`
	SiteID         string  `json:"site_id"`
	SiteName       string  `json:"site_name"`
	ShiftStart     string  `json:"shift_start"`
	ShiftEnd       string  `json:"shift_end"`
	ClockIn        *string `json:"clock_in"`
	ClockOut       *string `json:"clock_out"`
	ScheduledHours float64 `json:"scheduled_hours"`
	BreakMinutes   float64 `json:"break_minutes"`
	HoursWorked    float64 `json:"hours_worked"`
	OvertimeHours  float64 `json:"overtime_hours"`
	Status         string  `json:"status"`
	Remarks        string  `json:"remarks"`
}

func NewTimesheetRowResponse(r TimesheetRow) TimesheetRowResponse {
	return TimesheetRowResponse{
		ShiftID:        r.ShiftID,
		AttendanceID:   r.AttendanceID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		EmployeeCode:   r.EmployeeCode,
		SiteID:         r.SiteID,
		SiteName:       r.SiteName,
		ShiftStart:     timeutil.FormatUTC(r.ShiftStart),
		ShiftEnd:       timeutil.FormatUTC(r.ShiftEnd),
		ClockIn:        timeutil.FormatPtr(r.ClockIn),
		ClockOut:       timeutil.FormatPtr(r.ClockOut),
		ScheduledHours: r.ScheduledHours,
		BreakMinutes:   r.BreakMinutes,
		HoursWorked:    r.HoursWorked,
		OvertimeHours:  r.OvertimeHours,
		Status:         string(r.Status),
		Remarks:        r.Remarks,
	}
}

// ========================================
// HOURLY REPORTS
// ========================================

type HourlyReportRequest struct {
	AgencyID   string `json:"-"`
	UserID     string `json:"-"`
	SiteID     string `json:"site_id"`
	Notes      string `json:"notes"`
	ReportedAt string `json:"reported_at"`
}

func (r *HourlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs.Add("site_id", "site_id is required")
	}
	if validator.IsEmpty(r.Notes) {
		errs.Add("notes", "notes is required")
	}
	if r.ReportedAt != "" {
		if _, ok := validator.IsValidDateTime(r.ReportedAt); !ok {
			errs.Add("reported_at", "reported_at must be an ISO-8601 timestamp")
		}
	}

	return errs.Err()
}

type HourlyReportResponse struct {
	ID         string `json:"id"`
	AgencyID   string `json:"agency_id"`
	SiteID     string `json:"site_id"`
	UserID     string `json:"user_id"`
	Notes      string `json:"notes"`
	ReportedAt string `json:"reported_at"`
}

func NewHourlyReportResponse(h HourlyReport) HourlyReportResponse {
	return HourlyReportResponse{
		ID:         h.ID,
		AgencyID:   h.AgencyID,
		SiteID:     h.SiteID,
		UserID:     h.UserID,
		Notes:      h.Notes,
		ReportedAt: timeutil.FormatUTC(h.ReportedAt),
	}
}

func validateDateRange(startDate, endDate string) error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(startDate)
	if !okStart {
		errs.Add("start_date", "start_date must be YYYY-MM-DD")
	}
	end, okEnd := validator.IsValidDate(endDate)
	if !okEnd {
		errs.Add("end_date", "end_date must be YYYY-MM-DD")
	}
	if len(errs) > 0 {
		return errs
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

func dateRange(startDate, endDate string) (time.Time, time.Time) {
	start, _ := timeutil.ParseDate(startDate)
	end, _ := timeutil.ParseDate(endDate)
	return start, end.AddDate(0, 0, 1)
}
