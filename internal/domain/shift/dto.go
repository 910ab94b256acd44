package shift

import (
	"time"

	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"github.com/securefront/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	AgencyID   string `json:"-"`
	EmployeeID string `json:"employee_id"`
	SiteID     string `json:"site_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status == "" {
		r.Status = string(StatusScheduled)
		if validator.IsEmpty(r.EmployeeID) {
			r.Status = string(StatusOpen)
		}
	}
	if !validator.IsInSlice(r.Status, StatusValues) {
		errs.Add("status", "status must be one of scheduled, open, pending, completed, cancelled")
	}
	if validator.IsEmpty(r.SiteID) {
		errs.Add("site_id", "site_id is required")
	}
	if validator.IsEmpty(r.EmployeeID) && r.Status != string(StatusOpen) {
		errs.Add("employee_id", "employee_id is required unless the shift is open")
	}
	validateRange(&errs, r.Start, r.End)

	return errs.Err()
}

// Times returns the parsed interval; call after Validate.
func (r *CreateShiftRequest) Times() (time.Time, time.Time) {
	start, _ := timeutil.ParseUTC(r.Start)
	end, _ := timeutil.ParseUTC(r.End)
	return start, end
}

type UpdateShiftRequest struct {
	AgencyID   string  `json:"-"`
	ShiftID    string  `json:"-"`
	EmployeeID *string `json:"employee_id"`
	SiteID     *string `json:"site_id"`
	Start      *string `json:"start"`
	End        *string `json:"end"`
	Status     *string `json:"status"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs.Add("id", "shift id is required")
	}
	if r.SiteID != nil && validator.IsEmpty(*r.SiteID) {
		errs.Add("site_id", "site_id must not be empty")
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, StatusValues) {
		errs.Add("status", "status must be one of scheduled, open, pending, completed, cancelled")
	}
	if r.Start != nil {
		if _, ok := validator.IsValidDateTime(*r.Start); !ok {
			errs.Add("start", "start must be an ISO-8601 timestamp")
		}
	}
	if r.End != nil {
		if _, ok := validator.IsValidDateTime(*r.End); !ok {
			errs.Add("end", "end must be an ISO-8601 timestamp")
		}
	}

	return errs.Err()
}

type ApplyShiftRequest struct {
	AgencyID   string `json:"-"`
	EmployeeID string `json:"-"`
	ShiftID    string `json:"-"`
}

type UpdateStatusRequest struct {
	EmployeeID string `json:"-"`
	ShiftID    string `json:"-"`
	Status     string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, StatusValues) {
		errs.Add("status", "status must be one of scheduled, open, pending, completed, cancelled")
	}

	return errs.Err()
}

type CalendarFilter struct {
	AgencyID  string
	StartDate string
	EndDate   string
	SiteID    string
}

func (f *CalendarFilter) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs.Add("start_date", "start_date must be YYYY-MM-DD")
	}
	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs.Add("end_date", "end_date must be YYYY-MM-DD")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.Err()
}

// Range returns [start of StartDate, start of the day after EndDate).
func (f *CalendarFilter) Range() (time.Time, time.Time) {
	start, _ := timeutil.ParseDate(f.StartDate)
	end, _ := timeutil.ParseDate(f.EndDate)
	return start, end.AddDate(0, 0, 1)
}

type ShiftResponse struct {
	ID         string `json:"id"`
	AgencyID   string `json:"agency_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	SiteID     string `json:"site_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:         s.ID,
		AgencyID:   s.AgencyID,
		EmployeeID: s.EmployeeID,
		SiteID:     s.SiteID,
		Start:      timeutil.FormatUTC(s.Start),
		End:        timeutil.FormatUTC(s.End),
		Status:     string(s.Status),
	}
}

// CalendarEvent follows the event object shape calendar widgets consume.
type CalendarEvent struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Start         string             `json:"start"`
	End           string             `json:"end"`
	ExtendedProps CalendarEventProps `json:"extendedProps"`
}

type CalendarEventProps struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	SiteID       string `json:"siteId"`
	SiteName     string `json:"siteName"`
	Status       string `json:"status"`
}

func validateRange(errs *validator.ValidationErrors, startStr, endStr string) {
	start, okStart := validator.IsValidDateTime(startStr)
	if !okStart {
		errs.Add("start", "start must be an ISO-8601 timestamp")
	}
	end, okEnd := validator.IsValidDateTime(endStr)
	if !okEnd {
		errs.Add("end", "end must be an ISO-8601 timestamp")
	}
	if okStart && okEnd && !end.After(start) {
		errs.Add("end", "end must be after start")
	}
}
