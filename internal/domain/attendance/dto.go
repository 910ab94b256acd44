package attendance

import (
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"github.com/securefront/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	UserID   string   `json:"-"`
	AgencyID string   `json:"-"`
	SiteID   string   `json:"site_id"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

// HasLocation reports whether both coordinates were supplied.
func (r *ClockInRequest) HasLocation() bool {
	return r.Lat != nil && r.Lng != nil
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if validator.IsEmpty(r.AgencyID) {
		errs.Add("agency_id", "agency_id is required")
	}
	if validator.IsEmpty(r.SiteID) {
		errs.Add("site_id", "site_id is required")
	}
	if r.Lat != nil && !validator.IsValidLatitude(*r.Lat) {
		errs.Add("lat", "lat must be between -90 and 90")
	}
	if r.Lng != nil && !validator.IsValidLongitude(*r.Lng) {
		errs.Add("lng", "lng must be between -180 and 180")
	}

	return errs.Err()
}

// AttendanceActionRequest addresses break and clock-out transitions.
type AttendanceActionRequest struct {
	AgencyID     string `json:"-"`
	AttendanceID string `json:"attendance_id"`
}

func (r *AttendanceActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs.Add("attendance_id", "attendance_id is required")
	}

	return errs.Err()
}

type MarkAbsenteesRequest struct {
	AgencyID string `json:"-"`
	Date     string `json:"date"`
}

func (r *MarkAbsenteesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AgencyID) {
		errs.Add("agency_id", "agency_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}

	return errs.Err()
}

type AttendanceFilter struct {
	AgencyID string
	Date     string
	SiteID   string
	UserID   string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD")
		}
	}

	return errs.Err()
}

type BreakPeriodResponse struct {
	BreakStart string  `json:"break_start"`
	BreakEnd   *string `json:"break_end"`
}

type AttendanceResponse struct {
	ID             string                `json:"id"`
	AgencyID       string                `json:"agency_id"`
	UserID         string                `json:"user_id"`
	SiteID         string                `json:"site_id"`
	ShiftID        *string               `json:"shift_id"`
	ClockIn        *string               `json:"clock_in"`
	ClockOut       *string               `json:"clock_out"`
	ScheduledStart *string               `json:"scheduled_start"`
	BreakPeriods   []BreakPeriodResponse `json:"break_periods"`
	HoursWorked    float64               `json:"hours_worked"`
	OvertimeHours  float64               `json:"overtime_hours"`
	Lat            *float64              `json:"lat"`
	Lng            *float64              `json:"lng"`
	Status         *string               `json:"status"`
	State          string                `json:"state"`
	Late           bool                  `json:"late"`
	CreatedAt      string                `json:"created_at"`
	UpdatedAt      string                `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	breaks := make([]BreakPeriodResponse, 0, len(a.BreakPeriods))
	for _, b := range a.BreakPeriods {
		breaks = append(breaks, BreakPeriodResponse{
			BreakStart: timeutil.FormatUTC(b.Start),
			BreakEnd:   timeutil.FormatPtr(b.End),
		})
	}

	var status *string
	if a.Status != nil {
		s := string(*a.Status)
		status = &s
	}

	return AttendanceResponse{
		ID:             a.ID,
		AgencyID:       a.AgencyID,
		UserID:         a.UserID,
		SiteID:         a.SiteID,
		ShiftID:        a.ShiftID,
		ClockIn:        timeutil.FormatPtr(a.ClockIn),
		ClockOut:       timeutil.FormatPtr(a.ClockOut),
		ScheduledStart: timeutil.FormatPtr(a.ScheduledStart),
		BreakPeriods:   breaks,
		HoursWorked:    a.HoursWorked,
		OvertimeHours:  a.OvertimeHours,
		Lat:            a.Lat,
		Lng:            a.Lng,
		Status:         status,
		State:          string(a.State()),
		Late:           a.IsLate(),
		CreatedAt:      timeutil.FormatUTC(a.CreatedAt),
		UpdatedAt:      timeutil.FormatUTC(a.UpdatedAt),
	}
}

type MarkAbsenteesResponse struct {
	AgencyID string               `json:"agency_id"`
	Date     string               `json:"date"`
	Created  int                  `json:"created"`
	Records  []AttendanceResponse `json:"records"`
}
