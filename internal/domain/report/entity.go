package report

import "time"

// HourlyReport is a guard's periodic check-in note for a site.
type HourlyReport struct {
	ID         string
	AgencyID   string
	SiteID     string
	UserID     string
	Notes      string
	ReportedAt time.Time
	CreatedAt  time.Time
}

type TimesheetStatus string

const (
	TimesheetPresent TimesheetStatus = "Present"
	TimesheetLate    TimesheetStatus = "Late"
	TimesheetAbsent  TimesheetStatus = "Absent"
)

// TimesheetRow is one shift in a timesheet, joined with its attendance record if any.
type TimesheetRow struct {
	ShiftID        string
	AttendanceID   string
	EmployeeID     string
	EmployeeName   string
	EmployeeCode   string
	SiteID         string
	SiteName       string
	ShiftStart     time.Time
	ShiftEnd       time.Time
	ClockIn        *time.Time
	ClockOut       *time.Time
	ScheduledHours float64
	BreakMinutes   float64
	HoursWorked    float64
	OvertimeHours  float64
	Status         TimesheetStatus
	Remarks        string
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportFile is a rendered timesheet ready to be streamed to a client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
