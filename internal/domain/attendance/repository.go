package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Tenant checks happen in the service; the repository is keyed by id only.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when absent
	GetByID(ctx context.Context, id string) (Attendance, error)

	// ListByUser is used for the once-per-day clock-in check
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListByShift is the existence check that keeps one record per shift
	ListByShift(ctx context.Context, shiftID string) ([]Attendance, error)

	ListByAgency(ctx context.Context, agencyID string) ([]Attendance, error)

	// UpdateBreaks replaces the break periods of a record
	UpdateBreaks(ctx context.Context, id string, breaks []BreakPeriod) (Attendance, error)

	// UpdateClockOut terminates a record
	UpdateClockOut(ctx context.Context, id string, clockOut time.Time, hoursWorked, overtimeHours float64) (Attendance, error)
}
