package shift

import (
	"context"
	"time"
)

// ShiftService covers scheduling operations that need validation beyond plain persistence
type ShiftService interface {
	// Create stores a shift after the overlap check
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	// Update changes a shift, checking overlaps with the shift itself excluded
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)

	Get(ctx context.Context, agencyID, shiftID string) (ShiftResponse, error)
	Delete(ctx context.Context, agencyID, shiftID string) error

	// Calendar returns shifts in range shaped as calendar events
	Calendar(ctx context.Context, filter CalendarFilter) ([]CalendarEvent, error)

	// ListOpen returns unassigned open shifts that have not started yet
	ListOpen(ctx context.Context, agencyID string) ([]ShiftResponse, error)

	// ListAssigned returns the employee's upcoming shifts
	ListAssigned(ctx context.Context, employeeID string) ([]ShiftResponse, error)

	// Apply assigns an open shift to the calling employee and marks it pending
	Apply(ctx context.Context, req ApplyShiftRequest) (ShiftResponse, error)

	// UpdateStatus lets the assigned employee change the shift status
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (ShiftResponse, error)
}

// ConflictDetector reports overlap between a proposed interval and the
// employee's existing shifts.
type ConflictDetector interface {
	HasConflict(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) (bool, error)
}

// Matcher finds the shift that authorizes a clock-in.
type Matcher interface {
	FindAuthorizingShift(ctx context.Context, employeeID, siteID, agencyID string, now time.Time) (*Shift, error)
}
