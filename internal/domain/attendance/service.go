package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn validates location and shift, then opens a record
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	StartBreak(ctx context.Context, req AttendanceActionRequest) (AttendanceResponse, error)
	EndBreak(ctx context.Context, req AttendanceActionRequest) (AttendanceResponse, error)

	// ClockOut computes worked and overtime hours and completes the shift
	ClockOut(ctx context.Context, req AttendanceActionRequest) (AttendanceResponse, error)

	// MarkAbsentees creates absent records for elapsed shifts nobody attended
	MarkAbsentees(ctx context.Context, req MarkAbsenteesRequest) (MarkAbsenteesResponse, error)

	Get(ctx context.Context, agencyID, attendanceID string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
	ListMine(ctx context.Context, userID string) ([]AttendanceResponse, error)
}
