package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/pkg/lock"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

// MarkAbsentees implements attendance.AttendanceService. Shifts of the date that
// have ended without any attendance record get an absent record. Running it
// again for the same date creates nothing new.
func (a *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, req attendance.MarkAbsenteesRequest) (attendance.MarkAbsenteesResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkAbsenteesResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.sweepTimeout)
	defer cancel()

	shifts, err := a.ShiftRepository.ListByAgency(ctx, req.AgencyID)
	if err != nil {
		return attendance.MarkAbsenteesResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].ID < shifts[j].ID })

	now := a.now()
	resp := attendance.MarkAbsenteesResponse{
		AgencyID: req.AgencyID,
		Date:     req.Date,
		Records:  []attendance.AttendanceResponse{},
	}

	for _, sh := range shifts {
		if err := ctx.Err(); err != nil {
			resp.Created = len(resp.Records)
			return resp, fmt.Errorf("absentee sweep interrupted: %w", err)
		}
		if !sweepable(sh, req.Date) || sh.End.After(now) {
			continue
		}

		created, err := a.markAbsent(ctx, sh)
		if err != nil {
			resp.Created = len(resp.Records)
			return resp, err
		}
		if created != nil {
			resp.Records = append(resp.Records, attendance.NewAttendanceResponse(*created))
		}
	}
	resp.Created = len(resp.Records)

	if resp.Created > 0 {
		slog.Info("Absentees marked", "agency_id", req.AgencyID, "date", req.Date, "created", resp.Created)
		a.notify(ctx, notification.Request{
			AgencyID: req.AgencyID,
			Type:     notification.TypeAbsenteesMarked,
			Title:    "Absentees marked",
			Message:  fmt.Sprintf("%d absent shift(s) on %s", resp.Created, req.Date),
			Data:     map[string]any{"date": req.Date, "count": resp.Created},
		})
	}

	return resp, nil
}

// markAbsent creates the absent record for sh unless one already exists.
func (a *AttendanceServiceImpl) markAbsent(ctx context.Context, sh shift.Shift) (*attendance.Attendance, error) {
	unlock, err := a.locker.Lock(ctx, lock.ShiftKey(sh.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock shift: %w", err)
	}
	defer unlock()

	existing, err := a.AttendanceRepository.ListByShift(ctx, sh.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check shift attendance: %w", err)
	}
	if len(existing) > 0 {
		return nil, nil
	}

	shiftID := sh.ID
	scheduledStart := sh.Start
	status := attendance.StatusAbsent
	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		AgencyID:       sh.AgencyID,
		UserID:         sh.EmployeeID,
		SiteID:         sh.SiteID,
		ShiftID:        &shiftID,
		ScheduledStart: &scheduledStart,
		BreakPeriods:   []attendance.BreakPeriod{},
		Status:         &status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create absentee record: %w", err)
	}
	return &created, nil
}

// sweepable reports whether sh is an assigned, non-cancelled shift starting on date.
func sweepable(sh shift.Shift, date string) bool {
	if sh.EmployeeID == "" || sh.Status == shift.StatusCancelled {
		return false
	}
	return timeutil.DateOf(sh.Start) == date
}
