package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
	"github.com/securefront/workforce-backend-go/internal/pkg/lock"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	site.SiteRepository
	shift.ShiftRepository
	matcher      shift.Matcher
	locker       lock.Locker
	notification notification.Service
	now          func() time.Time
	sweepTimeout time.Duration
}

// Option customizes an AttendanceServiceImpl.
type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *AttendanceServiceImpl) {
		a.now = now
	}
}

// WithNotifications enables clock-in, clock-out and absentee notifications.
func WithNotifications(svc notification.Service) Option {
	return func(a *AttendanceServiceImpl) {
		a.notification = svc
	}
}

// WithSweepTimeout bounds a single MarkAbsentees run.
func WithSweepTimeout(d time.Duration) Option {
	return func(a *AttendanceServiceImpl) {
		if d > 0 {
			a.sweepTimeout = d
		}
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if !req.HasLocation() {
		return attendance.AttendanceResponse{}, attendance.ErrMissingLocation
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	st, err := a.SiteRepository.GetByID(ctx, req.SiteID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if st.AgencyID != req.AgencyID {
		return attendance.AttendanceResponse{}, attendance.ErrForbidden
	}
	if !st.HasGeofence() {
		return attendance.AttendanceResponse{}, attendance.ErrGeofenceNotConfigured
	}
	if !geo.IsInside(geo.Point{Lat: *req.Lat, Lng: *req.Lng}, st.Boundary) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideGeofence
	}

	unlockUser, err := a.locker.Lock(ctx, lock.UserClockInKey(req.UserID))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to lock user clock-in: %w", err)
	}
	defer unlockUser()

	now := a.now()

	existing, err := a.AttendanceRepository.ListByUser(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	for _, rec := range existing {
		if rec.ClockIn != nil && timeutil.SameDate(*rec.ClockIn, now) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
		}
	}

	matched, err := a.matcher.FindAuthorizingShift(ctx, req.UserID, req.SiteID, req.AgencyID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if matched == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoScheduledShift
	}

	unlockShift, err := a.locker.Lock(ctx, lock.ShiftKey(matched.ID))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to lock shift: %w", err)
	}
	defer unlockShift()

	recorded, err := a.AttendanceRepository.ListByShift(ctx, matched.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check shift attendance: %w", err)
	}
	if len(recorded) > 0 {
		return attendance.AttendanceResponse{}, attendance.ErrShiftAlreadyRecorded
	}

	shiftID := matched.ID
	scheduledStart := matched.Start
	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		AgencyID:       req.AgencyID,
		UserID:         req.UserID,
		SiteID:         req.SiteID,
		ShiftID:        &shiftID,
		ClockIn:        &now,
		ScheduledStart: &scheduledStart,
		BreakPeriods:   []attendance.BreakPeriod{},
		Lat:            req.Lat,
		Lng:            req.Lng,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	slog.Info("Clock-in recorded", "attendance_id", created.ID, "user_id", req.UserID, "site_id", req.SiteID, "shift_id", shiftID)
	a.notify(ctx, notification.Request{
		AgencyID:    created.AgencyID,
		RecipientID: created.UserID,
		Type:        notification.TypeClockIn,
		Title:       "Clocked in",
		Message:     fmt.Sprintf("Clocked in at %s", st.Name),
		Data:        map[string]any{"attendanceId": created.ID, "shiftId": shiftID},
	})

	return attendance.NewAttendanceResponse(created), nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.AttendanceActionRequest) (attendance.AttendanceResponse, error) {
	var resp attendance.AttendanceResponse
	err := a.withRecord(ctx, req, func(rec attendance.Attendance) error {
		if err := requireOpen(rec); err != nil {
			return err
		}
		if rec.HasOpenBreak() {
			return attendance.ErrBreakInProgress
		}

		breaks := append(rec.BreakPeriods, attendance.BreakPeriod{Start: a.now()})
		updated, err := a.AttendanceRepository.UpdateBreaks(ctx, rec.ID, breaks)
		if err != nil {
			return fmt.Errorf("failed to start break: %w", err)
		}
		resp = attendance.NewAttendanceResponse(updated)
		return nil
	})
	return resp, err
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.AttendanceActionRequest) (attendance.AttendanceResponse, error) {
	var resp attendance.AttendanceResponse
	err := a.withRecord(ctx, req, func(rec attendance.Attendance) error {
		if err := requireOpen(rec); err != nil {
			return err
		}
		idx := rec.OpenBreakIndex()
		if idx < 0 {
			return attendance.ErrNoActiveBreak
		}

		now := a.now()
		breaks := append([]attendance.BreakPeriod(nil), rec.BreakPeriods...)
		breaks[idx].End = &now
		updated, err := a.AttendanceRepository.UpdateBreaks(ctx, rec.ID, breaks)
		if err != nil {
			return fmt.Errorf("failed to end break: %w", err)
		}
		resp = attendance.NewAttendanceResponse(updated)
		return nil
	})
	return resp, err
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.AttendanceActionRequest) (attendance.AttendanceResponse, error) {
	var resp attendance.AttendanceResponse
	err := a.withRecord(ctx, req, func(rec attendance.Attendance) error {
		if err := requireOpen(rec); err != nil {
			return err
		}

		now := a.now()
		workedMinutes := now.Sub(*rec.ClockIn).Minutes() - rec.BreakMinutes()
		if workedMinutes < 0 {
			return attendance.ErrNegativeDuration
		}
		hoursWorked := attendance.Round2(workedMinutes / 60)

		var overtimeHours float64
		if rec.ShiftID != nil {
			overtimeHours = a.completeShift(ctx, *rec.ShiftID, hoursWorked)
		}

		updated, err := a.AttendanceRepository.UpdateClockOut(ctx, rec.ID, now, hoursWorked, overtimeHours)
		if err != nil {
			return fmt.Errorf("failed to clock out: %w", err)
		}

		a.notify(ctx, notification.Request{
			AgencyID:    updated.AgencyID,
			RecipientID: updated.UserID,
			Type:        notification.TypeClockOut,
			Title:       "Clocked out",
			Message:     fmt.Sprintf("Worked %.2f hours", hoursWorked),
			Data: map[string]any{
				"attendanceId":  updated.ID,
				"hoursWorked":   hoursWorked,
				"overtimeHours": overtimeHours,
			},
		})
		resp = attendance.NewAttendanceResponse(updated)
		return nil
	})
	return resp, err
}

// completeShift returns the overtime against the shift and marks it completed.
// Shift failures are logged only; the attendance record is written regardless.
func (a *AttendanceServiceImpl) completeShift(ctx context.Context, shiftID string, hoursWorked float64) float64 {
	sh, err := a.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		if !errors.Is(err, shift.ErrShiftNotFound) {
			slog.Warn("Failed to load shift for clock-out", "shift_id", shiftID, "error", err)
		}
		return 0
	}

	overtime := attendance.Round2(math.Max(0, hoursWorked-sh.ScheduledHours()))

	if _, err := a.ShiftRepository.UpdateStatus(ctx, shiftID, shift.StatusCompleted); err != nil {
		slog.Warn("Failed to mark shift completed", "shift_id", shiftID, "error", err)
	}
	return overtime
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, agencyID, attendanceID string) (attendance.AttendanceResponse, error) {
	rec, err := a.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.AgencyID != agencyID {
		return attendance.AttendanceResponse{}, attendance.ErrForbidden
	}
	return attendance.NewAttendanceResponse(rec), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByAgency(ctx, filter.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		if filter.SiteID != "" && rec.SiteID != filter.SiteID {
			continue
		}
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		if filter.Date != "" && recordDate(rec) != filter.Date {
			continue
		}
		out = append(out, attendance.NewAttendanceResponse(rec))
	}
	return out, nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, attendance.NewAttendanceResponse(rec))
	}
	return out, nil
}

// withRecord loads the record under its lock and checks the tenant before fn runs.
func (a *AttendanceServiceImpl) withRecord(ctx context.Context, req attendance.AttendanceActionRequest, fn func(attendance.Attendance) error) error {
	if err := req.Validate(); err != nil {
		return err
	}

	unlock, err := a.locker.Lock(ctx, lock.AttendanceKey(req.AttendanceID))
	if err != nil {
		return fmt.Errorf("failed to lock attendance: %w", err)
	}
	defer unlock()

	rec, err := a.AttendanceRepository.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return err
	}
	if rec.AgencyID != req.AgencyID {
		return attendance.ErrForbidden
	}
	return fn(rec)
}

func (a *AttendanceServiceImpl) notify(ctx context.Context, req notification.Request) {
	if a.notification == nil {
		return
	}
	a.notification.Queue(ctx, req)
}

// requireOpen rejects absentee and terminated records.
func requireOpen(rec attendance.Attendance) error {
	if rec.IsClockedOut() {
		return attendance.ErrAlreadyClockedOut
	}
	if rec.ClockIn == nil {
		return attendance.ErrNotClockedIn
	}
	return nil
}

// recordDate is the clock-in date, or the scheduled date for absentee records.
func recordDate(rec attendance.Attendance) string {
	switch {
	case rec.ClockIn != nil:
		return timeutil.DateOf(*rec.ClockIn)
	case rec.ScheduledStart != nil:
		return timeutil.DateOf(*rec.ScheduledStart)
	}
	return ""
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	siteRepo site.SiteRepository,
	shiftRepo shift.ShiftRepository,
	matcher shift.Matcher,
	locker lock.Locker,
	opts ...Option,
) attendance.AttendanceService {
	a := &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		SiteRepository:       siteRepo,
		ShiftRepository:      shiftRepo,
		matcher:              matcher,
		locker:               locker,
		now:                  func() time.Time { return time.Now().UTC() },
		sweepTimeout:         30 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
