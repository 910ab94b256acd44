package shift

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/employee"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/lock"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"github.com/securefront/workforce-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	employee.EmployeeRepository
	site.SiteRepository
	conflicts    shift.ConflictDetector
	locker       lock.Locker
	notification notification.Service
	now          func() time.Time
}

// Option customizes a ShiftServiceImpl.
type Option func(*ShiftServiceImpl)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ShiftServiceImpl) {
		s.now = now
	}
}

// WithNotifications enables the shift.applied agency notification.
func WithNotifications(svc notification.Service) Option {
	return func(s *ShiftServiceImpl) {
		s.notification = svc
	}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	start, end := req.Times()

	if err := s.checkSite(ctx, req.AgencyID, req.SiteID); err != nil {
		return shift.ShiftResponse{}, err
	}

	newShift := shift.Shift{
		AgencyID:   req.AgencyID,
		EmployeeID: req.EmployeeID,
		SiteID:     req.SiteID,
		Start:      start,
		End:        end,
		Status:     shift.Status(req.Status),
	}

	if newShift.EmployeeID == "" {
		created, err := s.ShiftRepository.Create(ctx, newShift)
		if err != nil {
			return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
		}
		return shift.NewShiftResponse(created), nil
	}

	if err := s.checkEmployee(ctx, req.AgencyID, req.EmployeeID); err != nil {
		return shift.ShiftResponse{}, err
	}

	unlock, err := s.locker.Lock(ctx, lock.EmployeeShiftsKey(req.EmployeeID))
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to lock employee shifts: %w", err)
	}
	defer unlock()

	if newShift.Status != shift.StatusCancelled {
		conflict, err := s.conflicts.HasConflict(ctx, req.EmployeeID, start, end, "")
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		if conflict {
			return shift.ShiftResponse{}, shift.ErrShiftConflict
		}
	}

	created, err := s.ShiftRepository.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return shift.NewShiftResponse(created), nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	unlock, err := s.locker.Lock(ctx, lock.ShiftKey(req.ShiftID))
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to lock shift: %w", err)
	}
	defer unlock()

	existing, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if existing.AgencyID != req.AgencyID {
		return shift.ShiftResponse{}, shift.ErrForbidden
	}

	updated := existing
	if req.EmployeeID != nil {
		updated.EmployeeID = *req.EmployeeID
	}
	if req.SiteID != nil {
		updated.SiteID = *req.SiteID
	}
	if req.Status != nil {
		updated.Status = shift.Status(*req.Status)
	}
	if req.Start != nil {
		if updated.Start, err = timeutil.ParseUTC(*req.Start); err != nil {
			return shift.ShiftResponse{}, err
		}
	}
	if req.End != nil {
		if updated.End, err = timeutil.ParseUTC(*req.End); err != nil {
			return shift.ShiftResponse{}, err
		}
	}
	if !updated.End.After(updated.Start) {
		var errs validator.ValidationErrors
		errs.Add("end", "end must be after start")
		return shift.ShiftResponse{}, errs
	}

	if updated.SiteID != existing.SiteID {
		if err := s.checkSite(ctx, req.AgencyID, updated.SiteID); err != nil {
			return shift.ShiftResponse{}, err
		}
	}

	if updated.EmployeeID != "" {
		if updated.EmployeeID != existing.EmployeeID {
			if err := s.checkEmployee(ctx, req.AgencyID, updated.EmployeeID); err != nil {
				return shift.ShiftResponse{}, err
			}
		}

		unlockEmployee, err := s.locker.Lock(ctx, lock.EmployeeShiftsKey(updated.EmployeeID))
		if err != nil {
			return shift.ShiftResponse{}, fmt.Errorf("failed to lock employee shifts: %w", err)
		}
		defer unlockEmployee()

		if updated.Status != shift.StatusCancelled {
			conflict, err := s.conflicts.HasConflict(ctx, updated.EmployeeID, updated.Start, updated.End, updated.ID)
			if err != nil {
				return shift.ShiftResponse{}, err
			}
			if conflict {
				return shift.ShiftResponse{}, shift.ErrShiftConflict
			}
		}
	}

	saved, err := s.ShiftRepository.Update(ctx, updated)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return shift.NewShiftResponse(saved), nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, agencyID, shiftID string) (shift.ShiftResponse, error) {
	existing, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if existing.AgencyID != agencyID {
		return shift.ShiftResponse{}, shift.ErrForbidden
	}
	return shift.NewShiftResponse(existing), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, agencyID, shiftID string) error {
	unlock, err := s.locker.Lock(ctx, lock.ShiftKey(shiftID))
	if err != nil {
		return fmt.Errorf("failed to lock shift: %w", err)
	}
	defer unlock()

	existing, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if existing.AgencyID != agencyID {
		return shift.ErrForbidden
	}
	return s.ShiftRepository.Delete(ctx, shiftID)
}

// Calendar implements shift.ShiftService.
func (s *ShiftServiceImpl) Calendar(ctx context.Context, filter shift.CalendarFilter) ([]shift.CalendarEvent, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	from, to := filter.Range()

	shifts, err := s.ShiftRepository.ListByAgency(ctx, filter.AgencyID)
	if err != nil {
		return nil, err
	}
	employees, err := s.EmployeeRepository.ListByAgency(ctx, filter.AgencyID)
	if err != nil {
		return nil, err
	}
	sites, err := s.SiteRepository.ListByAgency(ctx, filter.AgencyID)
	if err != nil {
		return nil, err
	}

	employeeNames := make(map[string]string, len(employees))
	for _, e := range employees {
		employeeNames[e.ID] = e.Name
	}
	siteNames := make(map[string]string, len(sites))
	for _, st := range sites {
		siteNames[st.ID] = st.Name
	}

	inRange := make([]shift.Shift, 0, len(shifts))
	for _, sh := range shifts {
		if sh.Start.Before(from) || !sh.Start.Before(to) {
			continue
		}
		if filter.SiteID != "" && sh.SiteID != filter.SiteID {
			continue
		}
		inRange = append(inRange, sh)
	}
	sortShifts(inRange)

	events := make([]shift.CalendarEvent, 0, len(inRange))
	for _, sh := range inRange {
		employeeName := employeeNames[sh.EmployeeID]
		if sh.EmployeeID == "" {
			employeeName = "Open"
		}
		siteName := siteNames[sh.SiteID]

		events = append(events, shift.CalendarEvent{
			ID:    sh.ID,
			Title: fmt.Sprintf("%s - %s", employeeName, siteName),
			Start: timeutil.FormatUTC(sh.Start),
			End:   timeutil.FormatUTC(sh.End),
			ExtendedProps: shift.CalendarEventProps{
				EmployeeID:   sh.EmployeeID,
				EmployeeName: employeeName,
				SiteID:       sh.SiteID,
				SiteName:     siteName,
				Status:       string(sh.Status),
			},
		})
	}
	return events, nil
}

// ListOpen implements shift.ShiftService.
func (s *ShiftServiceImpl) ListOpen(ctx context.Context, agencyID string) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.ListByAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	open := make([]shift.Shift, 0)
	for _, sh := range shifts {
		if sh.IsOpen() && sh.Start.After(now) {
			open = append(open, sh)
		}
	}
	return toResponses(open), nil
}

// ListAssigned implements shift.ShiftService.
func (s *ShiftServiceImpl) ListAssigned(ctx context.Context, employeeID string) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	upcoming := make([]shift.Shift, 0, len(shifts))
	for _, sh := range shifts {
		if sh.Status != shift.StatusCancelled && sh.End.After(now) {
			upcoming = append(upcoming, sh)
		}
	}
	return toResponses(upcoming), nil
}

// Apply implements shift.ShiftService.
func (s *ShiftServiceImpl) Apply(ctx context.Context, req shift.ApplyShiftRequest) (shift.ShiftResponse, error) {
	unlock, err := s.locker.Lock(ctx, lock.ShiftKey(req.ShiftID))
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to lock shift: %w", err)
	}
	defer unlock()

	existing, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if existing.AgencyID != req.AgencyID {
		return shift.ShiftResponse{}, shift.ErrForbidden
	}
	if !existing.IsOpen() {
		return shift.ShiftResponse{}, shift.ErrShiftNotOpen
	}
	if err := s.checkEmployee(ctx, req.AgencyID, req.EmployeeID); err != nil {
		return shift.ShiftResponse{}, err
	}

	unlockEmployee, err := s.locker.Lock(ctx, lock.EmployeeShiftsKey(req.EmployeeID))
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to lock employee shifts: %w", err)
	}
	defer unlockEmployee()

	conflict, err := s.conflicts.HasConflict(ctx, req.EmployeeID, existing.Start, existing.End, existing.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if conflict {
		return shift.ShiftResponse{}, shift.ErrShiftConflict
	}

	existing.EmployeeID = req.EmployeeID
	existing.Status = shift.StatusPending
	saved, err := s.ShiftRepository.Update(ctx, existing)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to apply for shift: %w", err)
	}

	if s.notification != nil {
		s.notification.Queue(ctx, notification.Request{
			AgencyID: saved.AgencyID,
			Type:     notification.TypeShiftApplied,
			Title:    "Open shift application",
			Message:  fmt.Sprintf("Shift on %s has a pending application", timeutil.DateOf(saved.Start)),
			Data: map[string]any{
				"shiftId":    saved.ID,
				"employeeId": saved.EmployeeID,
				"siteId":     saved.SiteID,
			},
		})
	}

	return shift.NewShiftResponse(saved), nil
}

// UpdateStatus implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateStatus(ctx context.Context, req shift.UpdateStatusRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	unlock, err := s.locker.Lock(ctx, lock.ShiftKey(req.ShiftID))
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to lock shift: %w", err)
	}
	defer unlock()

	existing, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if existing.EmployeeID == "" || existing.EmployeeID != req.EmployeeID {
		return shift.ShiftResponse{}, shift.ErrForbidden
	}

	saved, err := s.ShiftRepository.UpdateStatus(ctx, req.ShiftID, shift.Status(req.Status))
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift status: %w", err)
	}
	return shift.NewShiftResponse(saved), nil
}

func (s *ShiftServiceImpl) checkSite(ctx context.Context, agencyID, siteID string) error {
	st, err := s.SiteRepository.GetByID(ctx, siteID)
	if err != nil {
		return err
	}
	if st.AgencyID != agencyID {
		return shift.ErrForbidden
	}
	return nil
}

func (s *ShiftServiceImpl) checkEmployee(ctx context.Context, agencyID, employeeID string) error {
	e, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if e.AgencyID != agencyID {
		return shift.ErrForbidden
	}
	return nil
}

func sortShifts(shifts []shift.Shift) {
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Start.Equal(shifts[j].Start) {
			return shifts[i].ID < shifts[j].ID
		}
		return shifts[i].Start.Before(shifts[j].Start)
	})
}

func toResponses(shifts []shift.Shift) []shift.ShiftResponse {
	sortShifts(shifts)
	out := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		out = append(out, shift.NewShiftResponse(sh))
	}
	return out
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	siteRepo site.SiteRepository,
	locker lock.Locker,
	opts ...Option,
) shift.ShiftService {
	s := &ShiftServiceImpl{
		ShiftRepository:    shiftRepo,
		EmployeeRepository: employeeRepo,
		SiteRepository:     siteRepo,
		conflicts:          NewConflictDetector(shiftRepo),
		locker:             locker,
		now:                func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
