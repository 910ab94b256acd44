package shift

import (
	"context"
	"testing"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/employee"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
	"github.com/securefront/workforce-backend-go/internal/pkg/lock"
	"github.com/securefront/workforce-backend-go/internal/repository/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	requests []notification.Request
}

func (r *recordingNotifier) Queue(_ context.Context, req notification.Request) {
	r.requests = append(r.requests, req)
}

func (r *recordingNotifier) Stop() {}

type fixture struct {
	svc       shift.ShiftService
	shifts    shift.ShiftRepository
	notifier  *recordingNotifier
	siteID    string
	otherSite string
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemory()

	sites := document.NewSiteRepository(store)
	employees := document.NewEmployeeRepository(store)
	shifts := document.NewShiftRepository(store)

	boundary := []geo.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}}
	st, err := sites.Create(ctx, site.Site{AgencyID: "agency-1", Name: "Harbour Gate", Boundary: boundary})
	require.NoError(t, err)
	other, err := sites.Create(ctx, site.Site{AgencyID: "agency-2", Name: "Elsewhere", Boundary: boundary})
	require.NoError(t, err)

	for _, e := range []employee.Employee{
		{ID: "emp-1", AgencyID: "agency-1", Name: "Dana Reyes", Status: employee.StatusActive, AssignedSiteID: st.ID},
		{ID: "emp-2", AgencyID: "agency-1", Name: "Sam Okafor", Status: employee.StatusActive, AssignedSiteID: st.ID},
		{ID: "emp-x", AgencyID: "agency-2", Name: "Outsider", Status: employee.StatusActive},
	} {
		_, err := employees.Create(ctx, e)
		require.NoError(t, err)
	}

	notifier := &recordingNotifier{}
	svc := NewShiftService(shifts, employees, sites, lock.NewKeyedMutex(),
		WithClock(func() time.Time { return now }),
		WithNotifications(notifier),
	)
	return &fixture{svc: svc, shifts: shifts, notifier: notifier, siteID: st.ID, otherSite: other.ID}
}

func (f *fixture) create(t *testing.T, employeeID, start, end string) shift.ShiftResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), shift.CreateShiftRequest{
		AgencyID:   "agency-1",
		EmployeeID: employeeID,
		SiteID:     f.siteID,
		Start:      start,
		End:        end,
	})
	require.NoError(t, err)
	return resp
}

func TestShiftService_Create_DefaultsStatus(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))

	assigned := f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")
	assert.Equal(t, "scheduled", assigned.Status)
	assert.Equal(t, "2025-03-10T09:00:00Z", assigned.Start)

	open := f.create(t, "", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")
	assert.Equal(t, "open", open.Status)
}

func TestShiftService_Create_Conflict(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	ctx := context.Background()
	f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	_, err := f.svc.Create(ctx, shift.CreateShiftRequest{
		AgencyID: "agency-1", EmployeeID: "emp-1", SiteID: f.siteID,
		Start: "2025-03-10T16:00:00Z", End: "2025-03-10T18:00:00Z",
	})
	assert.ErrorIs(t, err, shift.ErrShiftConflict)

	shifts, err := f.shifts.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, shifts, 1, "a rejected shift must not be written")

	backToBack, err := f.svc.Create(ctx, shift.CreateShiftRequest{
		AgencyID: "agency-1", EmployeeID: "emp-1", SiteID: f.siteID,
		Start: "2025-03-10T17:00:00Z", End: "2025-03-10T19:00:00Z",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, backToBack.ID)

	_, err = f.svc.Create(ctx, shift.CreateShiftRequest{
		AgencyID: "agency-1", EmployeeID: "emp-2", SiteID: f.siteID,
		Start: "2025-03-10T16:00:00Z", End: "2025-03-10T18:00:00Z",
	})
	assert.NoError(t, err, "other employees are not affected")
}

func TestShiftService_Create_Validation(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))

	_, err := f.svc.Create(context.Background(), shift.CreateShiftRequest{
		AgencyID: "agency-1", EmployeeID: "emp-1", SiteID: f.siteID,
		Start: "2025-03-10T17:00:00Z", End: "2025-03-10T09:00:00Z",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.svc.Create(context.Background(), shift.CreateShiftRequest{
		AgencyID: "agency-1", EmployeeID: "emp-1", SiteID: f.otherSite,
		Start: "2025-03-10T09:00:00Z", End: "2025-03-10T17:00:00Z",
	})
	assert.ErrorIs(t, err, shift.ErrForbidden)
}

func TestShiftService_Update_ExcludesItself(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	ctx := context.Background()
	first := f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")
	f.create(t, "emp-1", "2025-03-10T18:00:00Z", "2025-03-10T22:00:00Z")

	end := "2025-03-10T17:30:00Z"
	updated, err := f.svc.Update(ctx, shift.UpdateShiftRequest{AgencyID: "agency-1", ShiftID: first.ID, End: &end})
	require.NoError(t, err)
	assert.Equal(t, end, updated.End)

	end = "2025-03-10T19:00:00Z"
	_, err = f.svc.Update(ctx, shift.UpdateShiftRequest{AgencyID: "agency-1", ShiftID: first.ID, End: &end})
	assert.ErrorIs(t, err, shift.ErrShiftConflict)

	_, err = f.svc.Update(ctx, shift.UpdateShiftRequest{AgencyID: "agency-2", ShiftID: first.ID, End: &end})
	assert.ErrorIs(t, err, shift.ErrForbidden)
}

func TestShiftService_Update_Times(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	ctx := context.Background()
	first := f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	start, end := "2025-03-10T10:00:00+01:00", "2025-03-10T18:00:00Z"
	updated, err := f.svc.Update(ctx, shift.UpdateShiftRequest{AgencyID: "agency-1", ShiftID: first.ID, Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T09:00:00Z", updated.Start)
	assert.Equal(t, end, updated.End)

	bad := "tomorrow"
	_, err = f.svc.Update(ctx, shift.UpdateShiftRequest{AgencyID: "agency-1", ShiftID: first.ID, Start: &bad})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	got, err := f.svc.Get(ctx, "agency-1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T09:00:00Z", got.Start)
}

func TestShiftService_CancelledShiftsDoNotConflict(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	ctx := context.Background()
	first := f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	cancelled := string(shift.StatusCancelled)
	_, err := f.svc.Update(ctx, shift.UpdateShiftRequest{AgencyID: "agency-1", ShiftID: first.ID, Status: &cancelled})
	require.NoError(t, err)

	f.create(t, "emp-1", "2025-03-10T10:00:00Z", "2025-03-10T12:00:00Z")
}

func TestShiftService_Apply(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	ctx := context.Background()
	open := f.create(t, "", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	applied, err := f.svc.Apply(ctx, shift.ApplyShiftRequest{AgencyID: "agency-1", EmployeeID: "emp-1", ShiftID: open.ID})
	require.NoError(t, err)
	assert.Equal(t, "pending", applied.Status)
	assert.Equal(t, "emp-1", applied.EmployeeID)

	require.Len(t, f.notifier.requests, 1)
	assert.Equal(t, notification.TypeShiftApplied, f.notifier.requests[0].Type)
	assert.Equal(t, "agency-1", f.notifier.requests[0].AgencyID)

	_, err = f.svc.Apply(ctx, shift.ApplyShiftRequest{AgencyID: "agency-1", EmployeeID: "emp-2", ShiftID: open.ID})
	assert.ErrorIs(t, err, shift.ErrShiftNotOpen)
}

func TestShiftService_Apply_Conflict(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	ctx := context.Background()
	f.create(t, "emp-1", "2025-03-10T08:00:00Z", "2025-03-10T10:00:00Z")
	open := f.create(t, "", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	_, err := f.svc.Apply(ctx, shift.ApplyShiftRequest{AgencyID: "agency-1", EmployeeID: "emp-1", ShiftID: open.ID})
	assert.ErrorIs(t, err, shift.ErrShiftConflict)

	got, err := f.svc.Get(ctx, "agency-1", open.ID)
	require.NoError(t, err)
	assert.Equal(t, "open", got.Status)
	assert.Empty(t, got.EmployeeID)
}

func TestShiftService_UpdateStatus_OnlyAssignee(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	ctx := context.Background()
	s := f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	_, err := f.svc.UpdateStatus(ctx, shift.UpdateStatusRequest{EmployeeID: "emp-2", ShiftID: s.ID, Status: "completed"})
	assert.ErrorIs(t, err, shift.ErrForbidden)

	_, err = f.svc.UpdateStatus(ctx, shift.UpdateStatusRequest{EmployeeID: "emp-1", ShiftID: s.ID, Status: "done"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	updated, err := f.svc.UpdateStatus(ctx, shift.UpdateStatusRequest{EmployeeID: "emp-1", ShiftID: s.ID, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
}

func TestShiftService_CalendarAndLists(t *testing.T) {
	f := newFixture(t, at("2025-03-10T12:00:00Z"))
	ctx := context.Background()
	f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")
	f.create(t, "emp-1", "2025-03-11T09:00:00Z", "2025-03-11T17:00:00Z")
	f.create(t, "", "2025-03-12T09:00:00Z", "2025-03-12T17:00:00Z")
	f.create(t, "", "2025-03-09T09:00:00Z", "2025-03-09T17:00:00Z")

	events, err := f.svc.Calendar(ctx, shift.CalendarFilter{AgencyID: "agency-1", StartDate: "2025-03-10", EndDate: "2025-03-11"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Dana Reyes - Harbour Gate", events[0].Title)
	assert.Equal(t, "2025-03-10T09:00:00Z", events[0].Start)
	assert.Equal(t, "emp-1", events[0].ExtendedProps.EmployeeID)

	open, err := f.svc.ListOpen(ctx, "agency-1")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "2025-03-12T09:00:00Z", open[0].Start)

	assigned, err := f.svc.ListAssigned(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, assigned, 2, "the shift in progress is still listed")
}

func TestShiftService_TenantIsolation(t *testing.T) {
	f := newFixture(t, at("2025-03-01T00:00:00Z"))
	s := f.create(t, "emp-1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	_, err := f.svc.Get(context.Background(), "agency-2", s.ID)
	assert.ErrorIs(t, err, shift.ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), "agency-2", s.ID), shift.ErrForbidden)
	assert.NoError(t, f.svc.Delete(context.Background(), "agency-1", s.ID))
}
