package document

import (
	"context"
	"testing"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSiteRepository(docstore.NewMemory())

	created, err := repo.Create(ctx, site.Site{
		AgencyID:      "agency-1",
		Name:          "North Gate",
		AssignedHours: 8,
		Boundary:      []geo.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Gate", got.Name)
	assert.Len(t, got.Boundary, 3)
	assert.Equal(t, geo.Point{Lat: 1, Lng: 1}, got.Boundary[2])

	updated, err := repo.UpdateBoundary(ctx, created.ID, []geo.Point{{Lat: 5, Lng: 5}})
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{{Lat: 5, Lng: 5}}, updated.Boundary)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, site.ErrSiteNotFound)

	sites, err := repo.ListByAgency(ctx, "agency-1")
	require.NoError(t, err)
	assert.Len(t, sites, 1)
}

func TestShiftRepositoryTimestampsAndStatus(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	repo := NewShiftRepository(store)

	created, err := repo.Create(ctx, shift.Shift{
		AgencyID:   "agency-1",
		EmployeeID: "emp-1",
		SiteID:     "site-1",
		Start:      ts("2025-03-10T09:00:00Z"),
		End:        ts("2025-03-10T17:00:00Z"),
		Status:     shift.StatusScheduled,
	})
	require.NoError(t, err)

	raw, err := store.Get(ctx, docstore.CollectionShifts, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T09:00:00Z", raw["start"])
	assert.Equal(t, "emp-1", raw["employeeId"])

	updated, err := repo.UpdateStatus(ctx, created.ID, shift.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, shift.StatusCompleted, updated.Status)
	assert.True(t, updated.Start.Equal(ts("2025-03-10T09:00:00Z")))

	byEmployee, err := repo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, byEmployee, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), shift.ErrShiftNotFound)
}

func TestShiftRepositoryReadsOffsetTimestamps(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	repo := NewShiftRepository(store)

	_, err := store.Put(ctx, docstore.CollectionShifts, docstore.Document{
		"id":         "shift-legacy",
		"agencyId":   "agency-1",
		"employeeId": "emp-1",
		"siteId":     "site-1",
		"start":      "2025-03-10T09:00:00+00:00Z",
		"end":        "2025-03-10T17:00:00+00:00",
		"status":     "scheduled",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "shift-legacy")
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.ScheduledHours())
}

func TestAttendanceRepositoryBreaksAndClockOut(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	repo := NewAttendanceRepository(store)

	clockIn := ts("2025-03-10T09:00:00Z")
	shiftID := "shift-1"
	lat, lng := 1.5, 2.5
	created, err := repo.Create(ctx, attendance.Attendance{
		AgencyID:       "agency-1",
		UserID:         "emp-1",
		SiteID:         "site-1",
		ShiftID:        &shiftID,
		ClockIn:        &clockIn,
		ScheduledStart: &clockIn,
		Lat:            &lat,
		Lng:            &lng,
	})
	require.NoError(t, err)

	raw, err := store.Get(ctx, docstore.CollectionAttendance, created.ID)
	require.NoError(t, err)
	assert.Nil(t, raw["clockOut"])
	assert.Nil(t, raw["status"])
	assert.Equal(t, []any{}, raw["breakPeriods"])

	breakEnd := ts("2025-03-10T12:30:00Z")
	withBreaks, err := repo.UpdateBreaks(ctx, created.ID, []attendance.BreakPeriod{
		{Start: ts("2025-03-10T12:00:00Z"), End: &breakEnd},
		{Start: ts("2025-03-10T15:00:00Z")},
	})
	require.NoError(t, err)
	require.Len(t, withBreaks.BreakPeriods, 2)
	assert.Equal(t, 30.0, withBreaks.BreakMinutes())
	assert.True(t, withBreaks.HasOpenBreak())

	out, err := repo.UpdateClockOut(ctx, created.ID, ts("2025-03-10T17:30:00Z"), 8, 0)
	require.NoError(t, err)
	require.NotNil(t, out.ClockOut)
	assert.Equal(t, 8.0, out.HoursWorked)
	assert.Equal(t, attendance.StateClockedOut, out.State())

	byShift, err := repo.ListByShift(ctx, shiftID)
	require.NoError(t, err)
	assert.Len(t, byShift, 1)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepositoryAbsentRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(docstore.NewMemory())

	status := attendance.StatusAbsent
	start := ts("2025-03-10T09:00:00Z")
	shiftID := "shift-1"
	created, err := repo.Create(ctx, attendance.Attendance{
		AgencyID:       "agency-1",
		UserID:         "emp-1",
		SiteID:         "site-1",
		ShiftID:        &shiftID,
		ScheduledStart: &start,
		Status:         &status,
	})
	require.NoError(t, err)
	assert.True(t, created.IsAbsent())
	assert.Nil(t, created.ClockIn)
	assert.Equal(t, attendance.StateAbsent, created.State())
}

func TestNotificationRepositoryDeviceTokens(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	repo := NewNotificationRepository(store)

	for _, doc := range []docstore.Document{
		{"userId": "emp-1", "token": "tok-a"},
		{"userId": "emp-1", "token": ""},
		{"userId": "emp-2", "token": "tok-b"},
	} {
		_, err := store.Put(ctx, docstore.CollectionDevices, doc)
		require.NoError(t, err)
	}

	tokens, err := repo.DeviceTokens(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-a"}, tokens)

	saved, err := repo.Create(ctx, notification.Notification{
		AgencyID: "agency-1",
		Type:     notification.TypeAbsenteesMarked,
		Title:    "Absentees marked",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
}
