package shift

import (
	"context"
	"testing"

	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/repository/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedShifts(t *testing.T, shifts ...shift.Shift) shift.ShiftRepository {
	t.Helper()
	repo := document.NewShiftRepository(docstore.NewMemory())
	for _, s := range shifts {
		_, err := repo.Create(context.Background(), s)
		require.NoError(t, err)
	}
	return repo
}

func dayShift(id, start, end string) shift.Shift {
	return shift.Shift{
		ID:         id,
		AgencyID:   "agency-1",
		EmployeeID: "emp-1",
		SiteID:     "site-1",
		Start:      at(start),
		End:        at(end),
		Status:     shift.StatusScheduled,
	}
}

func TestMatcher_Window(t *testing.T) {
	m := NewMatcher(seedShifts(t, dayShift("s1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")))
	ctx := context.Background()

	tests := []struct {
		name  string
		now   string
		found bool
	}{
		{"25 minutes early", "2025-03-10T08:35:00Z", true},
		{"exactly 30 minutes early", "2025-03-10T08:30:00Z", true},
		{"an hour early", "2025-03-10T08:00:00Z", false},
		{"during the shift", "2025-03-10T12:00:00Z", true},
		{"inside the grace period", "2025-03-10T17:15:00Z", true},
		{"after the grace period", "2025-03-10T17:16:00Z", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FindAuthorizingShift(ctx, "emp-1", "site-1", "agency-1", at(tt.now))
			require.NoError(t, err)
			if tt.found {
				require.NotNil(t, got)
				assert.Equal(t, "s1", got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestMatcher_FiltersCandidates(t *testing.T) {
	otherSite := dayShift("s2", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")
	otherSite.SiteID = "site-2"
	cancelled := dayShift("s3", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")
	cancelled.Status = shift.StatusCancelled
	overnight := dayShift("s4", "2025-03-09T22:00:00Z", "2025-03-10T06:00:00Z")

	m := NewMatcher(seedShifts(t, otherSite, cancelled, overnight))

	got, err := m.FindAuthorizingShift(context.Background(), "emp-1", "site-1", "agency-1", at("2025-03-10T05:00:00Z"))
	require.NoError(t, err)
	assert.Nil(t, got, "a shift that started on the previous date is not a candidate")

	got, err = m.FindAuthorizingShift(context.Background(), "emp-1", "site-1", "agency-1", at("2025-03-10T09:00:00Z"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMatcher_ClosestStartWins(t *testing.T) {
	m := NewMatcher(seedShifts(t,
		dayShift("morning", "2025-03-10T06:00:00Z", "2025-03-10T10:00:00Z"),
		dayShift("midday", "2025-03-10T10:00:00Z", "2025-03-10T14:00:00Z"),
	))

	got, err := m.FindAuthorizingShift(context.Background(), "emp-1", "site-1", "agency-1", at("2025-03-10T09:45:00Z"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "midday", got.ID)
}

func TestMatcher_TieGoesToLowestID(t *testing.T) {
	m := NewMatcher(seedShifts(t,
		dayShift("shift-b", "2025-03-10T09:30:00Z", "2025-03-10T12:00:00Z"),
		dayShift("shift-a", "2025-03-10T08:30:00Z", "2025-03-10T12:00:00Z"),
	))

	got, err := m.FindAuthorizingShift(context.Background(), "emp-1", "site-1", "agency-1", at("2025-03-10T09:00:00Z"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "shift-a", got.ID)
}

func TestConflictDetector(t *testing.T) {
	cancelled := dayShift("cancelled", "2025-03-10T18:00:00Z", "2025-03-10T22:00:00Z")
	cancelled.Status = shift.StatusCancelled
	d := NewConflictDetector(seedShifts(t,
		dayShift("s1", "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z"),
		cancelled,
	))
	ctx := context.Background()

	tests := []struct {
		name    string
		start   string
		end     string
		exclude string
		want    bool
	}{
		{"overlaps the end", "2025-03-10T16:00:00Z", "2025-03-10T18:00:00Z", "", true},
		{"contained", "2025-03-10T10:00:00Z", "2025-03-10T11:00:00Z", "", true},
		{"back to back after", "2025-03-10T17:00:00Z", "2025-03-10T19:00:00Z", "", false},
		{"back to back before", "2025-03-10T07:00:00Z", "2025-03-10T09:00:00Z", "", false},
		{"overlaps a cancelled shift only", "2025-03-10T19:00:00Z", "2025-03-10T20:00:00Z", "", false},
		{"excluded shift", "2025-03-10T10:00:00Z", "2025-03-10T11:00:00Z", "s1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.HasConflict(ctx, "emp-1", at(tt.start), at(tt.end), tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
