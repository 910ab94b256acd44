package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

const (
	// EarlyClockInWindow is how long before a shift start a clock-in is accepted.
	EarlyClockInWindow = 30 * time.Minute
	// LateClockInGrace is how long after a shift end a clock-in is still accepted.
	LateClockInGrace = 15 * time.Minute
)

type matcher struct {
	repo shift.ShiftRepository
}

// FindAuthorizingShift implements shift.Matcher. It returns nil, nil when no
// shift starting on now's UTC date covers now.
func (m *matcher) FindAuthorizingShift(ctx context.Context, employeeID, siteID, agencyID string, now time.Time) (*shift.Shift, error) {
	shifts, err := m.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee shifts: %w", err)
	}

	var best *shift.Shift
	var bestDelta time.Duration
	for i := range shifts {
		s := shifts[i]
		if s.SiteID != siteID || s.AgencyID != agencyID || s.Status == shift.StatusCancelled {
			continue
		}
		if !timeutil.SameDate(s.Start, now) {
			continue
		}
		if now.Before(s.Start.Add(-EarlyClockInWindow)) || now.After(s.End.Add(LateClockInGrace)) {
			continue
		}

		delta := now.Sub(s.Start)
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta || (delta == bestDelta && s.ID < best.ID) {
			best = &s
			bestDelta = delta
		}
	}

	return best, nil
}

func NewMatcher(repo shift.ShiftRepository) shift.Matcher {
	return &matcher{repo: repo}
}
