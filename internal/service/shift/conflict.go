package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/shift"
)

type conflictDetector struct {
	repo shift.ShiftRepository
}

// HasConflict implements shift.ConflictDetector. Cancelled shifts and
// excludeShiftID never conflict.
func (d *conflictDetector) HasConflict(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) (bool, error) {
	if employeeID == "" {
		return false, nil
	}

	existing, err := d.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to list employee shifts: %w", err)
	}

	for _, s := range existing {
		if s.ID == excludeShiftID || s.Status == shift.StatusCancelled {
			continue
		}
		if s.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func NewConflictDetector(repo shift.ShiftRepository) shift.ConflictDetector {
	return &conflictDetector{repo: repo}
}
