package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/agency"
	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

// AbsenteeJob sweeps every agency for elapsed shifts without attendance.
// Yesterday is included so shifts ending after the last run of a day are
// still picked up.
type AbsenteeJob struct {
	agencies   agency.AgencyRepository
	attendance attendance.AttendanceService
	now        func() time.Time
}

func NewAbsenteeJob(agencies agency.AgencyRepository, attendanceService attendance.AttendanceService, now func() time.Time) *AbsenteeJob {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &AbsenteeJob{agencies: agencies, attendance: attendanceService, now: now}
}

func (j *AbsenteeJob) Register(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absentees", interval, j.Run)
}

// Run sweeps all agencies; a failing agency does not stop the others.
func (j *AbsenteeJob) Run(ctx context.Context) error {
	agencies, err := j.agencies.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list agencies: %w", err)
	}

	today := j.now()
	dates := []string{timeutil.DateOf(today.AddDate(0, 0, -1)), timeutil.DateOf(today)}

	var errs []error
	created := 0
	for _, a := range agencies {
		for _, date := range dates {
			resp, err := j.attendance.MarkAbsentees(ctx, attendance.MarkAbsenteesRequest{AgencyID: a.ID, Date: date})
			created += resp.Created
			if err != nil {
				slog.Error("Cron: absentee sweep failed", "agency_id", a.ID, "date", date, "error", err)
				errs = append(errs, fmt.Errorf("agency %s on %s: %w", a.ID, date, err))
			}
		}
	}

	slog.Info("Cron: absentee sweep finished", "agencies", len(agencies), "created", created)
	return errors.Join(errs...)
}
