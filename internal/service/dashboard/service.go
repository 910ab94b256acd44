package dashboard

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/domain/dashboard"
	"github.com/securefront/workforce-backend-go/internal/domain/employee"
	"github.com/securefront/workforce-backend-go/internal/domain/report"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employee.EmployeeRepository
	site.SiteRepository
	attendance.AttendanceRepository
	report.HourlyReportRepository
	now     func() time.Time
	timeout time.Duration
}

type Option func(*DashboardServiceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *DashboardServiceImpl) {
		s.now = now
	}
}

// Metrics returns per-site duty ratios using parallel goroutines
func (s *DashboardServiceImpl) Metrics(ctx context.Context, agencyID string) (*dashboard.DashboardMetricsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		employees []employee.Employee
		sites     []site.Site
		records   []attendance.Attendance
		reports   []report.HourlyReport
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.EmployeeRepository.ListByAgency(gCtx, agencyID)
		return err
	})
	g.Go(func() error {
		var err error
		sites, err = s.SiteRepository.ListByAgency(gCtx, agencyID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListByAgency(gCtx, agencyID)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = s.HourlyReportRepository.ListByAgency(gCtx, agencyID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, report.ErrReportTimedOut
		}
		return nil, err
	}

	today := timeutil.DateOf(s.now())
	metrics := map[string]*dashboard.SiteMetrics{}
	bucket := func(siteID string) *dashboard.SiteMetrics {
		m, ok := metrics[siteID]
		if !ok {
			m = &dashboard.SiteMetrics{SiteID: siteID, SiteName: "Unnamed Site"}
			metrics[siteID] = m
		}
		return m
	}
	all := &dashboard.SiteMetrics{SiteID: dashboard.AllSitesKey, SiteName: "All Sites"}

	for _, st := range sites {
		bucket(st.ID).SiteName = st.Name
	}
	for _, e := range employees {
		if e.AssignedSiteID == "" {
			continue
		}
		bucket(e.AssignedSiteID).AssignedEmployees++
		all.AssignedEmployees++
	}
	for _, rec := range records {
		if rec.ClockIn == nil || rec.ClockOut != nil || rec.SiteID == "" {
			continue
		}
		if timeutil.DateOf(*rec.ClockIn) != today {
			continue
		}
		bucket(rec.SiteID).OnDuty++
		all.OnDuty++
	}
	for _, r := range reports {
		if r.SiteID == "" || timeutil.DateOf(r.ReportedAt) != today {
			continue
		}
		bucket(r.SiteID).Reports++
		all.Reports++
	}

	resp := &dashboard.DashboardMetricsResponse{
		Date:  today,
		Sites: make(map[string]dashboard.SiteMetrics, len(metrics)+1),
	}
	for id, m := range metrics {
		m.AttendancePercentage = percentage(m.OnDuty, m.AssignedEmployees)
		resp.Sites[id] = *m
	}
	all.AttendancePercentage = percentage(all.OnDuty, all.AssignedEmployees)
	resp.Sites[dashboard.AllSitesKey] = *all

	return resp, nil
}

// percentage is rounded to one decimal and is 0 for an empty roster.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	siteRepo site.SiteRepository,
	attendanceRepo attendance.AttendanceRepository,
	hourlyReportRepo report.HourlyReportRepository,
	opts ...Option,
) dashboard.DashboardService {
	s := &DashboardServiceImpl{
		EmployeeRepository:     employeeRepo,
		SiteRepository:         siteRepo,
		AttendanceRepository:   attendanceRepo,
		HourlyReportRepository: hourlyReportRepo,
		now:                    time.Now,
		timeout:                10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
