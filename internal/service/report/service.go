package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/domain/employee"
	"github.com/securefront/workforce-backend-go/internal/domain/report"
	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 20 * time.Second

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	shift.ShiftRepository
	employee.EmployeeRepository
	site.SiteRepository
	report.HourlyReportRepository
	now     func() time.Time
	timeout time.Duration
}

type Option func(*ReportServiceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *ReportServiceImpl) {
		s.now = now
	}
}

// WithTimeout bounds the collection loads of a single report.
func WithTimeout(d time.Duration) Option {
	return func(s *ReportServiceImpl) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// snapshot holds the agency collections a report is computed from.
type snapshot struct {
	employees  []employee.Employee
	sites      []site.Site
	shifts     []shift.Shift
	attendance []attendance.Attendance
	reports    []report.HourlyReport
}

type collection int

const (
	withEmployees collection = 1 << iota
	withSites
	withShifts
	withAttendance
	withReports
)

// load reads the requested collections of an agency in parallel.
func (s *ReportServiceImpl) load(ctx context.Context, agencyID string, want collection) (snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var snap snapshot
	g, gCtx := errgroup.WithContext(ctx)

	if want&withEmployees != 0 {
		g.Go(func() error {
			rows, err := s.EmployeeRepository.ListByAgency(gCtx, agencyID)
			snap.employees = rows
			return err
		})
	}
	if want&withSites != 0 {
		g.Go(func() error {
			rows, err := s.SiteRepository.ListByAgency(gCtx, agencyID)
			snap.sites = rows
			return err
		})
	}
	if want&withShifts != 0 {
		g.Go(func() error {
			rows, err := s.ShiftRepository.ListByAgency(gCtx, agencyID)
			snap.shifts = rows
			return err
		})
	}
	if want&withAttendance != 0 {
		g.Go(func() error {
			rows, err := s.AttendanceRepository.ListByAgency(gCtx, agencyID)
			snap.attendance = rows
			return err
		})
	}
	if want&withReports != 0 {
		g.Go(func() error {
			rows, err := s.HourlyReportRepository.ListByAgency(gCtx, agencyID)
			snap.reports = rows
			return err
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return snapshot{}, report.ErrReportTimedOut
		}
		return snapshot{}, fmt.Errorf("failed to load report data: %w", err)
	}
	return snap, nil
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, agencyID string) (report.AttendanceSummaryResponse, error) {
	snap, err := s.load(ctx, agencyID, withEmployees|withShifts|withAttendance)
	if err != nil {
		return report.AttendanceSummaryResponse{}, err
	}

	now := s.now()
	today := timeutil.DateOf(now)
	weekStart := timeutil.StartOfWeek(now)

	valid := map[string]bool{}
	for _, e := range snap.employees {
		if e.IsAssignable() {
			valid[e.ID] = true
		}
	}

	scheduled := map[string]bool{}
	for _, sh := range snap.shifts {
		if sh.EmployeeID == "" || sh.Status == shift.StatusCancelled {
			continue
		}
		if timeutil.DateOf(sh.Start) == today {
			scheduled[sh.EmployeeID] = true
		}
	}

	present := map[string]bool{}
	overtimeBy := map[string]float64{}
	late := 0
	var overtime float64
	for _, rec := range snap.attendance {
		if rec.ClockIn == nil {
			continue
		}
		if !rec.ClockIn.Before(weekStart) && rec.OvertimeHours > 0 {
			overtime += rec.OvertimeHours
			overtimeBy[rec.UserID] += rec.OvertimeHours
		}
		if timeutil.DateOf(*rec.ClockIn) != today {
			continue
		}
		present[rec.UserID] = true
		if rec.IsLate() {
			late++
		}
	}

	resp := report.AttendanceSummaryResponse{
		Date:           today,
		TotalEmployees: len(valid),
		Scheduled:      len(scheduled),
		Present:        len(present),
		Late:           report.LateSummary{Count: late},
		Overtime: report.OvertimeSummary{
			TotalHours: attendance.Round2(overtime),
			Employees:  len(overtimeBy),
			Period:     "this_week",
		},
	}
	if len(present) > 0 {
		resp.Late.Percentage = round1(float64(late) / float64(len(present)) * 100)
	}

	for id := range valid {
		if !scheduled[id] {
			resp.Unscheduled++
			if !present[id] {
				resp.Absent.Unscheduled++
			}
		}
	}
	for id := range scheduled {
		if !present[id] {
			resp.Absent.Scheduled++
		}
	}
	resp.Absent.Total = resp.Absent.Scheduled + resp.Absent.Unscheduled

	return resp, nil
}

// SiteSummary implements report.ReportService. Presence counts attendance rows,
// so a guard who clocked in on three days of the range counts three times and
// the rate can exceed 100% over multi-day ranges.
func (s *ReportServiceImpl) SiteSummary(ctx context.Context, req report.SiteSummaryRequest) (report.SiteSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.SiteSummaryResponse{}, err
	}
	snap, err := s.load(ctx, req.AgencyID, withEmployees|withSites|withAttendance)
	if err != nil {
		return report.SiteSummaryResponse{}, err
	}
	from, to := req.Range()

	roster := map[string]map[string]bool{}
	for _, e := range snap.employees {
		if !e.IsAssignable() {
			continue
		}
		if roster[e.AssignedSiteID] == nil {
			roster[e.AssignedSiteID] = map[string]bool{}
		}
		roster[e.AssignedSiteID][e.ID] = true
	}

	present := map[string]int{}
	late := map[string]int{}
	for _, rec := range snap.attendance {
		if rec.ClockIn == nil || rec.ClockIn.Before(from) || !rec.ClockIn.Before(to) {
			continue
		}
		if !roster[rec.SiteID][rec.UserID] {
			continue
		}
		present[rec.SiteID]++
		if rec.IsLate() {
			late[rec.SiteID]++
		}
	}

	sites := append([]site.Site(nil), snap.sites...)
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Name != sites[j].Name {
			return sites[i].Name < sites[j].Name
		}
		return sites[i].ID < sites[j].ID
	})

	resp := report.SiteSummaryResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Sites:     make([]report.SiteSummaryRow, 0, len(sites)),
	}
	for _, st := range sites {
		total := len(roster[st.ID])
		row := report.SiteSummaryRow{
			SiteID:         st.ID,
			SiteName:       st.Name,
			TotalAssigned:  total,
			Present:        present[st.ID],
			Late:           late[st.ID],
			AttendanceRate: "0%",
		}
		row.Absent = max(total-row.Present, 0)
		if total > 0 {
			row.AttendanceRate = fmt.Sprintf("%d%%", int(math.Round(float64(row.Present)/float64(total)*100)))
		}
		resp.Sites = append(resp.Sites, row)
	}
	return resp, nil
}

// Timesheet implements report.ReportService.
func (s *ReportServiceImpl) Timesheet(ctx context.Context, filter report.TimesheetFilter) (report.TimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.TimesheetResponse{}, err
	}
	rows, err := s.timesheetRows(ctx, filter)
	if err != nil {
		return report.TimesheetResponse{}, err
	}

	resp := report.TimesheetResponse{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Rows:      make([]report.TimesheetRowResponse, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, report.NewTimesheetRowResponse(row))
		resp.Totals.Shifts++
		resp.Totals.HoursWorked += row.HoursWorked
		resp.Totals.OvertimeHours += row.OvertimeHours
		switch row.Status {
		case report.TimesheetPresent:
			resp.Totals.Present++
		case report.TimesheetLate:
			resp.Totals.Late++
		default:
			resp.Totals.Absent++
		}
	}
	resp.Totals.HoursWorked = attendance.Round2(resp.Totals.HoursWorked)
	resp.Totals.OvertimeHours = attendance.Round2(resp.Totals.OvertimeHours)
	return resp, nil
}

// timesheetRows joins every assigned shift starting in range with its attendance record.
func (s *ReportServiceImpl) timesheetRows(ctx context.Context, filter report.TimesheetFilter) ([]report.TimesheetRow, error) {
	snap, err := s.load(ctx, filter.AgencyID, withEmployees|withSites|withShifts|withAttendance)
	if err != nil {
		return nil, err
	}
	from, to := filter.Range()

	employees := make(map[string]employee.Employee, len(snap.employees))
	for _, e := range snap.employees {
		employees[e.ID] = e
	}
	sites := make(map[string]site.Site, len(snap.sites))
	for _, st := range snap.sites {
		sites[st.ID] = st
	}
	byShift := map[string]attendance.Attendance{}
	for _, rec := range snap.attendance {
		if rec.ShiftID == nil {
			continue
		}
		if prev, ok := byShift[*rec.ShiftID]; !ok || rec.ID < prev.ID {
			byShift[*rec.ShiftID] = rec
		}
	}

	rows := []report.TimesheetRow{}
	for _, sh := range snap.shifts {
		if sh.EmployeeID == "" || sh.Status == shift.StatusCancelled {
			continue
		}
		if sh.Start.Before(from) || !sh.Start.Before(to) {
			continue
		}
		if filter.EmployeeID != "" && sh.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.SiteID != "" && sh.SiteID != filter.SiteID {
			continue
		}

		row := report.TimesheetRow{
			ShiftID:        sh.ID,
			EmployeeID:     sh.EmployeeID,
			EmployeeName:   "Unknown",
			SiteID:         sh.SiteID,
			SiteName:       "Unknown",
			ShiftStart:     sh.Start,
			ShiftEnd:       sh.End,
			ScheduledHours: attendance.Round2(sh.ScheduledHours()),
			Status:         report.TimesheetAbsent,
		}
		if e, ok := employees[sh.EmployeeID]; ok {
			row.EmployeeName = e.Name
			row.EmployeeCode = e.EmployeeCode
		}
		if st, ok := sites[sh.SiteID]; ok {
			row.SiteName = st.Name
		}
		applyAttendance(&row, byShift[sh.ID], sh)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ShiftStart.Equal(rows[j].ShiftStart) {
			return rows[i].ShiftStart.Before(rows[j].ShiftStart)
		}
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		return rows[i].ShiftID < rows[j].ShiftID
	})
	return rows, nil
}

func applyAttendance(row *report.TimesheetRow, rec attendance.Attendance, sh shift.Shift) {
	if rec.ID == "" {
		row.Remarks = "No attendance record"
		return
	}
	row.AttendanceID = rec.ID
	if rec.IsAbsent() || rec.ClockIn == nil {
		row.Remarks = "Marked absent"
		return
	}

	row.ClockIn = rec.ClockIn
	row.ClockOut = rec.ClockOut
	row.BreakMinutes = math.Round(rec.BreakMinutes())
	row.HoursWorked = rec.HoursWorked
	row.OvertimeHours = rec.OvertimeHours
	row.Status = report.TimesheetPresent
	if rec.ClockIn.After(sh.Start) {
		row.Status = report.TimesheetLate
	}
	switch {
	case rec.ClockOut != nil:
	case rec.HasOpenBreak():
		row.Remarks = "On break"
	default:
		row.Remarks = "Not clocked out"
	}
}

// SubmitHourlyReport implements report.ReportService.
func (s *ReportServiceImpl) SubmitHourlyReport(ctx context.Context, req report.HourlyReportRequest) (report.HourlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.HourlyReportResponse{}, err
	}

	st, err := s.SiteRepository.GetByID(ctx, req.SiteID)
	if err != nil {
		return report.HourlyReportResponse{}, err
	}
	if st.AgencyID != req.AgencyID {
		return report.HourlyReportResponse{}, report.ErrHourlyReportDenied
	}

	reportedAt := s.now()
	if req.ReportedAt != "" {
		reportedAt, err = timeutil.ParseUTC(req.ReportedAt)
		if err != nil {
			return report.HourlyReportResponse{}, err
		}
	}

	created, err := s.HourlyReportRepository.Create(ctx, report.HourlyReport{
		AgencyID:   req.AgencyID,
		SiteID:     req.SiteID,
		UserID:     req.UserID,
		Notes:      req.Notes,
		ReportedAt: reportedAt,
	})
	if err != nil {
		return report.HourlyReportResponse{}, err
	}
	return report.NewHourlyReportResponse(created), nil
}

// ListHourlyReports implements report.ReportService, newest first.
func (s *ReportServiceImpl) ListHourlyReports(ctx context.Context, agencyID string) ([]report.HourlyReportResponse, error) {
	reports, err := s.HourlyReportRepository.ListByAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].ReportedAt.After(reports[j].ReportedAt)
	})

	out := make([]report.HourlyReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, report.NewHourlyReportResponse(r))
	}
	return out, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	siteRepo site.SiteRepository,
	hourlyReportRepo report.HourlyReportRepository,
	opts ...Option,
) report.ReportService {
	s := &ReportServiceImpl{
		AttendanceRepository:   attendanceRepo,
		ShiftRepository:        shiftRepo,
		EmployeeRepository:     employeeRepo,
		SiteRepository:         siteRepo,
		HourlyReportRepository: hourlyReportRepo,
		now:                    time.Now,
		timeout:                defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
