package document

import (
	"context"
	"fmt"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

type breakRecord struct {
	BreakStart string  `json:"breakStart"`
	BreakEnd   *string `json:"breakEnd"`
}

type attendanceRecord struct {
	ID             string        `json:"id,omitempty"`
	AgencyID       string        `json:"agencyId"`
	UserID         string        `json:"userId"`
	SiteID         string        `json:"siteId"`
	ShiftID        *string       `json:"shiftId"`
	ClockIn        *string       `json:"clockIn"`
	ClockOut       *string       `json:"clockOut"`
	ScheduledStart *string       `json:"scheduledStart"`
	BreakPeriods   []breakRecord `json:"breakPeriods"`
	HoursWorked    float64       `json:"hoursWorked"`
	OvertimeHours  float64       `json:"overtimeHours"`
	Lat            *float64      `json:"lat"`
	Lng            *float64      `json:"lng"`
	Status         *string       `json:"status"`
	CreatedAt      string        `json:"createdAt,omitempty"`
	UpdatedAt      string        `json:"updatedAt,omitempty"`
}

func breakRecords(breaks []attendance.BreakPeriod) []breakRecord {
	out := make([]breakRecord, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, breakRecord{
			BreakStart: timeutil.FormatUTC(b.Start),
			BreakEnd:   timeutil.FormatPtr(b.End),
		})
	}
	return out
}

func attendanceFromDocument(doc docstore.Document) (attendance.Attendance, error) {
	var rec attendanceRecord
	if err := docstore.Decode(doc, &rec); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to decode attendance: %w", err)
	}

	out := attendance.Attendance{
		ID:            rec.ID,
		AgencyID:      rec.AgencyID,
		UserID:        rec.UserID,
		SiteID:        rec.SiteID,
		ShiftID:       rec.ShiftID,
		HoursWorked:   rec.HoursWorked,
		OvertimeHours: rec.OvertimeHours,
		Lat:           rec.Lat,
		Lng:           rec.Lng,
		BreakPeriods:  make([]attendance.BreakPeriod, 0, len(rec.BreakPeriods)),
	}
	if rec.Status != nil {
		status := attendance.Status(*rec.Status)
		out.Status = &status
	}

	var err error
	if out.ClockIn, err = parseTimePtr("clockIn", rec.ClockIn); err != nil {
		return attendance.Attendance{}, err
	}
	if out.ClockOut, err = parseTimePtr("clockOut", rec.ClockOut); err != nil {
		return attendance.Attendance{}, err
	}
	if out.ScheduledStart, err = parseTimePtr("scheduledStart", rec.ScheduledStart); err != nil {
		return attendance.Attendance{}, err
	}
	if out.CreatedAt, err = parseTime("createdAt", rec.CreatedAt); err != nil {
		return attendance.Attendance{}, err
	}
	if out.UpdatedAt, err = parseTime("updatedAt", rec.UpdatedAt); err != nil {
		return attendance.Attendance{}, err
	}

	for _, b := range rec.BreakPeriods {
		start, err := parseTime("breakStart", b.BreakStart)
		if err != nil {
			return attendance.Attendance{}, err
		}
		end, err := parseTimePtr("breakEnd", b.BreakEnd)
		if err != nil {
			return attendance.Attendance{}, err
		}
		out.BreakPeriods = append(out.BreakPeriods, attendance.BreakPeriod{Start: start, End: end})
	}

	return out, nil
}

type attendanceRepository struct {
	store docstore.Store
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	rec := attendanceRecord{
		ID:             a.ID,
		AgencyID:       a.AgencyID,
		UserID:         a.UserID,
		SiteID:         a.SiteID,
		ShiftID:        a.ShiftID,
		ClockIn:        timeutil.FormatPtr(a.ClockIn),
		ClockOut:       timeutil.FormatPtr(a.ClockOut),
		ScheduledStart: timeutil.FormatPtr(a.ScheduledStart),
		BreakPeriods:   breakRecords(a.BreakPeriods),
		HoursWorked:    a.HoursWorked,
		OvertimeHours:  a.OvertimeHours,
		Lat:            a.Lat,
		Lng:            a.Lng,
	}
	if a.Status != nil {
		status := string(*a.Status)
		rec.Status = &status
	}

	doc, err := docstore.Encode(rec)
	if err != nil {
		return attendance.Attendance{}, err
	}
	saved, err := r.store.Put(ctx, docstore.CollectionAttendance, doc)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return attendanceFromDocument(saved)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionAttendance, id)
	if err != nil {
		return attendance.Attendance{}, notFound(err, attendance.ErrAttendanceNotFound)
	}
	return attendanceFromDocument(doc)
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	return r.query(ctx, "userId", userID)
}

// ListByShift implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByShift(ctx context.Context, shiftID string) ([]attendance.Attendance, error) {
	return r.query(ctx, "shiftId", shiftID)
}

// ListByAgency implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByAgency(ctx context.Context, agencyID string) ([]attendance.Attendance, error) {
	return r.query(ctx, "agencyId", agencyID)
}

// UpdateBreaks implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateBreaks(ctx context.Context, id string, breaks []attendance.BreakPeriod) (attendance.Attendance, error) {
	doc, err := r.store.Update(ctx, docstore.CollectionAttendance, id, docstore.Document{
		"breakPeriods": breakRecords(breaks),
	})
	if err != nil {
		return attendance.Attendance{}, notFound(err, attendance.ErrAttendanceNotFound)
	}
	return attendanceFromDocument(doc)
}

// UpdateClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateClockOut(ctx context.Context, id string, clockOut time.Time, hoursWorked, overtimeHours float64) (attendance.Attendance, error) {
	doc, err := r.store.Update(ctx, docstore.CollectionAttendance, id, docstore.Document{
		"clockOut":      timeutil.FormatUTC(clockOut),
		"hoursWorked":   hoursWorked,
		"overtimeHours": overtimeHours,
	})
	if err != nil {
		return attendance.Attendance{}, notFound(err, attendance.ErrAttendanceNotFound)
	}
	return attendanceFromDocument(doc)
}

func (r *attendanceRepository) query(ctx context.Context, field, value string) ([]attendance.Attendance, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionAttendance, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance by %s: %w", field, err)
	}
	return decodeAll(docs, attendanceFromDocument)
}

func NewAttendanceRepository(store docstore.Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}
