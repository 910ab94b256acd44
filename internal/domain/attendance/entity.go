package attendance

import (
	"math"
	"time"
)

type Status string

// StatusAbsent marks a record created by the absentee sweep.
const StatusAbsent Status = "absent"

// State is the lifecycle position derived from a record's fields.
type State string

const (
	StateClockedIn  State = "clocked_in"
	StateOnBreak    State = "on_break"
	StateClockedOut State = "clocked_out"
	StateAbsent     State = "absent"
)

type BreakPeriod struct {
	Start time.Time
	End   *time.Time
}

func (b BreakPeriod) IsOpen() bool {
	return b.End == nil
}

type Attendance struct {
	ID             string
	AgencyID       string
	UserID         string
	SiteID         string
	ShiftID        *string
	ClockIn        *time.Time
	ClockOut       *time.Time
	ScheduledStart *time.Time
	BreakPeriods   []BreakPeriod
	HoursWorked    float64
	OvertimeHours  float64
	Lat            *float64
	Lng            *float64
	Status         *Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OpenBreakIndex returns the index of the most recent open break, or -1.
func (a Attendance) OpenBreakIndex() int {
	for i := len(a.BreakPeriods) - 1; i >= 0; i-- {
		if a.BreakPeriods[i].IsOpen() {
			return i
		}
	}
	return -1
}

func (a Attendance) HasOpenBreak() bool {
	return a.OpenBreakIndex() >= 0
}

// BreakMinutes sums closed breaks only; an open break counts as zero.
func (a Attendance) BreakMinutes() float64 {
	var total float64
	for _, b := range a.BreakPeriods {
		if b.End == nil {
			continue
		}
		total += b.End.Sub(b.Start).Minutes()
	}
	return total
}

func (a Attendance) IsClockedOut() bool {
	return a.ClockOut != nil
}

func (a Attendance) IsAbsent() bool {
	return a.Status != nil && *a.Status == StatusAbsent
}

// IsLate reports a clock-in strictly after the scheduled start.
func (a Attendance) IsLate() bool {
	return a.ClockIn != nil && a.ScheduledStart != nil && a.ClockIn.After(*a.ScheduledStart)
}

func (a Attendance) State() State {
	switch {
	case a.IsAbsent() || a.ClockIn == nil:
		return StateAbsent
	case a.IsClockedOut():
		return StateClockedOut
	case a.HasOpenBreak():
		return StateOnBreak
	}
	return StateClockedIn
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
