package shift

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusOpen      Status = "open"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusOpen),
	string(StatusPending),
	string(StatusCompleted),
	string(StatusCancelled),
}

// Shift assigns one employee to one site for [Start, End).
// EmployeeID is empty for open shifts nobody has applied to yet.
type Shift struct {
	ID         string
	AgencyID   string
	EmployeeID string
	SiteID     string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Overlaps uses half-open intervals, so back-to-back shifts do not overlap.
func (s Shift) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}

func (s Shift) ScheduledHours() float64 {
	return s.End.Sub(s.Start).Hours()
}

func (s Shift) IsOpen() bool {
	return s.Status == StatusOpen && s.EmployeeID == ""
}
