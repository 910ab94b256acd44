package employee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Employee struct {
	ID             string
	AgencyID       string
	Name           string
	EmployeeCode   string
	Status         Status
	AssignedSiteID string
	JoinCodeStatus string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAssignable reports whether the employee counts toward site rosters.
func (e Employee) IsAssignable() bool {
	return e.Status == StatusActive && e.AssignedSiteID != ""
}
