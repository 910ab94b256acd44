package employee

import "context"

// EmployeeRepository is the read side of employee records used by scheduling
// and reporting. Employee management itself lives outside this service.
type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)

	// GetByID returns ErrEmployeeNotFound when absent
	GetByID(ctx context.Context, id string) (Employee, error)

	ListByAgency(ctx context.Context, agencyID string) ([]Employee, error)
}
