package shift

import "context"

// ShiftRepository defines data access methods for shifts.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)

	// GetByID returns ErrShiftNotFound when absent
	GetByID(ctx context.Context, id string) (Shift, error)

	// Update writes employee, site, times and status of an existing shift
	Update(ctx context.Context, shift Shift) (Shift, error)

	UpdateStatus(ctx context.Context, id string, status Status) (Shift, error)
	Delete(ctx context.Context, id string) error

	// ListByEmployee returns every shift of the employee across sites and agencies
	ListByEmployee(ctx context.Context, employeeID string) ([]Shift, error)

	ListByAgency(ctx context.Context, agencyID string) ([]Shift, error)
}
