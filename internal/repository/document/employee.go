package document

import (
	"context"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/domain/employee"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
)

type employeeRecord struct {
	ID             string `json:"id,omitempty"`
	AgencyID       string `json:"agencyId"`
	Name           string `json:"name"`
	EmployeeCode   string `json:"employeeCode"`
	Status         string `json:"status"`
	AssignedSiteID string `json:"assignedSiteId"`
	JoinCodeStatus string `json:"joinCodeStatus"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

func employeeFromDocument(doc docstore.Document) (employee.Employee, error) {
	var rec employeeRecord
	if err := docstore.Decode(doc, &rec); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee: %w", err)
	}
	createdAt, err := parseTime("createdAt", rec.CreatedAt)
	if err != nil {
		return employee.Employee{}, err
	}
	updatedAt, err := parseTime("updatedAt", rec.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.Employee{
		ID:             rec.ID,
		AgencyID:       rec.AgencyID,
		Name:           rec.Name,
		EmployeeCode:   rec.EmployeeCode,
		Status:         employee.Status(rec.Status),
		AssignedSiteID: rec.AssignedSiteID,
		JoinCodeStatus: rec.JoinCodeStatus,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

type employeeRepository struct {
	store docstore.Store
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	doc, err := docstore.Encode(employeeRecord{
		ID:             e.ID,
		AgencyID:       e.AgencyID,
		Name:           e.Name,
		EmployeeCode:   e.EmployeeCode,
		Status:         string(e.Status),
		AssignedSiteID: e.AssignedSiteID,
		JoinCodeStatus: e.JoinCodeStatus,
	})
	if err != nil {
		return employee.Employee{}, err
	}
	saved, err := r.store.Put(ctx, docstore.CollectionEmployees, doc)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return employeeFromDocument(saved)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionEmployees, id)
	if err != nil {
		return employee.Employee{}, notFound(err, employee.ErrEmployeeNotFound)
	}
	return employeeFromDocument(doc)
}

// ListByAgency implements employee.EmployeeRepository.
func (r *employeeRepository) ListByAgency(ctx context.Context, agencyID string) ([]employee.Employee, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionEmployees, "agencyId", agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return decodeAll(docs, employeeFromDocument)
}

func NewEmployeeRepository(store docstore.Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}
