package document

import (
	"context"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/domain/shift"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

type shiftRecord struct {
	ID         string `json:"id,omitempty"`
	AgencyID   string `json:"agencyId"`
	EmployeeID string `json:"employeeId"`
	SiteID     string `json:"siteId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

func newShiftRecord(s shift.Shift) shiftRecord {
	return shiftRecord{
		ID:         s.ID,
		AgencyID:   s.AgencyID,
		EmployeeID: s.EmployeeID,
		SiteID:     s.SiteID,
		Start:      timeutil.FormatUTC(s.Start),
		End:        timeutil.FormatUTC(s.End),
		Status:     string(s.Status),
	}
}

func shiftFromDocument(doc docstore.Document) (shift.Shift, error) {
	var rec shiftRecord
	if err := docstore.Decode(doc, &rec); err != nil {
		return shift.Shift{}, fmt.Errorf("failed to decode shift: %w", err)
	}
	out := shift.Shift{
		ID:         rec.ID,
		AgencyID:   rec.AgencyID,
		EmployeeID: rec.EmployeeID,
		SiteID:     rec.SiteID,
		Status:     shift.Status(rec.Status),
	}
	var err error
	if out.Start, err = parseTime("start", rec.Start); err != nil {
		return shift.Shift{}, err
	}
	if out.End, err = parseTime("end", rec.End); err != nil {
		return shift.Shift{}, err
	}
	if out.CreatedAt, err = parseTime("createdAt", rec.CreatedAt); err != nil {
		return shift.Shift{}, err
	}
	if out.UpdatedAt, err = parseTime("updatedAt", rec.UpdatedAt); err != nil {
		return shift.Shift{}, err
	}
	return out, nil
}

type shiftRepository struct {
	store docstore.Store
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	doc, err := docstore.Encode(newShiftRecord(s))
	if err != nil {
		return shift.Shift{}, err
	}
	saved, err := r.store.Put(ctx, docstore.CollectionShifts, doc)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return shiftFromDocument(saved)
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionShifts, id)
	if err != nil {
		return shift.Shift{}, notFound(err, shift.ErrShiftNotFound)
	}
	return shiftFromDocument(doc)
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	rec := newShiftRecord(s)
	doc, err := r.store.Update(ctx, docstore.CollectionShifts, s.ID, docstore.Document{
		"employeeId": rec.EmployeeID,
		"siteId":     rec.SiteID,
		"start":      rec.Start,
		"end":        rec.End,
		"status":     rec.Status,
	})
	if err != nil {
		return shift.Shift{}, notFound(err, shift.ErrShiftNotFound)
	}
	return shiftFromDocument(doc)
}

// UpdateStatus implements shift.ShiftRepository.
func (r *shiftRepository) UpdateStatus(ctx context.Context, id string, status shift.Status) (shift.Shift, error) {
	doc, err := r.store.Update(ctx, docstore.CollectionShifts, id, docstore.Document{
		"status": string(status),
	})
	if err != nil {
		return shift.Shift{}, notFound(err, shift.ErrShiftNotFound)
	}
	return shiftFromDocument(doc)
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.CollectionShifts, id); err != nil {
		return notFound(err, shift.ErrShiftNotFound)
	}
	return nil
}

// ListByEmployee implements shift.ShiftRepository.
func (r *shiftRepository) ListByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionShifts, "employeeId", employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by employee: %w", err)
	}
	return decodeAll(docs, shiftFromDocument)
}

// ListByAgency implements shift.ShiftRepository.
func (r *shiftRepository) ListByAgency(ctx context.Context, agencyID string) ([]shift.Shift, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionShifts, "agencyId", agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by agency: %w", err)
	}
	return decodeAll(docs, shiftFromDocument)
}

func NewShiftRepository(store docstore.Store) shift.ShiftRepository {
	return &shiftRepository{store: store}
}
