package document

import (
	"context"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/domain/agency"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
)

type agencyRepository struct {
	store docstore.Store
}

// List implements agency.AgencyRepository.
func (r *agencyRepository) List(ctx context.Context) ([]agency.Agency, error) {
	docs, err := r.store.List(ctx, docstore.CollectionAgencies)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}
	agencies := make([]agency.Agency, 0, len(docs))
	for _, doc := range docs {
		agencies = append(agencies, agency.Agency{ID: doc.ID(), Name: doc.String("name")})
	}
	return agencies, nil
}

func NewAgencyRepository(store docstore.Store) agency.AgencyRepository {
	return &agencyRepository{store: store}
}
