package document

import (
	"context"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
)

type siteRecord struct {
	ID            string      `json:"id,omitempty"`
	AgencyID      string      `json:"agencyId"`
	Name          string      `json:"name"`
	AssignedHours float64     `json:"assignedHours"`
	Boundary      []geo.Point `json:"boundary"`
	CreatedAt     string      `json:"createdAt,omitempty"`
	UpdatedAt     string      `json:"updatedAt,omitempty"`
}

func siteFromDocument(doc docstore.Document) (site.Site, error) {
	var rec siteRecord
	if err := docstore.Decode(doc, &rec); err != nil {
		return site.Site{}, fmt.Errorf("failed to decode site: %w", err)
	}
	createdAt, err := parseTime("createdAt", rec.CreatedAt)
	if err != nil {
		return site.Site{}, err
	}
	updatedAt, err := parseTime("updatedAt", rec.UpdatedAt)
	if err != nil {
		return site.Site{}, err
	}
	return site.Site{
		ID:            rec.ID,
		AgencyID:      rec.AgencyID,
		Name:          rec.Name,
		AssignedHours: rec.AssignedHours,
		Boundary:      rec.Boundary,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

type siteRepository struct {
	store docstore.Store
}

// Create implements site.SiteRepository.
func (r *siteRepository) Create(ctx context.Context, s site.Site) (site.Site, error) {
	boundary := s.Boundary
	if boundary == nil {
		boundary = []geo.Point{}
	}
	doc, err := docstore.Encode(siteRecord{
		ID:            s.ID,
		AgencyID:      s.AgencyID,
		Name:          s.Name,
		AssignedHours: s.AssignedHours,
		Boundary:      boundary,
	})
	if err != nil {
		return site.Site{}, err
	}
	saved, err := r.store.Put(ctx, docstore.CollectionSites, doc)
	if err != nil {
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}
	return siteFromDocument(saved)
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string) (site.Site, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionSites, id)
	if err != nil {
		return site.Site{}, notFound(err, site.ErrSiteNotFound)
	}
	return siteFromDocument(doc)
}

// ListByAgency implements site.SiteRepository.
func (r *siteRepository) ListByAgency(ctx context.Context, agencyID string) ([]site.Site, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionSites, "agencyId", agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	return decodeAll(docs, siteFromDocument)
}

// UpdateBoundary implements site.SiteRepository.
func (r *siteRepository) UpdateBoundary(ctx context.Context, id string, boundary []geo.Point) (site.Site, error) {
	doc, err := r.store.Update(ctx, docstore.CollectionSites, id, docstore.Document{
		"boundary": boundary,
	})
	if err != nil {
		return site.Site{}, notFound(err, site.ErrSiteNotFound)
	}
	return siteFromDocument(doc)
}

func NewSiteRepository(store docstore.Store) site.SiteRepository {
	return &siteRepository{store: store}
}
