package site

import (
	"context"

	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
)

// SiteRepository defines data access methods for sites.
type SiteRepository interface {
	// Create stores a new site and returns it with its assigned id
	Create(ctx context.Context, site Site) (Site, error)

	// GetByID returns ErrSiteNotFound when the site does not exist
	GetByID(ctx context.Context, id string) (Site, error)

	ListByAgency(ctx context.Context, agencyID string) ([]Site, error)

	// UpdateBoundary replaces the geofence of a site
	UpdateBoundary(ctx context.Context, id string, boundary []geo.Point) (Site, error)
}

// BoundaryCache keeps the geofence of a site (with its owner and name) out of
// the document store on the location check path. A miss or a cache failure
// falls back to the repository.
type BoundaryCache interface {
	Get(ctx context.Context, siteID string) (Site, bool)
	Set(ctx context.Context, site Site)
	Invalidate(ctx context.Context, siteID string)
}
