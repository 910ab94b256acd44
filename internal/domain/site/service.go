package site

import "context"

// SiteService manages sites and their geofences
type SiteService interface {
	Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	Get(ctx context.Context, agencyID, siteID string) (SiteResponse, error)
	List(ctx context.Context, agencyID string) ([]SiteResponse, error)

	// UpdateBoundary validates and replaces the site geofence
	UpdateBoundary(ctx context.Context, req UpdateBoundaryRequest) (SiteResponse, error)

	// VerifyLocation reports whether a point lies inside the site geofence
	VerifyLocation(ctx context.Context, req VerifyLocationRequest) (VerifyLocationResponse, error)
}
