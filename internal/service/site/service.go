package site

import (
	"context"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/domain/site"
	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
)

type SiteServiceImpl struct {
	site.SiteRepository
	cache site.BoundaryCache
}

// Create implements site.SiteService.
func (s *SiteServiceImpl) Create(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}
	boundary := site.ToPoints(req.Boundary)
	if err := geo.ValidateBoundary(boundary); err != nil {
		return site.SiteResponse{}, err
	}

	created, err := s.SiteRepository.Create(ctx, site.Site{
		AgencyID:      req.AgencyID,
		Name:          req.Name,
		AssignedHours: req.AssignedHours,
		Boundary:      boundary,
	})
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to create site: %w", err)
	}
	return site.NewSiteResponse(created), nil
}

// Get implements site.SiteService.
func (s *SiteServiceImpl) Get(ctx context.Context, agencyID, siteID string) (site.SiteResponse, error) {
	st, err := s.load(ctx, agencyID, siteID)
	if err != nil {
		return site.SiteResponse{}, err
	}
	return site.NewSiteResponse(st), nil
}

// List implements site.SiteService.
func (s *SiteServiceImpl) List(ctx context.Context, agencyID string) ([]site.SiteResponse, error) {
	sites, err := s.SiteRepository.ListByAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	out := make([]site.SiteResponse, 0, len(sites))
	for _, st := range sites {
		out = append(out, site.NewSiteResponse(st))
	}
	return out, nil
}

// UpdateBoundary implements site.SiteService.
func (s *SiteServiceImpl) UpdateBoundary(ctx context.Context, req site.UpdateBoundaryRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}
	boundary := site.ToPoints(req.Boundary)
	if err := geo.ValidateBoundary(boundary); err != nil {
		return site.SiteResponse{}, err
	}
	if _, err := s.load(ctx, req.AgencyID, req.SiteID); err != nil {
		return site.SiteResponse{}, err
	}

	updated, err := s.SiteRepository.UpdateBoundary(ctx, req.SiteID, boundary)
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to update boundary: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, req.SiteID)
	}
	return site.NewSiteResponse(updated), nil
}

// VerifyLocation implements site.SiteService.
func (s *SiteServiceImpl) VerifyLocation(ctx context.Context, req site.VerifyLocationRequest) (site.VerifyLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return site.VerifyLocationResponse{}, err
	}

	st, err := s.loadBoundary(ctx, req.AgencyID, req.SiteID)
	if err != nil {
		return site.VerifyLocationResponse{}, err
	}
	if !st.HasGeofence() {
		return site.VerifyLocationResponse{}, site.ErrGeofenceNotConfigured
	}

	point := geo.Point{Lat: *req.Lat, Lng: *req.Lng}
	resp := site.VerifyLocationResponse{
		SiteID:   st.ID,
		SiteName: st.Name,
		Inside:   geo.IsInside(point, st.Boundary),
	}
	if !resp.Inside {
		distance := geo.NearestVertexDistance(point, st.Boundary)
		resp.DistanceMeters = &distance
	}
	return resp, nil
}

// loadBoundary reads the site through the cache when one is configured.
func (s *SiteServiceImpl) loadBoundary(ctx context.Context, agencyID, siteID string) (site.Site, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, siteID); ok {
			if cached.AgencyID != agencyID {
				return site.Site{}, site.ErrForbidden
			}
			return cached, nil
		}
	}

	st, err := s.load(ctx, agencyID, siteID)
	if err != nil {
		return site.Site{}, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, st)
	}
	return st, nil
}

func (s *SiteServiceImpl) load(ctx context.Context, agencyID, siteID string) (site.Site, error) {
	st, err := s.SiteRepository.GetByID(ctx, siteID)
	if err != nil {
		return site.Site{}, err
	}
	if st.AgencyID != agencyID {
		return site.Site{}, site.ErrForbidden
	}
	return st, nil
}

// NewSiteService creates the site service; cache may be nil.
func NewSiteService(siteRepo site.SiteRepository, cache site.BoundaryCache) site.SiteService {
	return &SiteServiceImpl{SiteRepository: siteRepo, cache: cache}
}
