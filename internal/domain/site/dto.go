package site

import (
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"github.com/securefront/workforce-backend-go/internal/pkg/validator"
)

// CoordinateInput keeps lat/lng optional so a missing value is distinguishable from 0.
type CoordinateInput struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type CreateSiteRequest struct {
	AgencyID      string            `json:"-"`
	Name          string            `json:"name"`
	AssignedHours float64           `json:"assigned_hours"`
	Boundary      []CoordinateInput `json:"boundary"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if r.AssignedHours < 0 {
		errs.Add("assigned_hours", "assigned_hours must not be negative")
	}
	validateCoordinates(&errs, r.Boundary)

	return errs.Err()
}

type UpdateBoundaryRequest struct {
	AgencyID string            `json:"-"`
	SiteID   string            `json:"-"`
	Boundary []CoordinateInput `json:"boundary"`
}

func (r *UpdateBoundaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs.Add("site_id", "site_id is required")
	}
	validateCoordinates(&errs, r.Boundary)

	return errs.Err()
}

type VerifyLocationRequest struct {
	AgencyID string   `json:"-"`
	SiteID   string   `json:"-"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

func (r *VerifyLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Lat == nil || !validator.IsValidLatitude(*r.Lat) {
		errs.Add("lat", "lat is required and must be between -90 and 90")
	}
	if r.Lng == nil || !validator.IsValidLongitude(*r.Lng) {
		errs.Add("lng", "lng is required and must be between -180 and 180")
	}

	return errs.Err()
}

// ToPoints converts request coordinates; it assumes Validate passed.
func ToPoints(coords []CoordinateInput) []geo.Point {
	points := make([]geo.Point, 0, len(coords))
	for _, c := range coords {
		if c.Lat == nil || c.Lng == nil {
			continue
		}
		points = append(points, geo.Point{Lat: *c.Lat, Lng: *c.Lng})
	}
	return points
}

func validateCoordinates(errs *validator.ValidationErrors, coords []CoordinateInput) {
	if len(coords) < 3 {
		errs.Add("boundary", "boundary requires at least 3 coordinates")
		return
	}
	for i, c := range coords {
		if c.Lat == nil || c.Lng == nil {
			errs.Add(fmt.Sprintf("boundary[%d]", i), "lat and lng are required")
		}
	}
}

type SiteResponse struct {
	ID            string      `json:"id"`
	AgencyID      string      `json:"agency_id"`
	Name          string      `json:"name"`
	AssignedHours float64     `json:"assigned_hours"`
	Boundary      []geo.Point `json:"boundary"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

func NewSiteResponse(s Site) SiteResponse {
	boundary := s.Boundary
	if boundary == nil {
		boundary = []geo.Point{}
	}
	return SiteResponse{
		ID:            s.ID,
		AgencyID:      s.AgencyID,
		Name:          s.Name,
		AssignedHours: s.AssignedHours,
		Boundary:      boundary,
		CreatedAt:     timeutil.FormatUTC(s.CreatedAt),
		UpdatedAt:     timeutil.FormatUTC(s.UpdatedAt),
	}
}

type VerifyLocationResponse struct {
	SiteID         string   `json:"site_id"`
	SiteName       string   `json:"site_name"`
	Inside         bool     `json:"inside"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}
