package site

import (
	"time"

	"github.com/securefront/workforce-backend-go/internal/pkg/geo"
)

type Site struct {
	ID            string
	AgencyID      string
	Name          string
	AssignedHours float64
	Boundary      []geo.Point
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasGeofence reports whether the boundary can be evaluated.
func (s Site) HasGeofence() bool {
	return len(s.Boundary) >= 3
}
