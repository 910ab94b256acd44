package geo

import (
	"math"

	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
)

var ErrInvalidGeofence = apperror.New(apperror.ErrGeofence, "INVALID_GEOFENCE", "geofence must have at least 3 valid coordinates forming a simple polygon")

// Point is a WGS84 coordinate. Lng is the x axis and Lat the y axis in every
// planar computation below.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsInside reports whether p lies inside the polygon described by boundary,
// using ray casting. Polygons with fewer than 3 vertices contain nothing.
func IsInside(p Point, boundary []Point) bool {
	if len(boundary) < 3 {
		return false
	}

	inside := false
	j := len(boundary) - 1
	for i := 0; i < len(boundary); i++ {
		vi, vj := boundary[i], boundary[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lng < (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ValidateBoundary checks that coords describe a usable geofence: at least three
// finite in-range vertices, no repeated consecutive vertex, non-zero area and no
// self-intersection. A closing vertex equal to the first one is accepted.
func ValidateBoundary(coords []Point) error {
	ring := openRing(coords)
	if len(ring) < 3 {
		return ErrInvalidGeofence
	}

	for i, c := range ring {
		if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
			return ErrInvalidGeofence
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			return ErrInvalidGeofence
		}
		if c == ring[(i+1)%len(ring)] {
			return ErrInvalidGeofence
		}
	}

	if math.Abs(signedArea(ring)) == 0 {
		return ErrInvalidGeofence
	}

	n := len(ring)
	for i := 0; i < n; i++ {
		a1, a2 := ring[i], ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// adjacent edges share a vertex
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := ring[j], ring[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return ErrInvalidGeofence
			}
		}
	}
	return nil
}

// CalculateHaversineDistance returns the great-circle distance in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// NearestVertexDistance returns the distance in meters from p to the closest
// boundary vertex, or -1 for an empty boundary.
func NearestVertexDistance(p Point, boundary []Point) float64 {
	best := -1.0
	for _, v := range boundary {
		d := CalculateHaversineDistance(p.Lat, p.Lng, v.Lat, v.Lng)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func openRing(coords []Point) []Point {
	if len(coords) > 3 && coords[0] == coords[len(coords)-1] {
		return coords[:len(coords)-1]
	}
	return coords
}

func signedArea(ring []Point) float64 {
	var sum float64
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		sum += a.Lng*b.Lat - b.Lng*a.Lat
	}
	return sum / 2
}

func orientation(a, b, c Point) int {
	v := (b.Lng-a.Lng)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lng-a.Lng)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func onSegment(a, b, p Point) bool {
	return math.Min(a.Lng, b.Lng) <= p.Lng && p.Lng <= math.Max(a.Lng, b.Lng) &&
		math.Min(a.Lat, b.Lat) <= p.Lat && p.Lat <= math.Max(a.Lat, b.Lat)
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	return false
}
