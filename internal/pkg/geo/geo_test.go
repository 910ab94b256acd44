package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

var square = []Point{
	{Lat: 10, Lng: 10},
	{Lat: 10, Lng: 20},
	{Lat: 20, Lng: 20},
	{Lat: 20, Lng: 10},
}

func TestIsInsideSquare(t *testing.T) {
	assert.True(t, IsInside(Point{Lat: 15, Lng: 15}, square))
	assert.False(t, IsInside(Point{Lat: 0, Lng: 0}, square))
	assert.False(t, IsInside(Point{Lat: 15, Lng: 25}, square))
	assert.False(t, IsInside(Point{Lat: 25, Lng: 15}, square))
}

func TestIsInsideConcavePolygon(t *testing.T) {
	// U shape opening to the north
	u := []Point{
		{Lat: 0, Lng: 0}, {Lat: 0, Lng: 30}, {Lat: 30, Lng: 30}, {Lat: 30, Lng: 20},
		{Lat: 10, Lng: 20}, {Lat: 10, Lng: 10}, {Lat: 30, Lng: 10}, {Lat: 30, Lng: 0},
	}
	assert.True(t, IsInside(Point{Lat: 20, Lng: 5}, u))
	assert.True(t, IsInside(Point{Lat: 5, Lng: 15}, u))
	assert.False(t, IsInside(Point{Lat: 20, Lng: 15}, u))
}

func TestIsInsideVertexOrderDoesNotMatter(t *testing.T) {
	reversed := make([]Point, len(square))
	for i, p := range square {
		reversed[len(square)-1-i] = p
	}
	assert.True(t, IsInside(Point{Lat: 15, Lng: 15}, reversed))
	assert.False(t, IsInside(Point{Lat: 0, Lng: 0}, reversed))
}

func TestIsInsideDegenerate(t *testing.T) {
	assert.False(t, IsInside(Point{Lat: 0, Lng: 0}, nil))
	assert.False(t, IsInside(Point{Lat: 10, Lng: 10}, square[:2]))
}

func TestValidateBoundary(t *testing.T) {
	cases := []struct {
		name   string
		coords []Point
		valid  bool
	}{
		{"square", square, true},
		{"closed square", append(append([]Point{}, square...), square[0]), true},
		{"triangle", []Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 0, Lng: 1}}, true},
		{"too few", square[:2], false},
		{"empty", nil, false},
		{"collinear", []Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}, false},
		{"repeated vertex", []Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}}, false},
		{"bow tie", []Point{{Lat: 0, Lng: 0}, {Lat: 10, Lng: 10}, {Lat: 0, Lng: 10}, {Lat: 10, Lng: 0}}, false},
		{"out of range", []Point{{Lat: 0, Lng: 0}, {Lat: 91, Lng: 0}, {Lat: 0, Lng: 1}}, false},
		{"nan", []Point{{Lat: 0, Lng: 0}, {Lat: math.NaN(), Lng: 0}, {Lat: 0, Lng: 1}}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateBoundary(c.coords)
			if c.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidGeofence)
			assert.True(t, errors.Is(err, apperror.ErrGeofence))
		})
	}
}

func TestNearestVertexDistance(t *testing.T) {
	assert.Equal(t, -1.0, NearestVertexDistance(Point{}, nil))
	d := NearestVertexDistance(Point{Lat: 10, Lng: 10}, square)
	assert.InDelta(t, 0, d, 0.001)

	// one degree of latitude is roughly 111km
	d = NearestVertexDistance(Point{Lat: 9, Lng: 10}, square)
	assert.InDelta(t, 111195, d, 100)
}
