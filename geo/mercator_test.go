package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamessynge/wifi_survey/geom"
)

func TestMercatorKnownValues(t *testing.T) {
	transform := MakeMercatorTransform()

	origin := transform.ToPoint(Location{Lat: 0, Lon: 0})
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 0, origin.Y, 1e-9)

	// The antimeridian maps to half the projected circumference.
	edge := transform.ToPoint(Location{Lat: 0, Lon: 180})
	assert.InDelta(t, math.Pi*kMercatorRadiusMeters, edge.X, 1e-6)

	// North is positive y, west is negative x.
	sf := transform.ToPoint(Location{Lat: 37.7749, Lon: -122.4194})
	assert.Less(t, sf.X, 0.0)
	assert.Greater(t, sf.Y, 0.0)
	assert.InDelta(t, -13627665.3, sf.X, 10)
	assert.InDelta(t, 4547675.4, sf.Y, 10)
}

func TestMercatorRoundTrip(t *testing.T) {
	transform := MakeMercatorTransform()
	locations := []Location{
		{Lat: 0, Lon: 0},
		{Lat: 37.7749, Lon: -122.4194},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 84.9, Lon: 179.9},
	}
	for _, loc := range locations {
		back, err := transform.FromPoint(transform.ToPoint(loc))
		require.NoError(t, err)
		assert.InDelta(t, float64(loc.Lat), float64(back.Lat), 1e-9)
		assert.InDelta(t, float64(loc.Lon), float64(back.Lon), 1e-9)
	}
}

func TestProjectLocationsRejectsPolarLatitude(t *testing.T) {
	transform := MakeMercatorTransform()
	_, err := ProjectLocations(
		[]Location{{Lat: 89, Lon: 0}}, transform)
	assert.Error(t, err)
}

func TestMeasureExtent(t *testing.T) {
	points := []geom.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 4},
		{X: 6, Y: 2},
	}
	e, err := MeasureExtent(points)
	require.NoError(t, err)
	assert.Equal(t, geom.Point{X: 5, Y: 2}, e.Center)
	assert.Equal(t, 10.0, e.Span)

	_, err = MeasureExtent(nil)
	assert.Error(t, err)
}

func TestSquareViewportPadding(t *testing.T) {
	e := Extent{
		Center: geom.Point{X: 5, Y: 2},
		Span:   10,
	}
	viewport := e.SquareViewport(1.2)
	assert.InDelta(t, 12, viewport.Width(), 1e-9)
	assert.InDelta(t, 12, viewport.Height(), 1e-9)
	assert.Equal(t, geom.Point{X: 5, Y: 2}, viewport.Center())
}
