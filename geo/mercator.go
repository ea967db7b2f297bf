package geo

import (
	"fmt"
	"math"

	"github.com/jamessynge/wifi_survey/geom"
)

// Spherical Web Mercator (the EPSG:3857 convention used by web map
// tiles): x is meters east of the prime meridian, y is meters north of
// the equator, both on a sphere of the equatorial radius. Euclidean
// distances in this plane are close enough to true distances over a
// metro-sized region for gridding and interpolation.
const kMercatorRadiusMeters = 6378137

// Latitudes beyond the mercator cutoff project to infinity.
const kMaxMercatorLatitude = 85.051128779806

type CoordTransform interface {
	ToPoint(loc Location) (pt geom.Point)
	FromPoint(pt geom.Point) (loc Location, err error)
}

type MercatorTransform struct{}

func (t MercatorTransform) ToPoint(loc Location) geom.Point {
	x := kMercatorRadiusMeters * loc.Lon.ToRadians()
	latRad := loc.Lat.ToRadians()
	y := kMercatorRadiusMeters * math.Log(math.Tan(math.Pi/4+latRad/2))
	return geom.Point{X: x, Y: y}
}

func (t MercatorTransform) FromPoint(pt geom.Point) (loc Location, err error) {
	lon := toDegrees(pt.X / kMercatorRadiusMeters)
	lat := toDegrees(2*math.Atan(math.Exp(pt.Y/kMercatorRadiusMeters)) - math.Pi/2)
	return LocationFromFloat64s(lat, lon)
}

func MakeMercatorTransform() CoordTransform {
	return MercatorTransform{}
}

func (l Latitude) ToRadians() float64 {
	return float64(l) * math.Pi / 180
}
func (l Longitude) ToRadians() float64 {
	return float64(l) * math.Pi / 180
}

// Projects locations, rejecting any latitude beyond the mercator cutoff.
func ProjectLocations(locations []Location, transform CoordTransform) (
	points []geom.Point, err error) {
	points = make([]geom.Point, len(locations))
	for i, loc := range locations {
		if math.Abs(float64(loc.Lat)) > kMaxMercatorLatitude {
			return nil, fmt.Errorf(
				"latitude %v is beyond the mercator projection cutoff", loc.Lat)
		}
		points[i] = transform.ToPoint(loc)
	}
	return points, nil
}

// Bounding box, center, and maximum axis span of the projected point
// set; the inputs for sizing a square viewport around the data.
type Extent struct {
	Bounds geom.Rect
	Center geom.Point
	Span   float64
}

func MeasureExtent(points []geom.Point) (e Extent, err error) {
	if len(points) == 0 {
		err = fmt.Errorf("no points to measure")
		return
	}
	e.Bounds = geom.PointsBounds(points)
	e.Center = e.Bounds.Center()
	e.Span = math.Max(e.Bounds.Width(), e.Bounds.Height())
	return
}

// A square region of side span*padding centered on the extent's center.
func (e Extent) SquareViewport(padding float64) geom.Rect {
	half := e.Span / 2 * padding
	center := geom.NewRect(e.Center.X, e.Center.X, e.Center.Y, e.Center.Y)
	return center.AddBorder(half, half)
}
