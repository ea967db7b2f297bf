package geo

import (
	"fmt"
	"math"
)

type Latitude float64
type Longitude float64

type Location struct {
	Lat Latitude
	Lon Longitude
}

func (u Location) String() string {
	return fmt.Sprintf("(%f, %f)", u.Lat, u.Lon)
}

func LatitudeFromFloat64(v float64) (Latitude, error) {
	if !Latitude(v).IsValid() {
		ne := fmt.Errorf("latitude value out of range: %v", v)
		return Latitude(math.NaN()), ne
	}
	return Latitude(v), nil
}
func (l Latitude) IsValid() bool {
	return -90 <= l && l <= 90
}
func LongitudeFromFloat64(v float64) (Longitude, error) {
	if !Longitude(v).IsValid() {
		ne := fmt.Errorf("longitude value out of range: %v", v)
		return Longitude(math.NaN()), ne
	}
	return Longitude(v), nil
}
func (l Longitude) IsValid() bool {
	return -180 <= l && l <= 180
}
func LocationFromFloat64s(lat64, lon64 float64) (loc Location, err error) {
	loc.Lat, err = LatitudeFromFloat64(lat64)
	if err == nil {
		loc.Lon, err = LongitudeFromFloat64(lon64)
	}
	return loc, err
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
func toDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// A common estimate of average radius of earth, in meters.
const kEarthRadiusMeters = 6371009

// Uses Haversine formula to compute the great circle distance between
// loc1 and loc2, in meters.
// From: "Virtues of the Haversine", R. W. Sinnott,
//       Sky and Telescope, vol 68, no 2, 1984
// Via: http://www.movable-type.co.uk/scripts/latlong.html
func Distance(loc1, loc2 Location) (meters float64) {
	deltaLat := toRadians(float64(loc2.Lat - loc1.Lat))
	deltaLon := toRadians(float64(loc2.Lon - loc1.Lon))
	lat1 := toRadians(float64(loc1.Lat))
	lat2 := toRadians(float64(loc2.Lat))

	u := math.Sin(deltaLat / 2)
	v := math.Sin(deltaLon / 2)

	a := u*u + v*v*math.Cos(lat1)*math.Cos(lat2)
	greatCircleRadians := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return kEarthRadiusMeters * greatCircleRadians
}
