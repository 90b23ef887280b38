// Package geo provides great-circle math for GPS coordinates.
package geo

import (
	"fmt"
	"math"

	"github.com/radyab-gps/tracking-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

func rad2deg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

func checkFinite(coords ...float64) error {
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: coordinate is not finite", domain.ErrValidation)
		}
	}
	return nil
}

// Distance returns the haversine distance between two points in kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := checkFinite(lat1, lon1, lat2, lon2); err != nil {
		return 0, err
	}

	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c, nil
}

// Bearing returns the initial great-circle bearing from the first point
// toward the second, in degrees normalized to [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := checkFinite(lat1, lon1, lat2, lon2); err != nil {
		return 0, err
	}

	rLat1 := deg2rad(lat1)
	rLat2 := deg2rad(lat2)
	dLon := deg2rad(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(rLat2)
	x := math.Cos(rLat1)*math.Sin(rLat2) -
		math.Sin(rLat1)*math.Cos(rLat2)*math.Cos(dLon)
	bearing := math.Mod(rad2deg(math.Atan2(y, x))+360, 360)
	return bearing, nil
}
