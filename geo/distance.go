package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// Distance returns the great-circle distance in kilometers between two
// coordinates using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// FormatDistance renders whole meters below one kilometer and one decimal
// kilometer above it.
func FormatDistance(km float64) string {
	if m := math.Round(km * 1000); m < 1000 {
		return fmt.Sprintf("%dm", int(m))
	}
	return fmt.Sprintf("%.1fkm", km)
}
