// Package geo provides great-circle distance computation for the browse
// proximity filter.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Distance returns the great-circle (haversine) distance in kilometers
// between two points given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
