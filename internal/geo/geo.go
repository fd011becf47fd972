// Package geo computes the travel distances the parameter builder and
// router need between sites.
package geo

import "math"

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat  float64
	Long float64
}

// TravelMiles approximates road distance between two points with the
// rectangular degree-to-miles conversion this domain uses instead of
// great-circle distance: 69 miles per degree of latitude, 53 miles per
// degree of longitude, summed and truncated to whole miles. MaxDist, when
// positive, clamps the result (asymmetric: only ever lowers a distance that
// would otherwise exceed it, never raises one that falls short).
func TravelMiles(a, b Coordinate, maxDist float64) int {
	dLat := math.Abs(a.Lat - b.Lat)
	dLong := math.Abs(a.Long - b.Long)
	miles := math.Floor(69*dLat + 53*dLong)
	if maxDist > 0 && miles > maxDist {
		miles = maxDist
	}
	return int(miles)
}

// HaversineMiles is the great-circle distance in miles, kept as a diagnostic
// alternative to TravelMiles — useful for sanity-checking the rectangular
// approximation against real road geometry, never used for the matrices fed
// into the router or smoother.
func HaversineMiles(a, b Coordinate) float64 {
	const earthRadiusMiles = 3958.8
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLong := (b.Long - a.Long) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLong/2)*math.Sin(dLong/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}
