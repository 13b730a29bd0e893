package geo

import "math"

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// centroidEpsilon is the minimum mean-vector length for a meaningful centroid.
const centroidEpsilon = 1e-9

// ToECEF converts latitude/longitude (degrees) to a unit-sphere ECEF vector.
func ToECEF(latDeg, lonDeg float64) [3]float64 {
	lat := latDeg * math.Pi / 180
	lon := lonDeg * math.Pi / 180
	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat) * math.Sin(lon)
	z := math.Sin(lat)
	return [3]float64{x, y, z}
}

// FromECEF converts an ECEF vector of any non-zero length back to latitude/longitude degrees.
func FromECEF(v [3]float64) Point {
	hyp := math.Hypot(v[0], v[1])
	lat := math.Atan2(v[2], hyp) * 180 / math.Pi
	lon := math.Atan2(v[1], v[0]) * 180 / math.Pi
	return Point{Latitude: lat, Longitude: lon}
}

// Centroid returns the spherical mean of points: the ECEF vectors are averaged and
// projected back onto the sphere. ok is false for an empty set or when the points
// cancel out (e.g. two antipodes).
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var sum [3]float64
	for _, p := range points {
		v := ToECEF(p.Latitude, p.Longitude)
		sum[0] += v[0]
		sum[1] += v[1]
		sum[2] += v[2]
	}
	n := float64(len(points))
	mean := [3]float64{sum[0] / n, sum[1] / n, sum[2] / n}
	if math.Sqrt(mean[0]*mean[0]+mean[1]*mean[1]+mean[2]*mean[2]) < centroidEpsilon {
		return Point{}, false
	}
	return FromECEF(mean), true
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
