package geo

import "math"

// EarthRadiusMeters is the mean earth radius as defined by the IUGG.
const EarthRadiusMeters = 6371e3

// Point is a latitude/longitude pair in radians.
type Point struct {
	Lat float64
	Lon float64
}

// FromDegrees converts a degree pair into a Point.
func FromDegrees(lat, lon float64) Point {
	return Point{Lat: lat * math.Pi / 180, Lon: lon * math.Pi / 180}
}

// Degrees returns the point as a degree pair.
func (p Point) Degrees() (lat, lon float64) {
	return p.Lat * 180 / math.Pi, p.Lon * 180 / math.Pi
}

// centralAngle returns the angle subtended at the sphere's center by a and b.
// Uses the atan2 form so near-coincident and near-antipodal points keep
// their precision.
func centralAngle(a, b Point) float64 {
	dLon := b.Lon - a.Lon
	sinLat1, cosLat1 := math.Sincos(a.Lat)
	sinLat2, cosLat2 := math.Sincos(b.Lat)
	sinDLon, cosDLon := math.Sincos(dLon)

	x := cosLat2 * sinDLon
	y := cosLat1*sinLat2 - sinLat1*cosLat2*cosDLon
	num := math.Hypot(x, y)
	den := sinLat1*sinLat2 + cosLat1*cosLat2*cosDLon
	return math.Atan2(num, den)
}

// GreatCircleDistance returns the length of the shorter great-circle arc
// between a and b on a sphere of the given radius.
func GreatCircleDistance(a, b Point, radius float64) float64 {
	return centralAngle(a, b) * radius
}

// InitialBearing returns the azimuth at a of the great-circle path a→b,
// clockwise from north, in [0, 2π).
func InitialBearing(a, b Point) float64 {
	dLon := b.Lon - a.Lon
	sinLat1, cosLat1 := math.Sincos(a.Lat)
	sinLat2, cosLat2 := math.Sincos(b.Lat)
	y := math.Sin(dLon) * cosLat2
	x := cosLat1*sinLat2 - sinLat1*cosLat2*math.Cos(dLon)
	return normalizeBearing(math.Atan2(y, x))
}

// FinalBearing returns the heading on arrival at b when travelling a→b.
// It is the reverse of the initial bearing of the path b→a.
func FinalBearing(a, b Point) float64 {
	return normalizeBearing(InitialBearing(b, a) + math.Pi)
}

// PointToGreatCircleDistance returns the signed cross-track distance of p
// from the great circle through a and b. Positive values lie to the right of
// the direction of travel a→b. When a and b coincide no circle is defined
// and the point distance from a to p is returned instead.
func PointToGreatCircleDistance(a, b, p Point, radius float64) float64 {
	if a == b {
		return GreatCircleDistance(a, p, radius)
	}
	d13 := centralAngle(a, p)
	theta13 := InitialBearing(a, p)
	theta12 := InitialBearing(a, b)
	xt := math.Asin(clamp(math.Sin(d13)*math.Sin(theta13-theta12), -1, 1))
	return xt * radius
}

// PredictMovement solves the direct problem on the sphere: the destination
// reached from a after travelling distance along bearing. A negative
// distance moves backwards along the same great circle.
func PredictMovement(a Point, distance, bearing, radius float64) Point {
	delta := distance / radius
	sinLat1, cosLat1 := math.Sincos(a.Lat)
	sinDelta, cosDelta := math.Sincos(delta)
	sinTheta, cosTheta := math.Sincos(bearing)

	sinLat2 := clamp(sinLat1*cosDelta+cosLat1*sinDelta*cosTheta, -1, 1)
	lat2 := math.Asin(sinLat2)
	lon2 := a.Lon + math.Atan2(sinTheta*sinDelta*cosLat1, cosDelta-sinLat1*sinLat2)
	return Point{Lat: lat2, Lon: normalizeLon(lon2)}
}

func normalizeBearing(b float64) float64 {
	b = math.Mod(b, 2*math.Pi)
	if b < 0 {
		b += 2 * math.Pi
	}
	return b
}

func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+math.Pi, 2*math.Pi)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	return lon - math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
