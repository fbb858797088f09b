package geo

import (
	"math"

	"github.com/tidwall/geodesic"
)

// karney adapts github.com/tidwall/geodesic (a port of Karney's
// GeographicLib) to the Geodesy interface. The library works in degrees.
type karney struct {
	e *geodesic.Ellipsoid
}

// WGS84 returns a Geodesy back-end for the WGS84 ellipsoid.
func WGS84() Geodesy {
	return karney{e: geodesic.WGS84}
}

func (k karney) Inverse(a, b Point) (float64, float64, float64) {
	lat1, lon1 := a.Degrees()
	lat2, lon2 := b.Degrees()
	var s12, azi1, azi2 float64
	k.e.Inverse(lat1, lon1, lat2, lon2, &s12, &azi1, &azi2)
	return s12, azi1 * math.Pi / 180, azi2 * math.Pi / 180
}

func (k karney) Direct(a Point, azi1, s12 float64) Point {
	lat1, lon1 := a.Degrees()
	var lat2, lon2 float64
	k.e.Direct(lat1, lon1, azi1*180/math.Pi, s12, &lat2, &lon2, nil)
	return FromDegrees(lat2, lon2)
}
