package geo

import "math"

const (
	// DefaultTolerance is the relative bracket width at which the
	// point-to-geodesic search stops.
	DefaultTolerance = 1e-5
	// DefaultMaxIterations bounds the point-to-geodesic search.
	DefaultMaxIterations = 100
)

var invPhi = (math.Sqrt(5) - 1) / 2

// Geodesy solves the two-point geodesic problems on some earth model.
// Azimuths are radians clockwise from north, distances are meters.
type Geodesy interface {
	// Inverse returns the geodesic length from a to b together with the
	// azimuths at a and at b.
	Inverse(a, b Point) (s12, azi1, azi2 float64)
	// Direct returns the point reached from a after s12 along azi1.
	Direct(a Point, azi1, s12 float64) Point
}

// Ellipsoid is a Kernel that delegates the two-point sub-problems to an
// injected Geodesy back-end.
type Ellipsoid struct {
	Geodesy       Geodesy
	Tolerance     float64
	MaxIterations int
}

// NewEllipsoid returns an Ellipsoid kernel with default search settings.
func NewEllipsoid(g Geodesy) *Ellipsoid {
	return &Ellipsoid{Geodesy: g, Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
}

func (e *Ellipsoid) Distance(a, b Point) float64 {
	s12, _, _ := e.Geodesy.Inverse(a, b)
	return s12
}

// CrossTrack returns the distance from p to the geodesic segment a-b. The
// refinement search cannot tell sides apart, so the result is never
// negative.
func (e *Ellipsoid) CrossTrack(a, b, p Point) float64 {
	return e.PointToGeodesicDistance(a, b, p)
}

func (e *Ellipsoid) FinalBearing(a, b Point) float64 {
	_, _, azi2 := e.Geodesy.Inverse(a, b)
	return normalizeBearing(azi2)
}

func (e *Ellipsoid) Predict(a Point, distance, bearing float64) Point {
	return e.Geodesy.Direct(a, bearing, distance)
}

// PointToGeodesicDistance returns the distance from p to its foot point on
// the geodesic segment a-b. The foot is located by a golden-section search
// over arc length, stopping once the bracket is narrower than Tolerance
// relative to the segment length or MaxIterations is reached.
func (e *Ellipsoid) PointToGeodesicDistance(a, b, p Point) float64 {
	if a == b {
		return e.Distance(a, p)
	}
	sAB, azi, _ := e.Geodesy.Inverse(a, b)
	if sAB == 0 {
		return e.Distance(a, p)
	}

	tol := e.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	maxIter := e.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	dist := func(s float64) float64 {
		return e.Distance(e.Geodesy.Direct(a, azi, s), p)
	}

	lo, hi := 0.0, sAB
	c := hi - invPhi*(hi-lo)
	d := lo + invPhi*(hi-lo)
	fc, fd := dist(c), dist(d)
	for i := 0; i < maxIter && (hi-lo)/sAB > tol; i++ {
		if fc < fd {
			hi, d, fd = d, c, fc
			c = hi - invPhi*(hi-lo)
			fc = dist(c)
		} else {
			lo, c, fc = c, d, fd
			d = lo + invPhi*(hi-lo)
			fd = dist(d)
		}
	}
	return dist((lo + hi) / 2)
}

// SphericalGeodesy answers the two-point problems with the great-circle
// formulas. It is useful as a reference back-end for Ellipsoid.
type SphericalGeodesy struct {
	Radius float64
}

func (s SphericalGeodesy) Inverse(a, b Point) (float64, float64, float64) {
	return GreatCircleDistance(a, b, s.Radius), InitialBearing(a, b), FinalBearing(a, b)
}

func (s SphericalGeodesy) Direct(a Point, azi1, s12 float64) Point {
	return PredictMovement(a, s12, azi1, s.Radius)
}
