package geo

// Kernel is the set of geometric primitives the simplifiers are written
// against. Implementations are stateless and safe for concurrent use.
type Kernel interface {
	// Distance returns the shortest surface distance between a and b.
	Distance(a, b Point) float64
	// CrossTrack returns the signed distance of p from the path through a
	// and b. Callers take the absolute value when they need a distance.
	CrossTrack(a, b, p Point) float64
	// FinalBearing returns the heading on arrival at b when travelling a→b.
	FinalBearing(a, b Point) float64
	// Predict returns the point reached from a after distance along bearing.
	Predict(a Point, distance, bearing float64) Point
}

// Sphere is a Kernel on a sphere of the given radius.
type Sphere struct {
	Radius float64
}

// Earth returns a spherical kernel using the mean earth radius.
func Earth() Sphere {
	return Sphere{Radius: EarthRadiusMeters}
}

func (s Sphere) Distance(a, b Point) float64 {
	return GreatCircleDistance(a, b, s.Radius)
}

func (s Sphere) CrossTrack(a, b, p Point) float64 {
	return PointToGreatCircleDistance(a, b, p, s.Radius)
}

func (s Sphere) FinalBearing(a, b Point) float64 {
	return FinalBearing(a, b)
}

func (s Sphere) Predict(a Point, distance, bearing float64) Point {
	return PredictMovement(a, distance, bearing, s.Radius)
}

var (
	_ Kernel = Sphere{}
	_ Kernel = (*Ellipsoid)(nil)
)
