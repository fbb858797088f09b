package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deg(v float64) float64 { return v * math.Pi / 180 }

func TestGreatCircleDistance(t *testing.T) {
	angelsCamp := FromDegrees(38.0675, -120.5436)
	murphys := FromDegrees(38.1391, -120.4561)

	d := GreatCircleDistance(angelsCamp, murphys, EarthRadiusMeters)
	assert.InDelta(t, 11046, d, 100, "Angels Camp to Murphys is about 11 km")
	assert.InDelta(t, d, GreatCircleDistance(murphys, angelsCamp, EarthRadiusMeters), 1e-9, "distance is symmetric")
	assert.Zero(t, GreatCircleDistance(murphys, murphys, EarthRadiusMeters))
}

func TestGreatCircleDistance_MatchesOrb(t *testing.T) {
	pairs := [][2]Point{
		{FromDegrees(57.020442, 10.016914), FromDegrees(57.024037, 10.020870)},
		{FromDegrees(0, 0), FromDegrees(0, 90)},
		{FromDegrees(-33.8688, 151.2093), FromDegrees(51.5074, -0.1278)},
		{FromDegrees(89.9, 10), FromDegrees(89.9, -170)},
	}
	for _, p := range pairs {
		aLat, aLon := p[0].Degrees()
		bLat, bLon := p[1].Degrees()
		want := orbgeo.DistanceHaversine(orb.Point{aLon, aLat}, orb.Point{bLon, bLat})
		got := GreatCircleDistance(p[0], p[1], orb.EarthRadius)
		assert.InEpsilon(t, want, got, 1e-9)
	}
}

func TestGreatCircleDistance_NearCoincident(t *testing.T) {
	a := FromDegrees(55, 12)
	b := Point{Lat: a.Lat + 1e-9, Lon: a.Lon}
	d := GreatCircleDistance(a, b, EarthRadiusMeters)
	assert.InEpsilon(t, 1e-9*EarthRadiusMeters, d, 1e-5)
}

func TestPointToGreatCircleDistance(t *testing.T) {
	a := FromDegrees(0, 0)
	b := FromDegrees(0, 1)
	offset := deg(0.01) * EarthRadiusMeters

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{name: "left of eastward path", p: FromDegrees(0.01, 0.5), want: -offset},
		{name: "right of eastward path", p: FromDegrees(-0.01, 0.5), want: offset},
		{name: "on the path", p: FromDegrees(0, 0.3), want: 0},
		{name: "beyond the arc still measures to the circle", p: FromDegrees(0.01, 3), want: -offset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointToGreatCircleDistance(a, b, tt.p, EarthRadiusMeters)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestPointToGreatCircleDistance_DegenerateCircle(t *testing.T) {
	a := FromDegrees(57.011257, 10.063530)
	p := FromDegrees(57.012349, 9.990929)
	got := PointToGreatCircleDistance(a, a, p, EarthRadiusMeters)
	assert.InDelta(t, GreatCircleDistance(a, p, EarthRadiusMeters), got, 1e-9)
	assert.Greater(t, got, 0.0)
}

func TestBearings(t *testing.T) {
	t.Run("eastward along the equator", func(t *testing.T) {
		b := FinalBearing(FromDegrees(0, 0), FromDegrees(0, 10))
		assert.InDelta(t, math.Pi/2, b, 1e-12)
	})

	t.Run("northward along a meridian", func(t *testing.T) {
		b := FinalBearing(FromDegrees(10, 20), FromDegrees(30, 20))
		assert.InDelta(t, 0, b, 1e-12)
	})

	t.Run("westward", func(t *testing.T) {
		b := FinalBearing(FromDegrees(0, 10), FromDegrees(0, 0))
		assert.InDelta(t, 3*math.Pi/2, b, 1e-12)
	})

	t.Run("final differs from initial at high latitude", func(t *testing.T) {
		a := FromDegrees(60, 0)
		b := FromDegrees(60, 20)
		initial := InitialBearing(a, b)
		final := FinalBearing(a, b)
		assert.Less(t, initial, math.Pi/2, "great circle heads poleward first")
		assert.Greater(t, final, math.Pi/2, "and arrives heading equatorward")
		assert.InDelta(t, math.Pi-initial, final, 1e-9, "symmetric about the midpoint meridian")
	})

	t.Run("result is within [0, 2pi)", func(t *testing.T) {
		b := FinalBearing(FromDegrees(57.012313, 9.991171), FromDegrees(57.011549, 10.057820))
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 2*math.Pi)
		assert.InDelta(t, math.Pi/2, b, deg(5), "heading roughly east")
	})
}

func TestPredictMovement(t *testing.T) {
	start := FromDegrees(57.012313, 9.991171)

	t.Run("round trip with the inverse problem", func(t *testing.T) {
		target := FromDegrees(57.011549, 10.057820)
		d := GreatCircleDistance(start, target, EarthRadiusMeters)
		got := PredictMovement(start, d, InitialBearing(start, target), EarthRadiusMeters)
		assert.InDelta(t, 0, GreatCircleDistance(got, target, EarthRadiusMeters), 1e-6)
	})

	t.Run("travelled distance is preserved", func(t *testing.T) {
		got := PredictMovement(start, 4500, math.Pi/2, EarthRadiusMeters)
		assert.InDelta(t, 4500, GreatCircleDistance(start, got, EarthRadiusMeters), 1e-6)
		assert.InDelta(t, start.Lat, got.Lat, deg(0.01), "east keeps latitude close")
		assert.Greater(t, got.Lon, start.Lon)
	})

	t.Run("negative distance reverses direction", func(t *testing.T) {
		back := PredictMovement(start, -1000, deg(30), EarthRadiusMeters)
		reversed := PredictMovement(start, 1000, deg(210), EarthRadiusMeters)
		assert.InDelta(t, 0, GreatCircleDistance(back, reversed, EarthRadiusMeters), 1e-6)
	})

	t.Run("zero distance stays put", func(t *testing.T) {
		got := PredictMovement(start, 0, deg(123), EarthRadiusMeters)
		assert.InDelta(t, start.Lat, got.Lat, 1e-15)
		assert.InDelta(t, start.Lon, got.Lon, 1e-15)
	})

	t.Run("longitude wraps across the antimeridian", func(t *testing.T) {
		got := PredictMovement(FromDegrees(0, 179.99), 5000, math.Pi/2, EarthRadiusMeters)
		assert.Less(t, got.Lon, 0.0)
		assert.GreaterOrEqual(t, got.Lon, -math.Pi)
	})
}

func TestSphereKernel(t *testing.T) {
	k := Earth()
	a := FromDegrees(55, 12)
	b := FromDegrees(55.01, 12.02)
	p := FromDegrees(55.006, 12.009)

	assert.Equal(t, GreatCircleDistance(a, b, EarthRadiusMeters), k.Distance(a, b))
	assert.Equal(t, PointToGreatCircleDistance(a, b, p, EarthRadiusMeters), k.CrossTrack(a, b, p))
	assert.Equal(t, FinalBearing(a, b), k.FinalBearing(a, b))
	assert.Equal(t, PredictMovement(a, 10, 1, EarthRadiusMeters), k.Predict(a, 10, 1))
}

func TestEllipsoid_SphericalBackendAgreesWithSphere(t *testing.T) {
	e := NewEllipsoid(SphericalGeodesy{Radius: EarthRadiusMeters})
	a := FromDegrees(0, 0)
	b := FromDegrees(0, 1)

	t.Run("foot inside the segment", func(t *testing.T) {
		p := FromDegrees(0.01, 0.4)
		want := math.Abs(PointToGreatCircleDistance(a, b, p, EarthRadiusMeters))
		assert.InDelta(t, want, e.PointToGeodesicDistance(a, b, p), 0.01)
	})

	t.Run("foot beyond the segment clamps to the endpoint", func(t *testing.T) {
		p := FromDegrees(0.01, 1.5)
		want := GreatCircleDistance(b, p, EarthRadiusMeters)
		assert.InDelta(t, want, e.PointToGeodesicDistance(a, b, p), 1.0)
	})

	t.Run("degenerate segment", func(t *testing.T) {
		p := FromDegrees(0.5, 0.5)
		assert.InDelta(t, GreatCircleDistance(a, p, EarthRadiusMeters), e.PointToGeodesicDistance(a, a, p), 1e-6)
	})

	t.Run("two-point problems delegate", func(t *testing.T) {
		assert.InDelta(t, GreatCircleDistance(a, b, EarthRadiusMeters), e.Distance(a, b), 1e-9)
		assert.InDelta(t, math.Pi/2, e.FinalBearing(a, b), 1e-12)
		got := e.Predict(a, 1000, math.Pi/2)
		assert.InDelta(t, 1000, e.Distance(a, got), 1e-6)
	})
}

func TestEllipsoid_WGS84(t *testing.T) {
	e := NewEllipsoid(WGS84())

	// One degree of longitude on the WGS84 equator.
	d := e.Distance(FromDegrees(0, 0), FromDegrees(0, 1))
	assert.InDelta(t, 111319.491, d, 0.01)

	a := FromDegrees(57.020442, 10.016914)
	b := FromDegrees(57.024037, 10.020870)
	p := FromDegrees(57.0225, 10.0175)

	sphere := math.Abs(PointToGreatCircleDistance(a, b, p, EarthRadiusMeters))
	ellipsoid := e.CrossTrack(a, b, p)
	require.Greater(t, sphere, 1.0)
	assert.InEpsilon(t, sphere, ellipsoid, 0.01, "ellipsoidal and spherical offsets agree to 1%")

	dest := e.Predict(a, 2500, deg(45))
	assert.InDelta(t, 2500, e.Distance(a, dest), 1e-3)
	assert.InDelta(t, deg(45), e.FinalBearing(a, dest), deg(0.1))
}
