package track

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
)

// ErrInvalidCoordinate is returned for latitudes outside [-90, 90] or
// longitudes outside [-180, 180] degrees.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

var nextSeq atomic.Uint64

// Fix is one timestamped position sample. Lat and Lon are radians.
// Fixes are values; nothing in this module mutates one after NewFix.
type Fix struct {
	Lat    float64
	Lon    float64
	Time   time.Time
	Source string
	Seq    uint64
}

// NewFix builds a fix from radian coordinates and assigns it a
// process-unique sequence id.
func NewFix(source string, lat, lon float64, ts time.Time) Fix {
	return Fix{
		Lat:    lat,
		Lon:    lon,
		Time:   ts,
		Source: source,
		Seq:    nextSeq.Add(1),
	}
}

// NewFixDegrees validates a degree pair and builds a fix from it.
func NewFixDegrees(source string, lat, lon float64, ts time.Time) (Fix, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Fix{}, errors.Wrapf(ErrInvalidCoordinate, "lat=%g lon=%g", lat, lon)
	}
	p := geo.FromDegrees(lat, lon)
	return NewFix(source, p.Lat, p.Lon, ts), nil
}

// Point returns the fix position.
func (f Fix) Point() geo.Point {
	return geo.Point{Lat: f.Lat, Lon: f.Lon}
}

// Degrees returns the fix position in degrees.
func (f Fix) Degrees() (lat, lon float64) {
	return f.Point().Degrees()
}

// SamePosition reports whether two fixes were reported at the same place
// and time.
func (f Fix) SamePosition(o Fix) bool {
	return f.Lat == o.Lat && f.Lon == o.Lon && f.Time.Equal(o.Time)
}

func (f Fix) String() string {
	lat, lon := f.Degrees()
	return fmt.Sprintf("%s#%d (%.6f, %.6f) %s", f.Source, f.Seq, lat, lon, f.Time.UTC().Format(time.RFC3339))
}
