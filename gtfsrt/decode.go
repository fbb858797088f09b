package gtfsrt

import (
	"sort"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// Snapshot is one decoded VehiclePositions message.
type Snapshot struct {
	// Timestamp is the feed header time; zero when the header has none.
	Timestamp time.Time
	Fixes     []track.Fix
	// Skipped counts vehicle entities without a usable position or time.
	Skipped int
}

// Decode parses a VehiclePositions FeedMessage. The fix source is the
// vehicle id, falling back to the trip id and then the entity id. The fix
// time is the vehicle timestamp, falling back to the header timestamp.
// Fixes are ordered by time, then source.
func Decode(data []byte) (*Snapshot, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, errors.Wrap(err, "unmarshal feed message")
	}

	snap := &Snapshot{}
	var headerTS uint64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTS = *fm.Header.Timestamp
		snap.Timestamp = time.Unix(int64(headerTS), 0).UTC()
	}

	for _, e := range fm.Entity {
		if e.Vehicle == nil {
			continue
		}
		v := e.Vehicle
		if v.Position == nil || v.Position.Latitude == nil || v.Position.Longitude == nil {
			snap.Skipped++
			continue
		}

		ts := headerTS
		if v.Timestamp != nil {
			ts = *v.Timestamp
		}
		if ts == 0 {
			snap.Skipped++
			continue
		}

		fix, err := track.NewFixDegrees(
			sourceOf(e),
			float64(*v.Position.Latitude),
			float64(*v.Position.Longitude),
			time.Unix(int64(ts), 0).UTC(),
		)
		if err != nil {
			snap.Skipped++
			continue
		}
		snap.Fixes = append(snap.Fixes, fix)
	}

	sort.SliceStable(snap.Fixes, func(i, j int) bool {
		a, b := snap.Fixes[i], snap.Fixes[j]
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		return a.Source < b.Source
	})
	return snap, nil
}

// DecodeVehiclePositions parses a VehiclePositions FeedMessage into fixes.
func DecodeVehiclePositions(data []byte) ([]track.Fix, error) {
	snap, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return snap.Fixes, nil
}

func sourceOf(e *gtfsrtpb.FeedEntity) string {
	v := e.Vehicle
	if v.Vehicle != nil && v.Vehicle.GetId() != "" {
		return v.Vehicle.GetId()
	}
	if v.Trip != nil && v.Trip.GetTripId() != "" {
		return v.Trip.GetTripId()
	}
	return e.GetId()
}
