package formatter

import (
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// Delivery is the envelope written by the JSON encoder.
type Delivery struct {
	ResponseTimestamp string       `json:"responseTimestamp"`
	ProducerRef       string       `json:"producerRef"`
	Trajectories      []Trajectory `json:"trajectories"`
}

// Trajectory is one simplified route.
type Trajectory struct {
	RouteID          string     `json:"routeId"`
	Source           string     `json:"source"`
	Strategy         string     `json:"strategy"`
	Algorithm        string     `json:"algorithm"`
	RawCount         int        `json:"rawCount"`
	RetainedCount    int        `json:"retainedCount"`
	CompressionRatio float64    `json:"compressionRatio"`
	Start            string     `json:"start,omitempty"`
	End              string     `json:"end,omitempty"`
	Fixes            []Position `json:"fixes"`
}

// Position is a fix in degrees.
type Position struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Time      string  `json:"time"`
}

// BuildDelivery wraps results with a ResponseTimestamp and ProducerRef.
func BuildDelivery(results []pipeline.Result, at time.Time, producer string) Delivery {
	if producer == "" {
		producer = "UNKNOWN"
	}
	d := Delivery{
		ResponseTimestamp: iso8601(at),
		ProducerRef:       producer,
		Trajectories:      make([]Trajectory, 0, len(results)),
	}
	for _, r := range results {
		d.Trajectories = append(d.Trajectories, buildTrajectory(r))
	}
	return d
}

func buildTrajectory(r pipeline.Result) Trajectory {
	t := Trajectory{
		RouteID:          r.Route.ID,
		Source:           r.Route.Source,
		Strategy:         r.Strategy,
		Algorithm:        r.Algorithm,
		RawCount:         r.RawCount,
		RetainedCount:    len(r.Trajectory),
		CompressionRatio: r.CompressionRatio,
		Fixes:            positions(r.Trajectory),
	}
	if n := len(r.Trajectory); n > 0 {
		t.Start = iso8601(r.Trajectory[0].Time)
		t.End = iso8601(r.Trajectory[n-1].Time)
	}
	return t
}

func positions(fixes []track.Fix) []Position {
	out := make([]Position, len(fixes))
	for i, f := range fixes {
		lat, lon := f.Degrees()
		out[i] = Position{Latitude: lat, Longitude: lon, Time: iso8601(f.Time)}
	}
	return out
}

// FilterResults keeps the results matching source and strategy. Empty
// filters match everything; matching ignores case and surrounding space.
func FilterResults(results []pipeline.Result, source, strategy string) []pipeline.Result {
	source = strings.ToLower(strings.TrimSpace(source))
	strategy = strings.ToLower(strings.TrimSpace(strategy))

	filtered := make([]pipeline.Result, 0, len(results))
	for _, r := range results {
		if source != "" && strings.ToLower(r.Route.Source) != source {
			continue
		}
		if strategy != "" && strings.ToLower(r.Strategy) != strategy {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
