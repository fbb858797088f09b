package track

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxGap is the time gap above which two consecutive fixes of one
// source are considered to belong to different routes.
const DefaultMaxGap = 48 * time.Hour

var routeNamespace = uuid.MustParse("0b5f7a3e-7d0c-4c55-9a53-4a8f0d5c2e61")

// Route is a time-sorted run of fixes from a single source with no
// internal gap above the segmentation threshold.
type Route struct {
	ID     string
	Source string
	Fixes  []Fix
}

// NewRoute starts a route at first. The route ID is derived from the source
// and the fix sequence id, so replaying the same fixes yields the same IDs.
func NewRoute(first Fix) Route {
	return Route{
		ID:     RouteID(first),
		Source: first.Source,
		Fixes:  []Fix{first},
	}
}

// RouteID returns the deterministic identifier of the route that starts at
// first.
func RouteID(first Fix) string {
	name := first.Source + "/" + strconv.FormatUint(first.Seq, 10)
	return uuid.NewSHA1(routeNamespace, []byte(name)).String()
}

// Start returns the time of the first fix.
func (r Route) Start() time.Time {
	if len(r.Fixes) == 0 {
		return time.Time{}
	}
	return r.Fixes[0].Time
}

// End returns the time of the last fix.
func (r Route) End() time.Time {
	if len(r.Fixes) == 0 {
		return time.Time{}
	}
	return r.Fixes[len(r.Fixes)-1].Time
}

// Segment splits fixes into routes. Fixes are grouped by source and
// stable-sorted by time within each source; a new route begins whenever two
// consecutive fixes are more than maxGap apart. Routes are returned ordered
// by source, then by start time.
func Segment(fixes []Fix, maxGap time.Duration) []Route {
	if len(fixes) == 0 {
		return nil
	}

	bySource := map[string][]Fix{}
	var sources []string
	for _, f := range fixes {
		if _, ok := bySource[f.Source]; !ok {
			sources = append(sources, f.Source)
		}
		bySource[f.Source] = append(bySource[f.Source], f)
	}
	sort.Strings(sources)

	var routes []Route
	for _, src := range sources {
		group := bySource[src]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Time.Before(group[j].Time)
		})

		current := NewRoute(group[0])
		for _, f := range group[1:] {
			last := current.Fixes[len(current.Fixes)-1]
			if f.Time.Sub(last.Time) > maxGap {
				routes = append(routes, current)
				current = NewRoute(f)
				continue
			}
			current.Fixes = append(current.Fixes, f)
		}
		routes = append(routes, current)
	}
	return routes
}
