package formatter

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// FeatureCollection returns one LineString feature per result. Single-fix
// trajectories become Point features.
func FeatureCollection(results []pipeline.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		if len(r.Trajectory) == 0 {
			continue
		}
		ls := lineString(r.Trajectory)

		var g orb.Geometry = ls
		if len(ls) == 1 {
			g = ls[0]
		}
		f := geojson.NewFeature(g)
		f.ID = r.Route.ID + "/" + r.Strategy
		f.BBox = geojson.NewBBox(ls.Bound())
		f.Properties["routeId"] = r.Route.ID
		f.Properties["source"] = r.Route.Source
		f.Properties["strategy"] = r.Strategy
		f.Properties["algorithm"] = r.Algorithm
		f.Properties["rawCount"] = r.RawCount
		f.Properties["retainedCount"] = len(r.Trajectory)
		f.Properties["compressionRatio"] = r.CompressionRatio
		f.Properties["lengthMeters"] = orbgeo.Length(ls)
		f.Properties["start"] = iso8601(r.Trajectory[0].Time)
		f.Properties["end"] = iso8601(r.Trajectory[len(r.Trajectory)-1].Time)
		fc.Append(f)
	}
	return fc
}

// BuildGeoJSON serializes results as a GeoJSON FeatureCollection.
func BuildGeoJSON(results []pipeline.Result) ([]byte, error) {
	return FeatureCollection(results).MarshalJSON()
}

func lineString(fixes []track.Fix) orb.LineString {
	ls := make(orb.LineString, len(fixes))
	for i, f := range fixes {
		lat, lon := f.Degrees()
		ls[i] = orb.Point{lon, lat}
	}
	return ls
}
