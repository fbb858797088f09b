package formatter

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml"

	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
)

// WriteKML writes results as a KML document with one Placemark per
// result.
func WriteKML(w io.Writer, results []pipeline.Result, name string) error {
	placemarks := make([]kml.Element, 0, len(results)+1)
	placemarks = append(placemarks, kml.Name(name))

	for _, r := range results {
		if len(r.Trajectory) == 0 {
			continue
		}
		coords := make([]kml.Coordinate, len(r.Trajectory))
		for i, f := range r.Trajectory {
			lat, lon := f.Degrees()
			coords[i] = kml.Coordinate{Lon: lon, Lat: lat}
		}
		first, last := r.Trajectory[0], r.Trajectory[len(r.Trajectory)-1]

		placemarks = append(placemarks, kml.Placemark(
			kml.Name(fmt.Sprintf("%s %s", r.Route.Source, r.Strategy)),
			kml.Description(fmt.Sprintf("route %s, %s kept %d of %d fixes",
				r.Route.ID, r.Algorithm, len(r.Trajectory), r.RawCount)),
			kml.TimeSpan(
				kml.Begin(first.Time.UTC()),
				kml.End(last.Time.UTC()),
			),
			kml.LineString(kml.Coordinates(coords...)),
		))
	}

	return kml.KML(kml.Document(placemarks...)).WriteIndent(w, "", "  ")
}
