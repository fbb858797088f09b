package formatter

import (
	"fmt"
	"io"

	"github.com/twpayne/go-polyline"

	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// Polyline encodes fixes with the Google encoded polyline algorithm.
func Polyline(fixes []track.Fix) string {
	coords := make([][]float64, len(fixes))
	for i, f := range fixes {
		lat, lon := f.Degrees()
		coords[i] = []float64{lat, lon}
	}
	return string(polyline.EncodeCoords(coords))
}

// WritePolylines writes one tab-separated line per result: route id,
// source, strategy and the encoded trajectory.
func WritePolylines(w io.Writer, results []pipeline.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Route.ID, r.Route.Source, r.Strategy, Polyline(r.Trajectory)); err != nil {
			return err
		}
	}
	return nil
}
