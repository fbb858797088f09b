package formatter

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatGeoJSON  Format = "geojson"
	FormatKML      Format = "kml"
	FormatPolyline Format = "polyline"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatGeoJSON, FormatKML, FormatPolyline:
		return f, nil
	}
	return "", errors.Errorf("unknown output format %q", s)
}

// Options carries envelope fields for the encoders that use them.
type Options struct {
	Producer    string
	GeneratedAt time.Time
}

// Write encodes results to w in format f.
func Write(w io.Writer, f Format, results []pipeline.Result, opts Options) error {
	switch f {
	case FormatJSON:
		b, err := BuildJSON(BuildDelivery(results, opts.GeneratedAt, opts.Producer))
		if err != nil {
			return errors.Wrap(err, "encode json")
		}
		return writeLine(w, b)
	case FormatGeoJSON:
		b, err := BuildGeoJSON(results)
		if err != nil {
			return errors.Wrap(err, "encode geojson")
		}
		return writeLine(w, b)
	case FormatKML:
		return errors.Wrap(WriteKML(w, results, opts.Producer), "encode kml")
	case FormatPolyline:
		return WritePolylines(w, results)
	}
	return errors.Errorf("unknown output format %q", f)
}

func writeLine(w io.Writer, b []byte) error {
	if _, err := w.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}
