// Package formatter encodes simplified trajectories for output.
//
// This package is organized into:
// - envelope.go: the JSON delivery envelope and result filtering
// - json.go: JSON serialization
// - geojson.go: GeoJSON FeatureCollection via paulmach/orb
// - kml.go: KML documents via twpayne/go-kml
// - polyline.go: Google encoded polylines via twpayne/go-polyline
// - format.go: format selection for the CLI
package formatter
