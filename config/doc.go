// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// It names the earth model, the route gap, the simplification strategies to
// run and the GTFS-Realtime feeds that can be watched, selected by name.
package config
