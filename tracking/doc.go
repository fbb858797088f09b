// Package tracking keeps live simplified trajectories for every vehicle of
// a realtime feed.
//
// This package handles:
// - Opening a route per source on its first fix
// - Feeding each fix to one Simplifier per configured strategy
// - Ignoring positions the feed repeats between polls
// - Closing a route when its source goes silent for longer than the gap
// - Exporting observed, rejected and active-route counts to Prometheus
//
// The Tracker is the only state shared between goroutines; the
// simplifiers it owns are only touched under its lock.
package tracking
