// Package track holds the position data model shared by the simplifiers.
//
// A Fix is a single timestamped position of one source (a vehicle). A Route
// is a maximal run of a source's fixes without a time gap above the
// segmentation threshold; Segment cuts a raw fix stream into routes so each
// route can be simplified independently.
package track
