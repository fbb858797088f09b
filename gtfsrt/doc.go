// Package gtfsrt turns GTFS-Realtime VehiclePositions feeds into fixes.
//
// Decode parses one FeedMessage into a Snapshot of fixes. Client fetches
// feeds over HTTP and Poller repeats fetch and decode on an interval,
// handing every fix to an Observer such as tracking.Tracker.
package gtfsrt
