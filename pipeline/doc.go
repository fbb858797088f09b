// Package pipeline runs the simplifiers over a recorded batch of fixes.
//
// Run segments the fixes into routes and drives one Simplifier per
// (route, strategy) pair. Simplifiers share no state, so pairs run
// concurrently up to the configured parallelism.
package pipeline
