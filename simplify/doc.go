// Package simplify implements streaming trajectory compression.
//
// A Simplifier is built from a Strategy with New and fed the fixes of one
// route in time order. The SQUISH family (FixedCapacity, ErrorBounded and
// Hybrid) keeps the retained fixes in an indexed priority queue, scores
// every interior fix by how much shape would be lost by dropping it and
// evicts the lowest score whenever the capacity or error budget is
// exceeded. AnchorExtrapolation is dead reckoning against an anchor pair.
// Batch and UniformSampling are baselines.
//
// All distances are meters and all scores come from the geo.Kernel passed
// to New, so the same strategies run on a sphere or an ellipsoid.
package simplify
