package simplify

import "math"

// Strategy selects and parameterises a simplification algorithm. The set of
// strategies is closed; pass one to New.
type Strategy interface {
	// Name is the short algorithm name reported by the Simplifier.
	Name() string
	validate() error
}

// FixedCapacity keeps at most Capacity fixes, evicting the fix that lies
// closest to the arc through its retained neighbours (SQUISH).
type FixedCapacity struct {
	Capacity int
}

// ErrorBounded grows its capacity with the number of ingested fixes at
// LowerCompressionRate and additionally evicts every fix whose accumulated
// error stays within UpperErrorBound meters (SQUISH-E).
type ErrorBounded struct {
	LowerCompressionRate float64
	UpperErrorBound      float64
}

// AnchorExtrapolation keeps a fix only when the motion extrapolated from
// the current anchor pair misses the next fix by more than Tolerance
// meters (dead reckoning).
type AnchorExtrapolation struct {
	Tolerance float64
}

// Hybrid is FixedCapacity scored by the dead-reckoning error of a fix
// against its retained neighbours.
type Hybrid struct {
	Capacity int
}

// Batch runs Douglas-Peucker over the whole route with tolerance Epsilon
// meters.
type Batch struct {
	Epsilon float64
}

// UniformSampling keeps every Every-th fix and the last one.
type UniformSampling struct {
	Every int
}

func (FixedCapacity) Name() string       { return "SQUISH" }
func (ErrorBounded) Name() string        { return "SQUISH-E" }
func (AnchorExtrapolation) Name() string { return "DR" }
func (Hybrid) Name() string              { return "SQUISH-RECKONING" }
func (Batch) Name() string               { return "DP" }
func (UniformSampling) Name() string     { return "UNIFORM" }

func (s FixedCapacity) validate() error {
	if s.Capacity < 2 {
		return &ConfigError{Strategy: s.Name(), Field: "capacity", Value: s.Capacity, Reason: "must be at least 2"}
	}
	return nil
}

func (s ErrorBounded) validate() error {
	if math.IsNaN(s.LowerCompressionRate) || s.LowerCompressionRate < 1 {
		return &ConfigError{Strategy: s.Name(), Field: "lowerCompressionRate", Value: s.LowerCompressionRate, Reason: "must be at least 1"}
	}
	if math.IsNaN(s.UpperErrorBound) || math.IsInf(s.UpperErrorBound, 0) || s.UpperErrorBound < 0 {
		return &ConfigError{Strategy: s.Name(), Field: "upperErrorBound", Value: s.UpperErrorBound, Reason: "must be finite and non-negative"}
	}
	return nil
}

func (s AnchorExtrapolation) validate() error {
	if math.IsNaN(s.Tolerance) || s.Tolerance <= 0 {
		return &ConfigError{Strategy: s.Name(), Field: "tolerance", Value: s.Tolerance, Reason: "must be positive"}
	}
	return nil
}

func (s Hybrid) validate() error {
	if s.Capacity < 2 {
		return &ConfigError{Strategy: s.Name(), Field: "capacity", Value: s.Capacity, Reason: "must be at least 2"}
	}
	return nil
}

func (s Batch) validate() error {
	if math.IsNaN(s.Epsilon) || s.Epsilon <= 0 {
		return &ConfigError{Strategy: s.Name(), Field: "epsilon", Value: s.Epsilon, Reason: "must be positive"}
	}
	return nil
}

func (s UniformSampling) validate() error {
	if s.Every < 1 {
		return &ConfigError{Strategy: s.Name(), Field: "every", Value: s.Every, Reason: "must be at least 1"}
	}
	return nil
}
