package simplify

import (
	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// Simplifier consumes the fixes of one route in time order and maintains a
// simplified trajectory. Implementations are not safe for concurrent use;
// distinct instances share no state.
type Simplifier interface {
	// Name is the algorithm name of the strategy.
	Name() string
	// Append ingests the next fix. A fix older than the previous one is
	// rejected with *InputOrderError and leaves the state unchanged.
	Append(f track.Fix) error
	// Trajectory returns the retained fixes in time order. The first and
	// last appended fixes are always included.
	Trajectory() []track.Fix
	// Len is the number of retained fixes.
	Len() int
}

// New returns a Simplifier for s. A nil kernel selects the spherical earth.
func New(s Strategy, k geo.Kernel) (Simplifier, error) {
	if s == nil {
		return nil, &ConfigError{Strategy: "<nil>", Field: "strategy", Value: nil, Reason: "is required"}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	if k == nil {
		k = geo.Earth()
	}

	switch s := s.(type) {
	case FixedCapacity:
		return newFixedCapacity(s, k), nil
	case ErrorBounded:
		return newErrorBounded(s, k), nil
	case AnchorExtrapolation:
		return newAnchorExtrapolation(s, k), nil
	case Hybrid:
		return newHybrid(s, k), nil
	case Batch:
		return newBatch(s, k), nil
	case UniformSampling:
		return newUniform(s), nil
	}
	return nil, &ConfigError{Strategy: s.Name(), Field: "strategy", Value: s, Reason: "is not supported"}
}

// MustNew is New for statically known strategies.
func MustNew(s Strategy, k geo.Kernel) Simplifier {
	sim, err := New(s, k)
	if err != nil {
		panic(err)
	}
	return sim
}

// orderGuard rejects fixes that go back in time.
type orderGuard struct {
	last track.Fix
	seen bool
}

func (g *orderGuard) check(f track.Fix) error {
	if g.seen && f.Time.Before(g.last.Time) {
		return &InputOrderError{Source: f.Source, Last: g.last.Time, Got: f.Time}
	}
	return nil
}

func (g *orderGuard) accept(f track.Fix) {
	g.last, g.seen = f, true
}
