package simplify

import (
	"math"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// DouglasPeucker keeps the fix farthest from the arc through a segment's
// endpoints whenever that distance exceeds epsilon meters, and splits the
// segment there. Segments of at most two fixes are returned unchanged. The
// input is not modified.
func DouglasPeucker(fixes []track.Fix, epsilon float64, k geo.Kernel) []track.Fix {
	if len(fixes) <= 2 {
		return append([]track.Fix(nil), fixes...)
	}

	keep := make([]bool, len(fixes))
	keep[0], keep[len(fixes)-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, len(fixes) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}

		a, b := fixes[s.lo].Point(), fixes[s.hi].Point()
		farthest, maxDist := -1, 0.0
		for i := s.lo + 1; i < s.hi; i++ {
			if d := math.Abs(k.CrossTrack(a, b, fixes[i].Point())); d > maxDist {
				farthest, maxDist = i, d
			}
		}
		if farthest < 0 || maxDist <= epsilon {
			continue
		}
		keep[farthest] = true
		stack = append(stack, span{farthest, s.hi}, span{s.lo, farthest})
	}

	out := make([]track.Fix, 0, len(fixes))
	for i, f := range fixes {
		if keep[i] {
			out = append(out, f)
		}
	}
	return out
}

// batch buffers the route and runs Douglas-Peucker when the trajectory is
// read.
type batch struct {
	epsilon float64
	kernel  geo.Kernel
	guard   orderGuard
	fixes   []track.Fix
	cached  []track.Fix
}

func newBatch(s Batch, k geo.Kernel) *batch {
	return &batch{epsilon: s.Epsilon, kernel: k}
}

func (b *batch) Name() string { return Batch{}.Name() }

func (b *batch) Append(f track.Fix) error {
	if err := b.guard.check(f); err != nil {
		return err
	}
	b.guard.accept(f)
	b.fixes = append(b.fixes, f)
	b.cached = nil
	return nil
}

func (b *batch) Trajectory() []track.Fix {
	if b.cached == nil {
		b.cached = DouglasPeucker(b.fixes, b.epsilon, b.kernel)
	}
	return append([]track.Fix(nil), b.cached...)
}

func (b *batch) Len() int { return len(b.Trajectory()) }
