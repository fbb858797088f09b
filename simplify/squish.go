package simplify

import (
	"math"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
)

func newFixedCapacity(s FixedCapacity, k geo.Kernel) *engine {
	e := newEngine(s.Name(), k, func(prev, cur, next retained) float64 {
		return math.Abs(k.CrossTrack(prev.fix.Point(), next.fix.Point(), cur.fix.Point()))
	})
	e.reduce = capacityReducer(s.Capacity)
	return e
}

func newHybrid(s Hybrid, k geo.Kernel) *engine {
	e := newEngine(s.Name(), k, func(prev, cur, next retained) float64 {
		return Reckon(prev.fix, next.fix, cur.fix, k)
	})
	e.reduce = capacityReducer(s.Capacity)
	return e
}

func capacityReducer(capacity int) func(*engine) {
	return func(e *engine) {
		if e.queue.Len() > capacity {
			e.evictMin()
		}
	}
}
