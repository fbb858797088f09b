package simplify

import (
	"math"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
)

const initialErrorBoundedCapacity = 4

// newErrorBounded scores a fix by its inherited error plus the distance to
// whichever neighbour is nearer in time, the successor winning ties.
func newErrorBounded(s ErrorBounded, k geo.Kernel) *engine {
	e := newEngine(s.Name(), k, func(prev, cur, next retained) float64 {
		nearer := next
		if cur.fix.Time.Sub(prev.fix.Time) < next.fix.Time.Sub(cur.fix.Time) {
			nearer = prev
		}
		return cur.inherited + k.Distance(cur.fix.Point(), nearer.fix.Point())
	})
	e.inherit = true

	capacity := initialErrorBoundedCapacity
	e.reduce = func(e *engine) {
		if grown := int(math.Floor(float64(e.ingested)/s.LowerCompressionRate)) + 1; grown > capacity {
			capacity = grown
		}
		if e.queue.Len() > capacity {
			e.evictMin()
		}
		for e.minScore() <= s.UpperErrorBound {
			e.evictMin()
		}
	}
	return e
}
