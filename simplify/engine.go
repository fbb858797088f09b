package simplify

import (
	"math"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/pqueue"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

var pinned = math.Inf(1)

type retained struct {
	fix track.Fix
	// inherited is the largest score of any fix evicted next to this one.
	inherited float64
}

// scorer rates how safely cur can be dropped given its retained neighbours.
type scorer func(prev, cur, next retained) float64

// engine is the priority-driven retained set shared by the SQUISH family.
// The endpoints are pinned at +Inf; interior fixes carry their score.
type engine struct {
	name   string
	kernel geo.Kernel
	queue  *pqueue.Queue[retained]
	guard  orderGuard
	score  scorer
	// inherit propagates evicted scores into the survivors.
	inherit bool
	// reduce runs after every append and evicts as the policy requires.
	reduce func(e *engine)
	// ingested counts every accepted fix.
	ingested int
}

func newEngine(name string, k geo.Kernel, score scorer) *engine {
	return &engine{
		name:   name,
		kernel: k,
		queue:  pqueue.New[retained](),
		score:  score,
		reduce: func(*engine) {},
	}
}

func (e *engine) Name() string { return e.name }

func (e *engine) Len() int { return e.queue.Len() }

func (e *engine) Append(f track.Fix) error {
	if err := e.guard.check(f); err != nil {
		return err
	}
	e.guard.accept(f)
	e.ingested++

	prevTail := e.queue.Tail()
	e.queue.Push(retained{fix: f}, pinned)
	if prevTail != pqueue.None && e.queue.Prev(prevTail) != pqueue.None {
		// The former last fix just became interior.
		e.rescore(prevTail)
	}
	e.reduce(e)
	return nil
}

func (e *engine) Trajectory() []track.Fix {
	values := e.queue.Values()
	out := make([]track.Fix, len(values))
	for i, v := range values {
		out[i] = v.fix
	}
	return out
}

func (e *engine) rescore(id pqueue.ID) {
	prev, next := e.queue.Prev(id), e.queue.Next(id)
	if prev == pqueue.None || next == pqueue.None {
		return
	}
	e.queue.Update(id, e.score(e.queue.Value(prev), e.queue.Value(id), e.queue.Value(next)))
}

// evictMin drops the lowest scored interior fix and rescores the two fixes
// that became adjacent.
func (e *engine) evictMin() {
	x := e.queue.ExtractMin()
	if e.inherit {
		for _, id := range []pqueue.ID{x.Prev, x.Next} {
			r := e.queue.Ptr(id)
			r.inherited = math.Max(r.inherited, x.Priority)
		}
	}
	e.rescore(x.Prev)
	e.rescore(x.Next)
}

// minScore is the lowest interior score, +Inf when there is none.
func (e *engine) minScore() float64 {
	return e.queue.PeekMinPriority()
}
