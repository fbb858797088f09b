package pipeline

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/simplify"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// Named is a strategy under a user-chosen name.
type Named struct {
	Name     string
	Strategy simplify.Strategy
}

// Options configures Run.
type Options struct {
	// MaxGap splits a source's fixes into routes. Zero means
	// track.DefaultMaxGap.
	MaxGap time.Duration
	// Strategies are run on every route.
	Strategies []Named
	// Kernel is the earth model; nil means the mean-radius sphere.
	Kernel geo.Kernel
	// Parallelism bounds the number of simplifiers running at once. Zero
	// means GOMAXPROCS.
	Parallelism int
	Logger      *zap.Logger
}

// Result is one simplified route.
type Result struct {
	Route      track.Route
	Strategy   string
	Algorithm  string
	RawCount   int
	Trajectory []track.Fix
	// CompressionRatio is RawCount divided by the retained count.
	CompressionRatio float64
}

// NewResult captures the current trajectory of sim for a route of rawCount
// fixes.
func NewResult(route track.Route, rawCount int, strategy string, sim simplify.Simplifier) Result {
	traj := sim.Trajectory()
	var ratio float64
	if len(traj) > 0 {
		ratio = float64(rawCount) / float64(len(traj))
	}
	return Result{
		Route:            route,
		Strategy:         strategy,
		Algorithm:        sim.Name(),
		RawCount:         rawCount,
		Trajectory:       traj,
		CompressionRatio: ratio,
	}
}

// Run segments fixes into routes and simplifies every route with every
// strategy. Results are ordered by route, then by strategy order.
func Run(ctx context.Context, fixes []track.Fix, opts Options) ([]Result, error) {
	if len(opts.Strategies) == 0 {
		return nil, errors.New("pipeline: no strategies configured")
	}
	for _, s := range opts.Strategies {
		if _, err := simplify.New(s.Strategy, opts.Kernel); err != nil {
			return nil, errors.Wrapf(err, "strategy %q", s.Name)
		}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxGap := opts.MaxGap
	if maxGap <= 0 {
		maxGap = track.DefaultMaxGap
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	routes := track.Segment(fixes, maxGap)
	log.Debug("segmented fixes",
		zap.Int("fixes", len(fixes)),
		zap.Int("routes", len(routes)),
		zap.Duration("max_gap", maxGap))

	results := make([]Result, len(routes)*len(opts.Strategies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

schedule:
	for ri, route := range routes {
		for si, named := range opts.Strategies {
			if gctx.Err() != nil {
				break schedule
			}
			slot := ri*len(opts.Strategies) + si
			route, named := route, named
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := simplifyRoute(route, named, opts.Kernel)
				if err != nil {
					return err
				}
				results[slot] = res
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func simplifyRoute(route track.Route, named Named, k geo.Kernel) (Result, error) {
	sim, err := simplify.New(named.Strategy, k)
	if err != nil {
		return Result{}, errors.Wrapf(err, "strategy %q", named.Name)
	}
	for _, f := range route.Fixes {
		if err := sim.Append(f); err != nil {
			return Result{}, errors.Wrapf(err, "route %s", route.ID)
		}
	}
	return NewResult(route, len(route.Fixes), named.Name, sim), nil
}
