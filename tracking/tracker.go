package tracking

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
	"github.com/theoremus-urban-solutions/trajsquish/simplify"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

// Outcome tells what Observe did with a fix.
type Outcome int

const (
	// Appended means the fix was fed to the active route.
	Appended Outcome = iota
	// Started means the fix opened a new route for its source.
	Started
	// Duplicate means the fix repeated the previous one and was ignored.
	Duplicate
	// Rejected means the fix was out of order.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Appended:
		return "appended"
	case Started:
		return "started"
	case Duplicate:
		return "duplicate"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Config configures a Tracker.
type Config struct {
	Strategies []pipeline.Named
	Kernel     geo.Kernel
	// MaxGap closes a route when its source goes silent for longer. Zero
	// means track.DefaultMaxGap.
	MaxGap time.Duration
	// Registerer receives the tracker metrics; nil leaves them
	// unregistered.
	Registerer prometheus.Registerer
	Logger     *zap.Logger
}

// session is the active route of one source.
type session struct {
	route    track.Route
	raw      int
	sims     []simplify.Simplifier
	last     track.Fix
	openedAt time.Time
}

// Tracker routes live fixes to one set of simplifiers per source. It is
// safe for concurrent use.
type Tracker struct {
	strategies []pipeline.Named
	kernel     geo.Kernel
	maxGap     time.Duration
	log        *zap.Logger
	metrics    *metrics

	mu        sync.Mutex
	sessions  map[string]*session
	completed []pipeline.Result
}

// New validates the strategies and returns an empty tracker.
func New(cfg Config) (*Tracker, error) {
	if len(cfg.Strategies) == 0 {
		return nil, errors.New("tracking: no strategies configured")
	}
	for _, s := range cfg.Strategies {
		if _, err := simplify.New(s.Strategy, cfg.Kernel); err != nil {
			return nil, errors.Wrapf(err, "strategy %q", s.Name)
		}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxGap := cfg.MaxGap
	if maxGap <= 0 {
		maxGap = track.DefaultMaxGap
	}
	return &Tracker{
		strategies: cfg.Strategies,
		kernel:     cfg.Kernel,
		maxGap:     maxGap,
		log:        log,
		metrics:    newMetrics(cfg.Registerer),
		sessions:   map[string]*session{},
	}, nil
}

// Observe feeds f to the active route of its source. Feeds repeat the
// last known position between polls; such repeats are ignored. A fix older
// than the last one is rejected with *simplify.InputOrderError. A silence
// longer than MaxGap completes the current route and starts a new one.
func (t *Tracker) Observe(f track.Fix) (Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[f.Source]
	switch {
	case !ok:
		t.open(f)
		return Started, nil
	case f.SamePosition(s.last):
		t.metrics.rejected.WithLabelValues(reasonDuplicate).Inc()
		return Duplicate, nil
	case f.Time.Before(s.last.Time):
		t.metrics.rejected.WithLabelValues(reasonOutOfOrder).Inc()
		return Rejected, &simplify.InputOrderError{Source: f.Source, Last: s.last.Time, Got: f.Time}
	case f.Time.Sub(s.last.Time) > t.maxGap:
		t.log.Info("route closed after gap",
			zap.String("source", f.Source),
			zap.String("route", s.route.ID),
			zap.Duration("gap", f.Time.Sub(s.last.Time)))
		t.close(f.Source, s)
		t.open(f)
		return Started, nil
	}

	for _, sim := range s.sims {
		if err := sim.Append(f); err != nil {
			// the time check above makes this unreachable
			return Rejected, err
		}
	}
	s.last = f
	s.raw++
	t.metrics.observed.Inc()
	return Appended, nil
}

// Snapshot returns the current simplified trajectories of source, one per
// strategy, or false when the source has no active route.
func (t *Tracker) Snapshot(source string) ([]pipeline.Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[source]
	if !ok {
		return nil, false
	}
	return t.results(s), true
}

// Sources lists the sources with an active route, sorted.
func (t *Tracker) Sources() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, 0, len(t.sessions))
	for src := range t.sessions {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

// Drain returns and forgets the results of routes completed so far.
func (t *Tracker) Drain() []pipeline.Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.completed
	t.completed = nil
	return out
}

// Flush completes every active route and returns all completed results,
// ordered by source.
func (t *Tracker) Flush() []pipeline.Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	sources := make([]string, 0, len(t.sessions))
	for src := range t.sessions {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		t.close(src, t.sessions[src])
	}

	out := t.completed
	t.completed = nil
	return out
}

func (t *Tracker) open(f track.Fix) {
	route := track.NewRoute(f)
	route.Fixes = nil
	s := &session{
		route:    route,
		raw:      1,
		last:     f,
		openedAt: f.Time,
		sims:     make([]simplify.Simplifier, len(t.strategies)),
	}
	for i, named := range t.strategies {
		// validated in New
		s.sims[i] = simplify.MustNew(named.Strategy, t.kernel)
		_ = s.sims[i].Append(f)
	}
	t.sessions[f.Source] = s

	t.metrics.observed.Inc()
	t.metrics.started.Inc()
	t.metrics.active.Set(float64(len(t.sessions)))
	t.log.Debug("route started", zap.String("source", f.Source), zap.String("route", route.ID))
}

func (t *Tracker) close(source string, s *session) {
	t.completed = append(t.completed, t.results(s)...)
	delete(t.sessions, source)
	t.metrics.active.Set(float64(len(t.sessions)))
	t.log.Debug("route completed",
		zap.String("source", source),
		zap.String("route", s.route.ID),
		zap.Int("fixes", s.raw),
		zap.Duration("span", s.last.Time.Sub(s.openedAt)))
}

func (t *Tracker) results(s *session) []pipeline.Result {
	out := make([]pipeline.Result, len(s.sims))
	for i, sim := range s.sims {
		out[i] = pipeline.NewResult(s.route, s.raw, t.strategies[i].Name, sim)
	}
	return out
}
