package tracking

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
	"github.com/theoremus-urban-solutions/trajsquish/simplify"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

var t0 = time.Date(2024, 9, 3, 5, 0, 0, 0, time.UTC)

func newTracker(t *testing.T, reg prometheus.Registerer) *Tracker {
	t.Helper()
	tr, err := New(Config{
		Strategies: []pipeline.Named{
			{Name: "squish", Strategy: simplify.FixedCapacity{Capacity: 4}},
			{Name: "dr", Strategy: simplify.AnchorExtrapolation{Tolerance: 20}},
		},
		MaxGap:     time.Hour,
		Registerer: reg,
		Logger:     zap.NewNop(),
	})
	require.NoError(t, err)
	return tr
}

// drive returns n fixes of source moving north 300 m a minute with a kink
// every fourth fix.
func drive(source string, n int, start time.Time) []track.Fix {
	k := geo.Earth()
	p := geo.FromDegrees(42.70, 23.32)
	out := make([]track.Fix, n)
	for i := range out {
		out[i] = track.NewFix(source, p.Lat, p.Lon, start.Add(time.Duration(i)*time.Minute))
		bearing := 0.0
		if i%4 == 3 {
			bearing = 1.2
		}
		p = k.Predict(p, 300, bearing)
	}
	return out
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			if m.GetGauge() != nil {
				return m.GetGauge().GetValue()
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestNew_Validates(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Strategies: []pipeline.Named{{Name: "bad", Strategy: simplify.Hybrid{Capacity: 1}}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, simplify.ErrInvalidConfig))
}

func TestTracker_ObserveAndSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr := newTracker(t, reg)

	fixes := drive("bus-12", 20, t0)
	for i, f := range fixes {
		outcome, err := tr.Observe(f)
		require.NoError(t, err)
		if i == 0 {
			assert.Equal(t, Started, outcome)
		} else {
			assert.Equal(t, Appended, outcome)
		}
	}

	assert.Equal(t, []string{"bus-12"}, tr.Sources())
	results, ok := tr.Snapshot("bus-12")
	require.True(t, ok)
	require.Len(t, results, 2)

	squish := results[0]
	assert.Equal(t, "squish", squish.Strategy)
	assert.Equal(t, "SQUISH", squish.Algorithm)
	assert.Equal(t, 20, squish.RawCount)
	assert.Len(t, squish.Trajectory, 4)
	assert.Equal(t, fixes[0], squish.Trajectory[0])
	assert.Equal(t, fixes[19], squish.Trajectory[3])
	assert.Equal(t, track.RouteID(fixes[0]), squish.Route.ID)
	assert.Equal(t, "DR", results[1].Algorithm)

	_, ok = tr.Snapshot("nobody")
	assert.False(t, ok)

	assert.Equal(t, 20.0, counterValue(t, reg, "trajsquish_fixes_observed_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "trajsquish_routes_started_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "trajsquish_active_routes", nil))
}

func TestTracker_IgnoresRepeatedPositions(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr := newTracker(t, reg)
	fixes := drive("tram-4", 3, t0)

	for _, f := range fixes[:2] {
		_, err := tr.Observe(f)
		require.NoError(t, err)
	}
	// the next poll reports the same position again with a fresh id
	again := track.NewFix(fixes[1].Source, fixes[1].Lat, fixes[1].Lon, fixes[1].Time)
	outcome, err := tr.Observe(again)
	require.NoError(t, err)
	assert.Equal(t, Duplicate, outcome)

	_, err = tr.Observe(fixes[2])
	require.NoError(t, err)

	results, _ := tr.Snapshot("tram-4")
	assert.Equal(t, 3, results[0].RawCount)
	assert.Equal(t, 1.0, counterValue(t, reg, "trajsquish_fixes_rejected_total", map[string]string{"reason": reasonDuplicate}))
}

func TestTracker_RejectsOutOfOrder(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr := newTracker(t, reg)
	fixes := drive("bus-3", 3, t0)

	_, err := tr.Observe(fixes[2])
	require.NoError(t, err)
	outcome, err := tr.Observe(fixes[1])
	require.Error(t, err)
	assert.Equal(t, Rejected, outcome)
	assert.True(t, errors.Is(err, simplify.ErrInputOrder))
	assert.Equal(t, 1.0, counterValue(t, reg, "trajsquish_fixes_rejected_total", map[string]string{"reason": reasonOutOfOrder}))

	results, _ := tr.Snapshot("bus-3")
	assert.Equal(t, 1, results[0].RawCount)
}

func TestTracker_GapStartsNewRoute(t *testing.T) {
	tr := newTracker(t, nil)
	first := drive("bus-5", 5, t0)
	second := drive("bus-5", 5, t0.Add(3*time.Hour))

	for _, f := range first {
		_, err := tr.Observe(f)
		require.NoError(t, err)
	}
	assert.Empty(t, tr.Drain())

	outcome, err := tr.Observe(second[0])
	require.NoError(t, err)
	assert.Equal(t, Started, outcome)

	done := tr.Drain()
	require.Len(t, done, 2, "one result per strategy")
	assert.Equal(t, track.RouteID(first[0]), done[0].Route.ID)
	assert.Equal(t, 5, done[0].RawCount)
	assert.Equal(t, first[4], done[0].Trajectory[len(done[0].Trajectory)-1])
	assert.Empty(t, tr.Drain(), "drain forgets what it returned")

	current, ok := tr.Snapshot("bus-5")
	require.True(t, ok)
	assert.Equal(t, track.RouteID(second[0]), current[0].Route.ID)
}

func TestTracker_Flush(t *testing.T) {
	tr := newTracker(t, nil)
	for _, src := range []string{"b", "a", "c"} {
		for _, f := range drive(src, 6, t0) {
			_, err := tr.Observe(f)
			require.NoError(t, err)
		}
	}

	results := tr.Flush()
	require.Len(t, results, 6)
	assert.Equal(t, "a", results[0].Route.Source)
	assert.Equal(t, "a", results[1].Route.Source)
	assert.Equal(t, "c", results[5].Route.Source)
	assert.Empty(t, tr.Sources())
	assert.Empty(t, tr.Flush())
}

func TestTracker_ConcurrentSources(t *testing.T) {
	tr := newTracker(t, prometheus.NewRegistry())

	var wg sync.WaitGroup
	for _, src := range []string{"v1", "v2", "v3", "v4"} {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			for _, f := range drive(src, 50, t0) {
				_, err := tr.Observe(f)
				assert.NoError(t, err)
			}
		}(src)
	}
	wg.Wait()

	assert.Equal(t, []string{"v1", "v2", "v3", "v4"}, tr.Sources())
	for _, src := range tr.Sources() {
		results, ok := tr.Snapshot(src)
		require.True(t, ok)
		assert.Equal(t, 50, results[0].RawCount)
		assert.Len(t, results[0].Trajectory, 4)
	}
}
