package tracking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	reasonDuplicate  = "duplicate"
	reasonOutOfOrder = "out_of_order"
)

type metrics struct {
	observed prometheus.Counter
	rejected *prometheus.CounterVec
	started  prometheus.Counter
	active   prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		observed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "trajsquish",
			Name:      "fixes_observed_total",
			Help:      "Fixes fed to a route.",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trajsquish",
			Name:      "fixes_rejected_total",
			Help:      "Fixes not fed to a route, by reason.",
		}, []string{"reason"}),
		started: f.NewCounter(prometheus.CounterOpts{
			Namespace: "trajsquish",
			Name:      "routes_started_total",
			Help:      "Routes opened.",
		}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "trajsquish",
			Name:      "active_routes",
			Help:      "Sources with an open route.",
		}),
	}
}
