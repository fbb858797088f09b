package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthResponse struct {
	Status                  string `json:"status"`
	LatestGTFSRealtimeEpoch int64  `json:"latest_gtfsrt_epoch"`
}

type headerSource interface {
	LastHeader() time.Time
}

// statusServer exposes Prometheus metrics and a health probe while watch runs.
type statusServer struct {
	server *http.Server
}

func newStatusServer(addr string, g prometheus.Gatherer, feed headerSource) *statusServer {
	return &statusServer{server: &http.Server{
		Addr:              addr,
		Handler:           statusMux(g, feed),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}}
}

func statusMux(g prometheus.Gatherer, feed headerSource) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		resp := healthResponse{Status: "ok"}
		if ts := feed.LastHeader(); !ts.IsZero() {
			resp.LatestGTFSRealtimeEpoch = ts.Unix()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

// listen blocks until the server stops; a graceful shutdown is not an error.
func (s *statusServer) listen() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *statusServer) shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
