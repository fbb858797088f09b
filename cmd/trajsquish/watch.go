package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trajsquish/formatter"
	"github.com/theoremus-urban-solutions/trajsquish/gtfsrt"
	"github.com/theoremus-urban-solutions/trajsquish/tracking"
)

var (
	feedName    string
	metricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a live VehiclePositions feed",
	Long: `watch polls a configured GTFS-Realtime VehiclePositions feed and compresses
every vehicle's route as fixes arrive. On SIGINT or SIGTERM all open routes
are closed and their trajectories are written out.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&feedName, "feed", "", "feed name from config feeds[] (default first)")
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address, e.g. :9090")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	format, err := outputFormat()
	if err != nil {
		return err
	}
	feed, err := cfg.SelectFeed(feedName)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tracker, err := tracking.New(tracking.Config{
		Strategies: cfg.NamedStrategies(),
		Kernel:     cfg.Kernel(),
		MaxGap:     cfg.Segmentation.MaxGap,
		Registerer: reg,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := &gtfsrt.Poller{
		Client:   gtfsrt.NewClient(feed.Timeout()),
		URL:      feed.VehiclePositionsURL,
		Interval: feed.Interval(),
		Sink:     tracker,
		Logger:   log,
	}

	if metricsAddr != "" {
		srv := newStatusServer(metricsAddr, reg, poller)
		go func() {
			if err := srv.listen(); err != nil {
				log.Error("status server failed", zap.Error(err))
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.shutdown(shutdownCtx); err != nil {
				log.Warn("status server shutdown", zap.Error(err))
			}
		}()
		log.Info("status server listening", zap.String("addr", metricsAddr))
	}

	log.Info("watching feed",
		zap.String("feed", feed.Name),
		zap.String("url", feed.VehiclePositionsURL),
		zap.Duration("interval", feed.Interval()))

	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("shutdown signal received")

	results := tracker.Flush()
	log.Info("routes flushed", zap.Int("results", len(results)))
	return emit(cmd, format, results, formatter.Options{Producer: producerFor(feed.Name), GeneratedAt: time.Now()})
}

func producerFor(feed string) string {
	if producer != "" {
		return producer
	}
	return feed
}
