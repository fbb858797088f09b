package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trajsquish/formatter"
	"github.com/theoremus-urban-solutions/trajsquish/gtfsrt"
	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

var replayTimeout time.Duration

var replayCmd = &cobra.Command{
	Use:   "replay FEED...",
	Short: "Simplify recorded VehiclePositions messages",
	Long: `replay decodes one or more GTFS-Realtime VehiclePositions messages, given as
local files or http(s) URLs, segments their fixes into routes and runs every
configured strategy over each route.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().DurationVar(&replayTimeout, "timeout", 10*time.Second, "per-request timeout for URL arguments")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	format, err := outputFormat()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	f := newFetcher(gtfsrt.NewClient(replayTimeout))

	var fixes []track.Fix
	for _, arg := range args {
		data, err := f.fetch(ctx, arg)
		if err != nil {
			return errors.Wrapf(err, "load %s", arg)
		}
		snap, err := gtfsrt.Decode(data)
		if err != nil {
			return errors.Wrapf(err, "decode %s", arg)
		}
		log.Debug("feed decoded",
			zap.String("feed", arg),
			zap.Int("fixes", len(snap.Fixes)),
			zap.Int("skipped", snap.Skipped))
		fixes = append(fixes, snap.Fixes...)
	}
	fixes = dedupe(fixes)

	results, err := pipeline.Run(ctx, fixes, pipeline.Options{
		MaxGap:      cfg.Segmentation.MaxGap,
		Strategies:  cfg.NamedStrategies(),
		Kernel:      cfg.Kernel(),
		Parallelism: cfg.Pipeline.Parallelism,
		Logger:      log,
	})
	if err != nil {
		return err
	}
	log.Info("replay finished",
		zap.Int("feeds", len(args)),
		zap.Int("fixes", len(fixes)),
		zap.Int("results", len(results)))

	return emit(cmd, format, results, formatter.Options{Producer: producer, GeneratedAt: time.Now()})
}

type fixKey struct {
	source   string
	unix     int64
	lat, lon float64
}

// dedupe drops repeated reports of the same position at the same time by the
// same source, which consecutive recorded messages usually contain.
func dedupe(fixes []track.Fix) []track.Fix {
	seen := make(map[fixKey]struct{}, len(fixes))
	out := fixes[:0]
	for _, f := range fixes {
		k := fixKey{source: f.Source, unix: f.Time.UnixNano(), lat: f.Lat, lon: f.Lon}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}
