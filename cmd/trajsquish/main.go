package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trajsquish/config"
	"github.com/theoremus-urban-solutions/trajsquish/formatter"
	"github.com/theoremus-urban-solutions/trajsquish/internal/logging"
	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
)

var (
	configPath string
	logLevel   string
	outFormat  string
	outPath    string
	producer   string
	onlySource string
	onlyStrat  string
)

var rootCmd = &cobra.Command{
	Use:   "trajsquish",
	Short: "Compress vehicle trajectories from GTFS-Realtime feeds",
	Long: `trajsquish reduces vehicle position streams to a few representative fixes
per route using SQUISH, SQUISH-E, dead reckoning or Douglas-Peucker.

Recorded VehiclePositions messages can be replayed with "replay"; a live feed
is followed with "watch".`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default config.yml or ./configs/config.yml)")
	pf.StringVar(&logLevel, "log-level", "", "override logging.level (debug|info|warn|error)")
	pf.StringVarP(&outFormat, "format", "f", "json", "output format: json|geojson|kml|polyline")
	pf.StringVarP(&outPath, "out", "o", "", "write output to this file instead of stdout")
	pf.StringVar(&producer, "producer", "", "producer reference stamped on json output")
	pf.StringVar(&onlySource, "source", "", "only emit trajectories of this source")
	pf.StringVar(&onlyStrat, "strategy", "", "only emit trajectories of this strategy name")

	rootCmd.AddCommand(replayCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger shared by all subcommands.
func setup() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	log, err := logging.New(level, cfg.Logging.Development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func outputFormat() (formatter.Format, error) {
	return formatter.ParseFormat(outFormat)
}

// emit writes results to --out or stdout in the selected format.
func emit(cmd *cobra.Command, f formatter.Format, results []pipeline.Result, opts formatter.Options) error {
	results = formatter.FilterResults(results, onlySource, onlyStrat)

	w := cmd.OutOrStdout()
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer func() { _ = file.Close() }()
		w = file
	}
	return formatter.Write(w, f, results, opts)
}
