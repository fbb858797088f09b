package config

import (
	"bytes"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/trajsquish/geo"
	"github.com/theoremus-urban-solutions/trajsquish/pipeline"
	"github.com/theoremus-urban-solutions/trajsquish/simplify"
	"github.com/theoremus-urban-solutions/trajsquish/track"
)

const (
	defaultReadInterval = 30 * time.Second
	defaultTimeout      = 10 * time.Second
)

// DefaultPaths are tried in order when Load is given no path.
var DefaultPaths = []string{"config.yml", "./configs/config.yml"}

// Load reads and validates the configuration at path, or at the first of
// DefaultPaths that exists when path is empty.
func Load(path string) (*AppConfig, error) {
	paths := DefaultPaths
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration. Unknown keys are
// rejected.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if cfg.Earth.Model == "" {
		cfg.Earth.Model = "sphere"
	}
	if cfg.Earth.Radius == 0 {
		cfg.Earth.Radius = geo.EarthRadiusMeters
	}
	if cfg.Segmentation.MaxGap == 0 {
		cfg.Segmentation.MaxGap = track.DefaultMaxGap
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	if cfg.Segmentation.MaxGap < 0 {
		return nil, errors.Errorf("segmentation.maxGap must not be negative, got %s", cfg.Segmentation.MaxGap)
	}
	// strategy parameters get the same range checks as at run time
	for _, s := range cfg.Strategies {
		if _, err := simplify.New(s.Strategy(), nil); err != nil {
			return nil, errors.Wrapf(err, "strategy %q", s.Name)
		}
	}
	return &cfg, nil
}

// Kernel returns the configured geometry kernel.
func (c *AppConfig) Kernel() geo.Kernel {
	if c.Earth.Model == "wgs84" {
		return geo.NewEllipsoid(geo.WGS84())
	}
	return geo.Sphere{Radius: c.Earth.Radius}
}

// NamedStrategies returns the configured strategies under their names.
func (c *AppConfig) NamedStrategies() []pipeline.Named {
	out := make([]pipeline.Named, len(c.Strategies))
	for i, s := range c.Strategies {
		out[i] = pipeline.Named{Name: s.Name, Strategy: s.Strategy()}
	}
	return out
}

// SelectFeed chooses a feed by name; an empty name selects the first one.
func (c *AppConfig) SelectFeed(name string) (FeedConfig, error) {
	if name == "" {
		if len(c.Feeds) == 0 {
			return FeedConfig{}, errors.New("no feeds configured")
		}
		return c.Feeds[0], nil
	}
	for _, f := range c.Feeds {
		if f.Name == name {
			return f, nil
		}
	}
	return FeedConfig{}, errors.Errorf("feed %q not configured", name)
}

// Strategy converts the entry to a simplify.Strategy.
func (s StrategyConfig) Strategy() simplify.Strategy {
	switch s.Kind {
	case "fixed-capacity":
		return simplify.FixedCapacity{Capacity: s.Capacity}
	case "error-bounded":
		return simplify.ErrorBounded{LowerCompressionRate: s.LowerCompressionRate, UpperErrorBound: s.UpperErrorBound}
	case "anchor-extrapolation":
		return simplify.AnchorExtrapolation{Tolerance: s.Tolerance}
	case "hybrid":
		return simplify.Hybrid{Capacity: s.Capacity}
	case "batch":
		return simplify.Batch{Epsilon: s.Epsilon}
	case "uniform-sampling":
		return simplify.UniformSampling{Every: s.Every}
	}
	return nil
}

// Interval is the polling period of the feed.
func (f FeedConfig) Interval() time.Duration {
	if f.ReadIntervalMS <= 0 {
		return defaultReadInterval
	}
	return time.Duration(f.ReadIntervalMS) * time.Millisecond
}

// Timeout bounds a single feed request.
func (f FeedConfig) Timeout() time.Duration {
	if f.TimeoutMS <= 0 {
		return defaultTimeout
	}
	return time.Duration(f.TimeoutMS) * time.Millisecond
}
