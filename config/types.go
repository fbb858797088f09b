package config

import "time"

// EarthConfig selects the geometry kernel.
type EarthConfig struct {
	// Model is sphere (default) or wgs84.
	Model  string  `yaml:"model" validate:"omitempty,oneof=sphere wgs84"`
	Radius float64 `yaml:"radius" validate:"gte=0"`
}

// SegmentationConfig controls how fixes are cut into routes.
type SegmentationConfig struct {
	MaxGap time.Duration `yaml:"maxGap"`
}

// StrategyConfig describes one named simplification strategy. Only the
// parameters of its kind are read.
type StrategyConfig struct {
	Name                 string  `yaml:"name" validate:"required"`
	Kind                 string  `yaml:"kind" validate:"required,oneof=fixed-capacity error-bounded anchor-extrapolation hybrid batch uniform-sampling"`
	Capacity             int     `yaml:"capacity" validate:"gte=0"`
	LowerCompressionRate float64 `yaml:"lowerCompressionRate" validate:"gte=0"`
	UpperErrorBound      float64 `yaml:"upperErrorBound" validate:"gte=0"`
	Tolerance            float64 `yaml:"tolerance" validate:"gte=0"`
	Epsilon              float64 `yaml:"epsilon" validate:"gte=0"`
	Every                int     `yaml:"every" validate:"gte=0"`
}

// FeedConfig contains GTFS-Realtime feed configuration
type FeedConfig struct {
	Name                string `yaml:"name" validate:"required"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"required,url"`
	ReadIntervalMS      int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// PipelineConfig contains batch run settings
type PipelineConfig struct {
	Parallelism int `yaml:"parallelism" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Earth        EarthConfig        `yaml:"earth"`
	Segmentation SegmentationConfig `yaml:"segmentation"`
	Strategies   []StrategyConfig   `yaml:"strategies" validate:"required,min=1,unique=Name,dive"`
	Feeds        []FeedConfig       `yaml:"feeds" validate:"unique=Name,dive"`
	Logging      LoggingConfig      `yaml:"logging"`
	Pipeline     PipelineConfig     `yaml:"pipeline"`
}
