package simplify

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInputOrder matches every *InputOrderError.
	ErrInputOrder = errors.New("fix is older than the last appended fix")
	// ErrInvalidConfig matches every *ConfigError.
	ErrInvalidConfig = errors.New("invalid strategy configuration")
)

// InputOrderError is returned by Append when a fix is timestamped before
// the previously appended one. The simplifier state is left unchanged.
type InputOrderError struct {
	Source string
	Last   time.Time
	Got    time.Time
}

func (e *InputOrderError) Error() string {
	return fmt.Sprintf("%s: fix at %s precedes last fix at %s",
		e.Source, e.Got.UTC().Format(time.RFC3339Nano), e.Last.UTC().Format(time.RFC3339Nano))
}

func (e *InputOrderError) Is(target error) bool { return target == ErrInputOrder }

// ConfigError reports a strategy parameter outside its valid range.
type ConfigError struct {
	Strategy string
	Field    string
	Value    any
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", e.Strategy, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }
