package gtfsrt

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trajsquish/track"
	"github.com/theoremus-urban-solutions/trajsquish/tracking"
)

// Observer receives decoded fixes.
type Observer interface {
	Observe(f track.Fix) (tracking.Outcome, error)
}

// Fetcher retrieves raw feed bytes. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Poller periodically fetches a VehiclePositions feed and hands its fixes
// to Sink. Messages whose header is not newer than the last processed one
// are skipped.
type Poller struct {
	Client   Fetcher
	URL      string
	Interval time.Duration
	Sink     Observer
	Logger   *zap.Logger

	lastHeader atomic.Int64
}

// PollStats summarises one poll.
type PollStats struct {
	Fixes     int
	Appended  int
	Started   int
	Duplicate int
	Rejected  int
	Skipped   int
	Stale     bool
}

// Run polls until ctx is done. Fetch and decode failures are logged and the
// next tick is awaited. Run returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	if p.Interval <= 0 {
		return errors.New("poll interval must be positive")
	}
	log := p.logger()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		stats, err := p.Poll(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			log.Warn("poll failed", zap.String("url", p.URL), zap.Error(err))
		case stats.Stale:
			log.Debug("feed not updated", zap.String("url", p.URL), zap.Time("header", p.LastHeader()))
		default:
			log.Info("feed processed",
				zap.String("url", p.URL),
				zap.Int("fixes", stats.Fixes),
				zap.Int("appended", stats.Appended),
				zap.Int("started", stats.Started),
				zap.Int("duplicate", stats.Duplicate),
				zap.Int("rejected", stats.Rejected),
				zap.Int("skipped", stats.Skipped))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll fetches and processes the feed once.
func (p *Poller) Poll(ctx context.Context) (PollStats, error) {
	data, err := p.Client.Fetch(ctx, p.URL)
	if err != nil {
		return PollStats{}, err
	}
	snap, err := Decode(data)
	if err != nil {
		return PollStats{}, errors.Wrapf(err, "decode %s", p.URL)
	}

	if !snap.Timestamp.IsZero() {
		if !snap.Timestamp.After(p.LastHeader()) {
			return PollStats{Stale: true}, nil
		}
		p.lastHeader.Store(snap.Timestamp.Unix())
	}

	stats := PollStats{Fixes: len(snap.Fixes), Skipped: snap.Skipped}
	for _, f := range snap.Fixes {
		outcome, err := p.Sink.Observe(f)
		if err != nil {
			stats.Rejected++
			p.logger().Debug("fix rejected", zap.String("source", f.Source), zap.Error(err))
			continue
		}
		switch outcome {
		case tracking.Appended:
			stats.Appended++
		case tracking.Started:
			stats.Started++
		case tracking.Duplicate:
			stats.Duplicate++
		}
	}
	return stats, nil
}

// LastHeader returns the header time of the last processed message, or the
// zero time before the first one. It is safe to call while Run is active.
func (p *Poller) LastHeader() time.Time {
	sec := p.lastHeader.Load()
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func (p *Poller) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
