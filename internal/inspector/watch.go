package inspector

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mizuki-h/aws-log-lens/internal/model"
)

const (
	// DefaultInterval is the pause between watch cycles.
	DefaultInterval = 10 * time.Second
	// DefaultBackoff is the longer pause used when no log groups
	// exist yet (infrastructure not ready).
	DefaultBackoff = 30 * time.Second
	// countdownTick bounds how long a cancellation can go unnoticed
	// while waiting between cycles.
	countdownTick = time.Second
)

// GroupSource supplies the current log-group registry. It is consulted
// every cycle so groups appearing after startup are picked up.
type GroupSource func(ctx context.Context) ([]model.LogGroupInfo, error)

// Render is the presentation step invoked with every completed cycle's
// results, before the next countdown begins.
type Render func(results []model.GroupResult)

// WatchOptions tune the watch loop. Zero values use the defaults.
type WatchOptions struct {
	Interval time.Duration
	Backoff  time.Duration
}

// Watch repeats fetch cycles until the context is cancelled. A cycle
// that finds no log groups at all waits out the backoff and retries
// discovery instead of terminating. Results of a finished cycle are
// always rendered before the countdown, so cancellation during the
// countdown never discards them. The first cycle uses the relative
// window; later cycles start from the cached cursors.
func (in *Inspector) Watch(ctx context.Context, source GroupSource, opts WatchOptions, render Render) error {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}

	for {
		groups, err := source(ctx)
		if err != nil || len(groups) == 0 {
			in.logger.Warn("no log groups available, retrying after backoff",
				zap.Duration("backoff", backoff), zap.Error(err))
			if err := in.countdown(ctx, backoff); err != nil {
				return err
			}
			continue
		}

		results, err := in.FetchAll(ctx, groups)
		if err != nil {
			// Only ErrNoLogGroups reaches here; treat it like the
			// not-ready case above.
			if err := in.countdown(ctx, backoff); err != nil {
				return err
			}
			continue
		}
		render(results)
		in.SetIncremental(true)

		if err := in.countdown(ctx, interval); err != nil {
			return err
		}
	}
}

// countdown sleeps for d in short ticks, checking for cancellation at
// every tick boundary.
func (in *Inspector) countdown(ctx context.Context, d time.Duration) error {
	for remaining := d; remaining > 0; remaining -= countdownTick {
		step := countdownTick
		if remaining < step {
			step = remaining
		}
		timer := time.NewTimer(step)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
