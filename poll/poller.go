// Package poll drives a single long-running provider operation from submitted
// to a terminal state: completed, failed, or timed out.
//
// The poller issues one status request per tick at a fixed interval, under a
// wall-clock deadline. Transport-level failures on a tick are swallowed and
// retried at the next tick; the deadline keeps running, so a provider that is
// unreachable for the whole window surfaces as a timeout. Waits between ticks
// are blocking selects, never busy-loops, and abort promptly when the caller's
// context is cancelled.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/mediaforge/mediaforge"
)

const (
	// DefaultInterval is the delay between consecutive status requests.
	DefaultInterval = 10 * time.Second

	// DefaultTimeout is the wall-clock budget for one operation, measured
	// from submission.
	DefaultTimeout = 10 * time.Minute
)

// Config parameterizes the poll loop for one operation.
type Config struct {
	// Interval between status requests. Zero means DefaultInterval.
	Interval time.Duration

	// Timeout is the wall-clock deadline relative to the start of the wait.
	// Zero means DefaultTimeout.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// CheckFunc issues a single status request for an operation.
//
// The three return shapes map to the status contract:
//   - done=false, err!=nil: transport-level failure, swallowed and re-polled
//   - done=false, err=nil: operation still running
//   - done=true, err!=nil: operation finished with a provider error, terminal
//   - done=true, err=nil: operation completed, result is valid
type CheckFunc[T any] func(ctx context.Context) (result T, done bool, err error)

// Wait polls check until the operation reaches a terminal state or the
// deadline passes. It issues at most one status request per tick and never
// issues a request after the deadline. On timeout the returned error wraps
// mediaforge.ErrTimedOut.
func Wait[T any](ctx context.Context, cfg Config, check CheckFunc[T]) (T, error) {
	var zero T
	cfg = cfg.withDefaults()
	deadline := time.Now().Add(cfg.Timeout)

	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if !time.Now().Before(deadline) {
			return zero, fmt.Errorf("no completion after %s: %w", cfg.Timeout, mediaforge.ErrTimedOut)
		}

		result, done, err := check(ctx)
		if done {
			if err != nil {
				return zero, err
			}
			return result, nil
		}
		// err here is a transport failure on the status request; it is
		// deliberately dropped and the operation is re-polled. The caller's
		// check logs it if anyone cares.

		sleep := cfg.Interval
		if remaining := time.Until(deadline); remaining < sleep {
			// Wake at the deadline so the loop reports the timeout instead of
			// issuing a late request.
			sleep = remaining
		}
		if sleep < 0 {
			sleep = 0
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
