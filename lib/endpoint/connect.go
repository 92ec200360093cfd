// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/projectagentis/agentis/lib/clock"
)

// ErrRetriesExhausted is wrapped (together with the last dial error)
// when every connection attempt has failed.
var ErrRetriesExhausted = errors.New("connection attempts exhausted")

// RetryPolicy bounds connection establishment.
type RetryPolicy struct {
	// MaxAttempts is the total number of dial attempts, including the
	// first. Values below 1 are treated as 1.
	MaxAttempts int

	// Delay is the fixed pause between consecutive attempts.
	Delay time.Duration
}

// DefaultRetryPolicy allows five attempts one second apart, enough for
// an application that is still starting up.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, Delay: time.Second}
}

// Dialer connects to an endpoint, retrying on failure according to
// Policy.
type Dialer struct {
	Policy RetryPolicy

	// Clock times the pause between attempts. Nil means clock.Real().
	Clock clock.Clock

	// Logger receives one warning per failed attempt. Nil means
	// slog.Default().
	Logger *slog.Logger

	// dial is replaced in tests to count attempts.
	dial func(context.Context, Endpoint) (net.Conn, error)
}

// Connect dials target until it succeeds or Policy.MaxAttempts dials
// have failed. On exhaustion the returned error wraps both
// ErrRetriesExhausted and the last dial error. Cancelling ctx abandons
// the wait between attempts.
func (d *Dialer) Connect(ctx context.Context, target Endpoint) (net.Conn, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := d.Clock
	if clk == nil {
		clk = clock.Real()
	}
	dial := d.dial
	if dial == nil {
		dial = Dial
	}
	maxAttempts := d.Policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		connection, err := dial(ctx, target)
		if err == nil {
			if attempt > 1 {
				logger.Info("connected after retry",
					"endpoint", target.Address,
					"attempt", attempt,
				)
			}
			return connection, nil
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("connecting to %s: %w", target, ctx.Err())
		}

		if attempt >= maxAttempts {
			logger.Error("max connection attempts reached",
				"endpoint", target.Address,
				"attempts", attempt,
				"error", err,
			)
			return nil, fmt.Errorf("connecting to %s after %d attempts: %w: %w", target, attempt, ErrRetriesExhausted, err)
		}

		logger.Warn("connection attempt failed, retrying",
			"endpoint", target.Address,
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"retry_delay", d.Policy.Delay,
			"error", err,
		)

		select {
		case <-clk.After(d.Policy.Delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("connecting to %s: %w", target, ctx.Err())
		}
	}
}
