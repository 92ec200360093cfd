// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/projectagentis/agentis/lib/clock"
	"github.com/projectagentis/agentis/lib/netutil"
)

// DefaultQueueCapacity is the per-direction queue size used when
// Bridge.QueueCapacity is zero.
const DefaultQueueCapacity = 10

// DefaultShutdownGrace is used when Bridge.ShutdownGrace is zero.
const DefaultShutdownGrace = 2 * time.Second

// Stream is one side of the bridge. Reader and Writer may be the same
// object (a net.Conn) or two halves (stdin and stdout). Closer is
// called once when the bridge shuts down and should unblock any
// pending Read or Write; it may be nil.
type Stream struct {
	// Name labels the stream in pump names and log records, e.g.
	// "native" or "ipc".
	Name   string
	Reader io.Reader
	Writer io.Writer
	Closer io.Closer
}

// Outcome is how one pump finished.
type Outcome struct {
	// Pump is "<stream>-read" or "<stream>-write", or "context" when
	// the caller's context ended the bridge.
	Pump string

	// Err is nil for a clean finish.
	Err error
}

// Result describes a completed Run.
type Result struct {
	// First is the outcome that ended the bridge.
	First Outcome

	// Stopped holds the outcomes of the other pumps that stopped
	// within the grace period, in the order they stopped.
	Stopped []Outcome

	// Abandoned names pumps still running when the grace period
	// expired.
	Abandoned []string
}

// Err returns the error that ended the bridge, or nil when the first
// pump finished cleanly or the caller cancelled the context.
func (r Result) Err() error {
	if r.First.Pump == contextPump && errors.Is(r.First.Err, context.Canceled) {
		return nil
	}
	return r.First.Err
}

const contextPump = "context"

// Bridge joins two framed streams with four pumps. The zero value is
// not usable: A and B must be set.
type Bridge struct {
	A Stream
	B Stream

	// QueueCapacity bounds each direction's queue. Zero means
	// DefaultQueueCapacity.
	QueueCapacity int

	// ShutdownGrace bounds the wait for the remaining pumps after the
	// first one finishes. Zero means DefaultShutdownGrace.
	ShutdownGrace time.Duration

	// Logger receives structured log output. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	// Clock times the shutdown grace period. If nil, the real clock
	// is used.
	Clock clock.Clock

	// Annotate, when set, returns extra log attributes for a frame
	// payload. Called only when debug logging is enabled.
	Annotate func(payload []byte) []any
}

// logger returns the configured logger or the default.
func (b *Bridge) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Bridge) timeSource() clock.Clock {
	if b.Clock != nil {
		return b.Clock
	}
	return clock.Real()
}

// Run starts the four pumps and blocks until the first one finishes
// (or ctx is done), then shuts the rest down. Run never returns before
// both streams have been closed.
func (b *Bridge) Run(ctx context.Context) Result {
	capacity := b.QueueCapacity
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	grace := b.ShutdownGrace
	if grace <= 0 {
		grace = DefaultShutdownGrace
	}

	logger := b.logger().With("session", uuid.NewString())
	logger.Info("bridge started",
		"a", b.A.Name,
		"b", b.B.Name,
		"queue_capacity", capacity,
	)

	forward := newQueue(capacity)
	backward := newQueue(capacity)
	stop := make(chan struct{})

	pumps := []struct {
		name string
		run  func() error
	}{
		{b.A.Name + "-read", func() error { return b.readPump(ctx, b.A, b.B, forward, stop, logger) }},
		{b.B.Name + "-write", func() error { return b.writePump(b.B, forward, stop) }},
		{b.B.Name + "-read", func() error { return b.readPump(ctx, b.B, b.A, backward, stop, logger) }},
		{b.A.Name + "-write", func() error { return b.writePump(b.A, backward, stop) }},
	}

	// Buffered so no pump ever blocks reporting, even after Run has
	// stopped listening.
	outcomes := make(chan Outcome, len(pumps))
	var group errgroup.Group
	for _, pump := range pumps {
		pump := pump
		group.Go(func() error {
			outcomes <- Outcome{Pump: pump.name, Err: pump.run()}
			return nil
		})
	}
	allStopped := make(chan struct{})
	go func() {
		group.Wait()
		close(allStopped)
	}()

	var result Result
	select {
	case result.First = <-outcomes:
	case <-ctx.Done():
		result.First = Outcome{Pump: contextPump, Err: ctx.Err()}
	}
	b.logFirst(logger, result.First)

	close(stop)
	closeStream(logger, b.A)
	closeStream(logger, b.B)

	finished := map[string]bool{result.First.Pump: true}
	record := func(outcome Outcome) {
		finished[outcome.Pump] = true
		result.Stopped = append(result.Stopped, outcome)
		logSecondary(logger, outcome)
	}

	deadline := b.timeSource().After(grace)
	for waiting := true; waiting; {
		select {
		case outcome := <-outcomes:
			record(outcome)
		case <-allStopped:
			waiting = false
		case <-deadline:
			waiting = false
		}
	}
	// Outcomes reported between the last receive and the exit signal.
	for drained := false; !drained; {
		select {
		case outcome := <-outcomes:
			record(outcome)
		default:
			drained = true
		}
	}

	for _, pump := range pumps {
		if !finished[pump.name] {
			result.Abandoned = append(result.Abandoned, pump.name)
		}
	}
	if len(result.Abandoned) > 0 {
		logger.Warn("pumps still blocked after shutdown grace",
			"pumps", result.Abandoned,
			"grace", grace,
		)
	}
	logger.Info("bridge stopped", "first", result.First.Pump)
	return result
}

func (b *Bridge) logFirst(logger *slog.Logger, first Outcome) {
	switch {
	case first.Err == nil:
		logger.Info("pump finished, shutting down bridge", "pump", first.Pump)
	case first.Pump == contextPump:
		logger.Info("bridge cancelled", "reason", first.Err)
	default:
		logger.Error("pump failed, shutting down bridge", "pump", first.Pump, "error", first.Err)
	}
}

// logSecondary logs a pump that stopped because of the shutdown. Errors
// caused by the shutdown itself are expected and stay at debug.
func logSecondary(logger *slog.Logger, outcome Outcome) {
	if outcome.Err == nil || errors.Is(outcome.Err, errStopped) ||
		errors.Is(outcome.Err, ErrQueueClosed) || netutil.IsExpectedCloseError(outcome.Err) {
		logger.Debug("pump stopped", "pump", outcome.Pump, "error", outcome.Err)
		return
	}
	logger.Warn("pump stopped with error", "pump", outcome.Pump, "error", outcome.Err)
}

func closeStream(logger *slog.Logger, stream Stream) {
	if stream.Closer == nil {
		return
	}
	if err := stream.Closer.Close(); err != nil && !netutil.IsExpectedCloseError(err) {
		logger.Debug("closing stream", "stream", stream.Name, "error", err)
	}
}
