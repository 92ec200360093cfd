// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/projectagentis/agentis/lib/frame"
)

// readPump decodes frames from source and enqueues them until source
// reaches a clean end of stream. It closes the queue on return.
func (b *Bridge) readPump(ctx context.Context, source, destination Stream, output *queue, stop <-chan struct{}, logger *slog.Logger) error {
	defer output.close()

	for {
		payload, err := frame.Read(source.Reader)
		if err == io.EOF {
			logger.Info("stream closed", "stream", source.Name)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading from %s: %w", source.Name, err)
		}

		if logger.Enabled(ctx, slog.LevelDebug) {
			attributes := []any{"from", source.Name, "to", destination.Name, "bytes", len(payload)}
			if b.Annotate != nil {
				attributes = append(attributes, b.Annotate(payload)...)
			}
			logger.Debug("frame received", attributes...)
		}

		if err := output.send(payload, stop); err != nil {
			return err
		}
	}
}

// writePump encodes queued payloads onto destination until the queue
// is closed and drained. It releases the producer on return.
func (b *Bridge) writePump(destination Stream, input *queue, stop <-chan struct{}) error {
	defer input.markConsumerGone()

	for {
		select {
		case payload, ok := <-input.items:
			if !ok {
				return nil
			}
			if err := frame.Write(destination.Writer, payload); err != nil {
				return fmt.Errorf("writing to %s: %w", destination.Name, err)
			}
		case <-stop:
			return errStopped
		}
	}
}
