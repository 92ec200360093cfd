// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/projectagentis/agentis/lib/frame"
	"github.com/projectagentis/agentis/lib/schema"
)

// maxLoggedPayload caps how much of an undecodable payload is logged.
const maxLoggedPayload = 256

type responder struct {
	logger *slog.Logger
}

// serve answers frames on one connection until the peer disconnects.
// A read or write failure ends the connection; a bad message does not.
func (r *responder) serve(ctx context.Context, conn net.Conn) error {
	for {
		payload, err := frame.Read(conn)
		if err == io.EOF {
			r.logger.Info("relay closed connection")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading request: %w", err)
		}
		if len(payload) == 0 {
			r.logger.Warn("received empty message")
			continue
		}

		message, err := schema.DecodeMessage(payload)
		if err != nil {
			r.logger.Error("discarding undecodable message",
				"error", err,
				"bytes", len(payload),
				"payload", preview(payload),
			)
			continue
		}
		r.logger.Info("received message", "action", message.Action, "task_id", message.TaskID)

		response, err := respond(message)
		if err != nil {
			r.logger.Error("building response", "task_id", message.TaskID, "error", err)
			continue
		}
		encoded, err := json.Marshal(response)
		if err != nil {
			r.logger.Error("encoding response", "task_id", message.TaskID, "error", err)
			continue
		}
		if err := frame.Write(conn, encoded); err != nil {
			return fmt.Errorf("sending response to %s: %w", message.TaskID, err)
		}
		r.logger.Info("sent response", "action", response.Action, "task_id", response.TaskID)
	}
}

// respond maps a request to its echo response.
func respond(message *schema.Message) (schema.Response, error) {
	action := schema.ActionUnknownActionResponse
	switch message.Action {
	case schema.ActionPing:
		action = schema.ActionPong
	case schema.ActionPerformTask:
		action = schema.ActionTaskResult
	}

	result, err := json.Marshal(map[string]any{"echo": message})
	if err != nil {
		return schema.Response{}, err
	}
	return schema.Response{
		Version: schema.SchemaVersion,
		Action:  action,
		TaskID:  message.TaskID,
		Success: true,
		Result:  result,
	}, nil
}

func preview(payload []byte) string {
	if len(payload) > maxLoggedPayload {
		return string(payload[:maxLoggedPayload]) + "..."
	}
	return string(payload)
}
