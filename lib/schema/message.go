// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"
)

// SchemaVersion is written into every message and response this
// module produces. Readers accept a missing version as version 1.
const SchemaVersion = 1

// Actions understood by the application.
const (
	ActionPing                  = "ping"
	ActionPong                  = "pong"
	ActionPerformTask           = "perform_task"
	ActionTaskResult            = "task_result"
	ActionUnknownActionResponse = "unknown_action_response"
)

// Message is a request travelling from the extension (or a developer
// tool) to the application.
type Message struct {
	// Version is the schema version. Omitted by older extensions.
	Version int `json:"version,omitempty"`

	// Action selects the operation, e.g. "ping" or "perform_task".
	Action string `json:"action"`

	// TaskID correlates a request with its response.
	TaskID string `json:"task_id"`

	// Task is present for perform_task.
	Task *Task `json:"task,omitempty"`

	// Data carries action-specific free-form JSON.
	Data json.RawMessage `json:"data,omitempty"`
}

// Validate checks the fields every message must carry.
func (m *Message) Validate() error {
	if m.Action == "" {
		return errors.New("message: action is required")
	}
	if m.Task != nil {
		if err := m.Task.Validate(); err != nil {
			return fmt.Errorf("message %q: %w", m.TaskID, err)
		}
	}
	return nil
}

// Response is the application's reply to a Message.
type Response struct {
	Version int    `json:"version,omitempty"`
	Action  string `json:"action"`
	TaskID  string `json:"task_id"`
	Success bool   `json:"success"`

	// Result is the action's output. Always present on the wire,
	// null when there is none.
	Result json.RawMessage `json:"result"`

	// Error describes a failure when Success is false.
	Error string `json:"error,omitempty"`
}

// DecodeMessage parses a strict JSON frame payload into a Message. The
// action and task_id members must be present; a payload missing either
// is rejected.
func DecodeMessage(payload []byte) (*Message, error) {
	var presence struct {
		Action *string `json:"action"`
		TaskID *string `json:"task_id"`
	}
	if err := json.Unmarshal(payload, &presence); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}
	if presence.Action == nil {
		return nil, errors.New("decoding message: missing action")
	}
	if presence.TaskID == nil {
		return nil, errors.New("decoding message: missing task_id")
	}

	var message Message
	if err := json.Unmarshal(payload, &message); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}
	return &message, nil
}

// ParseMessage parses a hand-written JSONC document into a Message and
// validates it. Unlike DecodeMessage, task_id may be omitted so that
// the sender can assign one.
func ParseMessage(data []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(jsonc.ToJSON(data), &message); err != nil {
		return nil, fmt.Errorf("parsing message: %w", err)
	}
	if err := message.Validate(); err != nil {
		return nil, err
	}
	return &message, nil
}

// ParseTask parses a JSONC document into a Task and validates it.
func ParseTask(data []byte) (*Task, error) {
	var task Task
	if err := json.Unmarshal(jsonc.ToJSON(data), &task); err != nil {
		return nil, fmt.Errorf("parsing task: %w", err)
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return &task, nil
}
