// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "encoding/json"

// NotAvailable stands in for a diagnostic field that is missing or not
// a string.
const NotAvailable = "N/A"

// Summary is the diagnostic view of a frame payload.
type Summary struct {
	Action string
	TaskID string

	// Valid reports whether the payload parsed as a JSON object.
	Valid bool
}

// Describe extracts action and task_id from payload for logging. It
// never fails: anything it cannot read becomes NotAvailable.
func Describe(payload []byte) Summary {
	summary := Summary{Action: NotAvailable, TaskID: NotAvailable}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return summary
	}
	summary.Valid = true
	summary.Action = stringField(fields, "action")
	summary.TaskID = stringField(fields, "task_id")
	return summary
}

// LogAttrs returns slog key-value pairs describing payload.
func LogAttrs(payload []byte) []any {
	summary := Describe(payload)
	return []any{
		"action", summary.Action,
		"task_id", summary.TaskID,
		"json_valid", summary.Valid,
	}
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return NotAvailable
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return NotAvailable
	}
	return value
}
