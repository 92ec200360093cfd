// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Summary
	}{
		{
			name:    "full message",
			payload: `{"action":"ping","task_id":"t-1"}`,
			want:    Summary{Action: "ping", TaskID: "t-1", Valid: true},
		},
		{
			name:    "missing task id",
			payload: `{"action":"ping"}`,
			want:    Summary{Action: "ping", TaskID: NotAvailable, Valid: true},
		},
		{
			name:    "non-string fields",
			payload: `{"action":7,"task_id":{"nested":true}}`,
			want:    Summary{Action: NotAvailable, TaskID: NotAvailable, Valid: true},
		},
		{
			name:    "not json",
			payload: `hello`,
			want:    Summary{Action: NotAvailable, TaskID: NotAvailable},
		},
		{
			name:    "json array",
			payload: `[1,2,3]`,
			want:    Summary{Action: NotAvailable, TaskID: NotAvailable},
		},
		{
			name:    "json null",
			payload: `null`,
			want:    Summary{Action: NotAvailable, TaskID: NotAvailable},
		},
		{
			name:    "empty payload",
			payload: ``,
			want:    Summary{Action: NotAvailable, TaskID: NotAvailable},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Describe([]byte(test.payload)); got != test.want {
				t.Errorf("Describe(%q) = %+v, want %+v", test.payload, got, test.want)
			}
		})
	}
}

func TestLogAttrs(t *testing.T) {
	attrs := LogAttrs([]byte(`{"action":"perform_task","task_id":"abc"}`))
	want := []any{"action", "perform_task", "task_id", "abc", "json_valid", true}
	if len(attrs) != len(want) {
		t.Fatalf("LogAttrs returned %d values, want %d", len(attrs), len(want))
	}
	for index := range want {
		if attrs[index] != want[index] {
			t.Errorf("attrs[%d] = %v, want %v", index, attrs[index], want[index])
		}
	}
}

func TestDecodeMessage(t *testing.T) {
	message, err := DecodeMessage([]byte(`{"action":"perform_task","task_id":"t-9","task":{"steps":[{"type":"navigate","url":"https://example.com"}]},"data":{"k":1}}`))
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if message.Action != ActionPerformTask || message.TaskID != "t-9" {
		t.Errorf("message = %+v", message)
	}
	if message.Task == nil || len(message.Task.Steps) != 1 || message.Task.Steps[0].URL != "https://example.com" {
		t.Errorf("task = %+v", message.Task)
	}
	if string(message.Data) != `{"k":1}` {
		t.Errorf("data = %s", message.Data)
	}
}

func TestDecodeMessage_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"not json", `nope`, "decoding message"},
		{"missing action", `{"task_id":"x"}`, "missing action"},
		{"missing task id", `{"action":"ping"}`, "missing task_id"},
		{"action wrong type", `{"action":1,"task_id":"x"}`, "decoding message"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeMessage([]byte(test.payload))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err, test.want)
			}
		})
	}
}

func TestParseTask_JSONC(t *testing.T) {
	task, err := ParseTask([]byte(`{
		// open the page first
		"steps": [
			{"type": "navigate", "url": "https://example.com"},
			{"type": "wait_for_selector", "selector": "#main", "timeout": 5000},
			{"type": "fill", "selector": "#q", "value": "agents", "dispatch_events": ["input"]},
			{"type": "click", "selector": "#go", "wait_for_nav": true},
			{"type": "extract", "selector": "h1", "target": "text", "variable_name": "title"},
			{"type": "wait_for_timeout", "timeout": 250},
			{"type": "scrape", "config": {"fields": ["a"]}}, /* trailing comma */
		],
	}`))
	if err != nil {
		t.Fatalf("ParseTask: %v", err)
	}
	if len(task.Steps) != 7 {
		t.Fatalf("got %d steps, want 7", len(task.Steps))
	}
	if task.Steps[1].Timeout == nil || *task.Steps[1].Timeout != 5000 {
		t.Errorf("wait_for_selector timeout = %v", task.Steps[1].Timeout)
	}
	if task.Steps[3].WaitForNavigation == nil || !*task.Steps[3].WaitForNavigation {
		t.Errorf("click wait_for_nav = %v", task.Steps[3].WaitForNavigation)
	}
}

func TestStepValidate(t *testing.T) {
	timeout := uint32(100)
	tests := []struct {
		name string
		step Step
		want string
	}{
		{"missing type", Step{}, "type is required"},
		{"unknown type", Step{Type: "teleport"}, "unknown step type"},
		{"navigate without url", Step{Type: StepNavigate}, "url is required"},
		{"scrape without config", Step{Type: StepScrape}, "config is required"},
		{"click without selector", Step{Type: StepClick}, "selector is required"},
		{"wait_for_selector without timeout", Step{Type: StepWaitForSelector, Selector: "a"}, "timeout is required"},
		{"wait_for_timeout without timeout", Step{Type: StepWaitForTimeout}, "timeout is required"},
		{"extract attribute without name", Step{Type: StepExtract, Selector: "a", Target: "attribute", VariableName: "v"}, "attribute_name"},
		{"valid wait", Step{Type: StepWaitForTimeout, Timeout: &timeout}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.step.Validate()
			if test.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, test.want)
			}
		})
	}
}

func TestTaskValidate_ReportsStepIndex(t *testing.T) {
	task := Task{Steps: []Step{{Type: StepNavigate, URL: "https://a"}, {Type: StepClick}}}
	err := task.Validate()
	if err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Errorf("Validate() = %v, want error naming step 1", err)
	}
	if err := (&Task{}).Validate(); err == nil {
		t.Error("empty task should be invalid")
	}
}

func TestResponseWireShape(t *testing.T) {
	data, err := json.Marshal(Response{Action: ActionPong, TaskID: "t"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `{"action":"pong","task_id":"t","success":false,"result":null}`; got != want {
		t.Errorf("wire = %s, want %s", got, want)
	}
}
