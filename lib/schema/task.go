// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Step types.
const (
	StepNavigate        = "navigate"
	StepScrape          = "scrape"
	StepClick           = "click"
	StepFill            = "fill"
	StepWaitForSelector = "wait_for_selector"
	StepWaitForTimeout  = "wait_for_timeout"
	StepExtract         = "extract"
)

// Task is an ordered list of browser automation steps.
type Task struct {
	Steps []Step `json:"steps"`
}

// Validate checks that the task has at least one step and that every
// step is valid.
func (t *Task) Validate() error {
	if len(t.Steps) == 0 {
		return errors.New("task: at least one step is required")
	}
	for index := range t.Steps {
		if err := t.Steps[index].Validate(); err != nil {
			return fmt.Errorf("task: step %d: %w", index, err)
		}
	}
	return nil
}

// Step is one automation step. Type selects which of the remaining
// fields apply; fields that do not apply to a type are left empty.
type Step struct {
	Type string `json:"type"`

	// URL is the navigation target (navigate).
	URL string `json:"url,omitempty"`

	// Config is the scraper configuration, opaque to this module
	// (scrape).
	Config json.RawMessage `json:"config,omitempty"`

	// Selector is the CSS selector the step acts on (click, fill,
	// wait_for_selector, extract).
	Selector string `json:"selector,omitempty"`

	// WaitForNavigation makes a click wait for the resulting page
	// load (click).
	WaitForNavigation *bool `json:"wait_for_nav,omitempty"`

	// Timeout is in milliseconds (click, wait_for_selector,
	// wait_for_timeout).
	Timeout *uint32 `json:"timeout,omitempty"`

	// Value is the text to enter (fill).
	Value string `json:"value,omitempty"`

	// DispatchEvents lists DOM events fired after filling (fill).
	DispatchEvents []string `json:"dispatch_events,omitempty"`

	// State is the element state to wait for, e.g. "visible"
	// (wait_for_selector).
	State string `json:"state,omitempty"`

	// Target is what to extract: "text", "html", or "attribute"
	// (extract).
	Target string `json:"target,omitempty"`

	// AttributeName is read when Target is "attribute" (extract).
	AttributeName string `json:"attribute_name,omitempty"`

	// VariableName names the result slot for the extracted value
	// (extract).
	VariableName string `json:"variable_name,omitempty"`
}

// Validate checks that the step has a known type and the fields that
// type requires.
func (s *Step) Validate() error {
	switch s.Type {
	case StepNavigate:
		if s.URL == "" {
			return errors.New("navigate: url is required")
		}
	case StepScrape:
		if len(s.Config) == 0 {
			return errors.New("scrape: config is required")
		}
	case StepClick:
		if s.Selector == "" {
			return errors.New("click: selector is required")
		}
	case StepFill:
		if s.Selector == "" {
			return errors.New("fill: selector is required")
		}
	case StepWaitForSelector:
		if s.Selector == "" {
			return errors.New("wait_for_selector: selector is required")
		}
		if s.Timeout == nil {
			return errors.New("wait_for_selector: timeout is required")
		}
	case StepWaitForTimeout:
		if s.Timeout == nil {
			return errors.New("wait_for_timeout: timeout is required")
		}
	case StepExtract:
		if s.Selector == "" {
			return errors.New("extract: selector is required")
		}
		if s.Target == "" {
			return errors.New("extract: target is required")
		}
		if s.VariableName == "" {
			return errors.New("extract: variable_name is required")
		}
		if s.Target == "attribute" && s.AttributeName == "" {
			return errors.New("extract: attribute_name is required when target is attribute")
		}
	case "":
		return errors.New("type is required")
	default:
		return fmt.Errorf("unknown step type %q", s.Type)
	}
	return nil
}
