// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the JSON message contract shared by the
// browser extension, the relay, and the application.
//
// The relay never interprets payloads: frames pass through it byte for
// byte. It uses [Describe] and [LogAttrs] only to label log records,
// and both tolerate arbitrary bytes (non-JSON, missing or non-string
// fields) by falling back to "N/A".
//
// The application and developer tools use the typed structures:
//
//   - [Message] -- a request: action, task id, an optional [Task], and
//     optional free-form data
//   - [Task] and [Step] -- a browser automation task as an ordered list
//     of steps, tagged by [Step.Type]
//   - [Response] -- the reply: action, echoed task id, success flag,
//     result, and error
//
// Task definitions written by hand are JSONC (comments and trailing
// commas allowed); [ParseTask] and [ParseMessage] accept both JSONC
// and plain JSON.
//
// This package depends on no other Agentis packages.
package schema
