// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Agentis-app is the long-lived application the relay connects to. It
// binds the well-known IPC endpoint and answers every framed JSON
// message with a framed JSON response:
//
//	ping          -> pong
//	perform_task  -> task_result
//	anything else -> unknown_action_response
//
// Each response echoes the request's task_id and carries the decoded
// request under result.echo. Empty frames and undecodable messages are
// logged and skipped without a response. This is the reference
// responder used to exercise the relay end to end; a real automation
// backend replaces respond.
package main
