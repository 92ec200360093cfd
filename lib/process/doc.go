// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the Agentis
// binaries: fatal error reporting to stderr before (or after) the
// structured logger exists, and the mapping from errors to exit codes.
//
// Exit codes follow sysexits(3) where one applies:
//
//   - [ExitOK] (0): the relay finished cleanly.
//   - [ExitFailure] (1): a pump, bind, or configuration error.
//   - [ExitUnavailable] (69): the IPC endpoint never accepted a
//     connection within the retry policy.
//
// Nothing in this package writes to stdout. A native-messaging host
// that prints to stdout corrupts the browser's frame stream.
package process
