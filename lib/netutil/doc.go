// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil classifies errors from local IPC connections and
// listeners.
//
// [IsExpectedCloseError] recognizes the errors a pump sees when its
// peer or its own supervisor tears the connection down: EOF, use of a
// closed connection, broken pipe, connection reset. The relay logs
// these at debug level instead of error.
//
// [IsAddressInUse] recognizes a bind that failed because the endpoint
// is occupied, which triggers stale-socket recovery.
//
// [IsTransientAcceptError] recognizes accept failures caused by
// resource exhaustion (descriptor or buffer limits) that are expected
// to clear after a short wait.
//
// The errno tables are platform-specific; see errors_unix.go and
// errors_windows.go.
package netutil
