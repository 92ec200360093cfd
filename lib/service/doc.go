// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the application side of the IPC endpoint: a
// socket server that binds the well-known endpoint and hands every
// accepted connection to a [ConnectionHandler] in its own goroutine.
//
// The server owns the accept loop and nothing else. It knows nothing
// about frames or messages; the handler reads and writes whatever it
// likes on the connection. One misbehaving connection (an error, a
// panic) is logged and forgotten without affecting the listener or any
// other connection.
//
// Accept failures never end the loop. Each one is logged and followed
// by a fixed pause on the injected clock, so a burst of EMFILE under
// descriptor exhaustion does not spin the CPU.
//
// Shutdown is driven by the context passed to [SocketServer.Serve]:
// the listener is closed, open connections are closed to unblock their
// handlers, and Serve returns once every handler has returned. For
// file-path endpoints the socket file is unlinked when the listener
// closes.
package service
