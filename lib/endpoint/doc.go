// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package endpoint resolves, binds, and connects to the local IPC
// rendezvous point shared by the relay and the application.
//
// Both sides call [Resolve] with the same well-known name and get the
// same [Endpoint] without coordinating. The strategy is fixed per
// platform at compile time ([NamespaceSupported]):
//
//   - Linux: an abstract-namespace Unix socket, "@<name>". Nothing
//     appears on the filesystem and the kernel releases the name when
//     the last descriptor closes.
//   - Windows: a named pipe, `\\.\pipe\<name>`, through go-winio.
//   - Everything else: a Unix socket file at "<temp-dir>/<name>".
//
// [Bind] listens on an endpoint and recovers once from a stale socket
// file left by an unclean shutdown. Namespaced endpoints have nothing
// to unlink, so an occupied namespaced endpoint is always fatal.
//
// [Dialer] connects with a fixed number of attempts separated by a
// fixed delay. The expected failure is "application not started yet",
// which a short bounded wait covers; there is no backoff growth or
// jitter.
package endpoint
