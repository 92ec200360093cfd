// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Agentis-relay is the native-messaging host launched by the browser.
// It connects to the Agentis application's local IPC endpoint and
// relays length-prefixed JSON frames between the browser (stdin and
// stdout) and the application until either side disconnects.
//
// Stdout carries frames only. All diagnostics go to stderr and, when
// log.file is configured, to a rotating log file.
//
// Exit status: 0 when a side disconnected cleanly, 1 on a relay or
// configuration error, 69 when the application never accepted a
// connection.
package main
