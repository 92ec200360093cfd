// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [SocketDir] creates a short directory under /tmp for Unix socket
// files. sun_path is limited to 108 bytes and t.TempDir() paths can
// exceed it.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so tests waiting on goroutines fail instead of hanging. They
// are the only wall-clock timeouts in the test suite; everything else
// uses the fake clock.
package testutil
