// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for the relay's two
// timed waits: the fixed delay between connection attempts and the
// pause after a failed accept.
//
// Production code holds a Clock and calls Real() by default. Tests pass
// Fake() and drive time explicitly:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	dialer := &endpoint.Dialer{Clock: fake}
//	go dialer.Connect(ctx, target)
//	fake.WaitForTimers(1)      // the dialer is now waiting between attempts
//	fake.Advance(time.Second)  // release it deterministically
//
// WaitForTimers closes the race between a goroutine registering a wait
// and the test advancing past it, so tests never sleep on wall time.
package clock
