// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge relays length-prefixed frames between two
// bidirectional streams.
//
// The relay binary uses one [Bridge] to join the browser's
// native-messaging channel (stdin/stdout) to the application's IPC
// connection. Four pumps run concurrently:
//
//	<A>-read  -> queue -> <B>-write
//	<B>-read  -> queue -> <A>-write
//
// Each queue is a bounded FIFO (default capacity 10). A reader blocks
// when its queue is full, which propagates backpressure to the peer.
// Frames within one direction are delivered in order; the two
// directions are independent.
//
// The first pump to finish, cleanly or with an error, ends the whole
// bridge. [Bridge.Run] then signals the remaining pumps to stop,
// closes both streams to unblock pending I/O, and waits up to
// ShutdownGrace for them. Frames still queued at that point are
// dropped. A stream whose Close does not interrupt a blocked read
// (stdin on some platforms) is abandoned after the grace period; the
// caller is expected to exit the process.
package bridge
