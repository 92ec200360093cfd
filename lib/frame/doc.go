// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package frame implements the length-prefixed wire format shared by the
// browser native-messaging channel and the local IPC connection.
//
// Every frame is a 4-byte little-endian unsigned payload length followed
// by exactly that many payload bytes:
//
//	[length uint32 LE][payload]
//
// There is no checksum, version byte, or compression. Payloads are
// opaque at this layer; the JSON contract above it lives in lib/schema.
//
// A zero-length frame is a valid empty payload and is distinct from
// stream closure. [Read] returns io.EOF only when the stream ends exactly
// at a frame boundary (before any prefix byte). Closure anywhere inside
// a frame, including inside the length prefix, is an error wrapping
// io.ErrUnexpectedEOF.
//
// Both directions enforce [MaxPayloadSize]. Oversized outbound payloads
// are rejected before any byte is written; oversized declared lengths on
// inbound frames are rejected before any body byte is read.
package frame
