// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
)

// MaxPayloadSize is the largest payload a frame may carry: 10 MiB. It
// is a protocol constant, identical for every reader and writer in the
// process and on both transports.
const MaxPayloadSize = 10 * 1024 * 1024

// headerLength is the size of the length prefix.
const headerLength = 4

var (
	// ErrFrameTooLarge is returned by Read when a frame declares a
	// payload length above MaxPayloadSize. The stream is unusable
	// afterwards: the body was not consumed.
	ErrFrameTooLarge = errors.New("declared frame length exceeds maximum")

	// ErrPayloadTooLarge is returned by Write when asked to send a
	// payload above MaxPayloadSize. Nothing is written.
	ErrPayloadTooLarge = errors.New("payload exceeds maximum frame size")
)

// flusher is implemented by buffered writers (bufio.Writer) that hold
// bytes until explicitly flushed.
type flusher interface {
	Flush() error
}

// Read decodes one frame from r and returns its payload.
//
// Returns io.EOF (unwrapped) if r ends before the first prefix byte.
// A zero-length frame returns a non-nil empty slice. Any other failure
// is returned wrapped with context; truncated frames wrap
// io.ErrUnexpectedEOF and oversized frames wrap ErrFrameTooLarge.
func Read(r io.Reader) ([]byte, error) {
	var header [headerLength]byte
	count, err := io.ReadFull(r, header[:])
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("frame: stream closed inside length prefix (%d of %d bytes): %w",
				count, headerLength, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("frame: reading length prefix: %w", err)
	}

	length := binary.LittleEndian.Uint32(header[:])
	if length > MaxPayloadSize {
		return nil, fmt.Errorf("frame: length %d exceeds limit %d: %w", length, MaxPayloadSize, ErrFrameTooLarge)
	}
	if length == 0 {
		return []byte{}, nil
	}

	payload := make([]byte, length)
	count, err = io.ReadFull(r, payload)
	if err != nil {
		// ReadFull reports io.EOF when zero body bytes arrived, but at
		// this point the prefix promised a body, so any closure is a
		// truncated frame.
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("frame: stream closed inside body (%d of %d bytes): %w",
				count, length, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("frame: reading body: %w", err)
	}
	return payload, nil
}

// Write encodes payload as one frame on w and flushes w if it buffers.
//
// The prefix and payload are handed to w as a single vectored write
// (writev on sockets), so a frame is never split across separate Write
// calls on a connection. Callers sharing one stream between goroutines
// must still serialize through a Writer.
func Write(w io.Writer, payload []byte) error {
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("frame: payload of %d bytes exceeds limit %d: %w", len(payload), MaxPayloadSize, ErrPayloadTooLarge)
	}

	var header [headerLength]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))

	buffers := net.Buffers{header[:]}
	if len(payload) > 0 {
		buffers = append(buffers, payload)
	}
	if _, err := buffers.WriteTo(w); err != nil {
		return fmt.Errorf("frame: writing frame: %w", err)
	}

	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("frame: flushing: %w", err)
		}
	}
	return nil
}

// Writer serializes frame writes to one underlying stream. Whole frames
// from concurrent callers never interleave.
type Writer struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewWriter returns a Writer that encodes frames onto w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: w}
}

// WriteFrame encodes payload as one frame. See Write.
func (w *Writer) WriteFrame(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Write(w.writer, payload)
}
