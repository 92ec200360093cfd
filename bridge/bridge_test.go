// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/projectagentis/agentis/lib/clock"
	"github.com/projectagentis/agentis/lib/frame"
	"github.com/projectagentis/agentis/lib/testutil"
)

// harness wires a Bridge between two in-memory pipes. The test plays
// the browser on extension and the application on application.
type harness struct {
	extension   net.Conn
	application net.Conn
	bridge      *Bridge
	results     chan Result
}

func newHarness(t *testing.T, configure func(*Bridge)) *harness {
	t.Helper()
	extension, nativeSide := net.Pipe()
	ipcSide, application := net.Pipe()
	t.Cleanup(func() {
		extension.Close()
		application.Close()
	})

	h := &harness{
		extension:   extension,
		application: application,
		bridge: &Bridge{
			A:      Stream{Name: "native", Reader: nativeSide, Writer: nativeSide, Closer: nativeSide},
			B:      Stream{Name: "ipc", Reader: ipcSide, Writer: ipcSide, Closer: ipcSide},
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
		results: make(chan Result, 1),
	}
	if configure != nil {
		configure(h.bridge)
	}
	return h
}

func (h *harness) start(ctx context.Context) {
	go func() { h.results <- h.bridge.Run(ctx) }()
}

func (h *harness) wait(t *testing.T) Result {
	t.Helper()
	return testutil.RequireReceive(t, h.results, 5*time.Second, "waiting for bridge to stop")
}

func writeFrame(t *testing.T, w io.Writer, payload string) {
	t.Helper()
	if err := frame.Write(w, []byte(payload)); err != nil {
		t.Fatalf("writing frame %q: %v", payload, err)
	}
}

func readFrame(t *testing.T, r io.Reader) string {
	t.Helper()
	payload, err := frame.Read(r)
	if err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	return string(payload)
}

func stoppedPumps(result Result) []string {
	var names []string
	for _, outcome := range result.Stopped {
		names = append(names, outcome.Pump)
	}
	sort.Strings(names)
	return names
}

func TestBridge_RelaysBothDirections(t *testing.T) {
	h := newHarness(t, nil)
	h.start(context.Background())

	writeFrame(t, h.extension, `{"action":"ping","task_id":"1"}`)
	if got := readFrame(t, h.application); got != `{"action":"ping","task_id":"1"}` {
		t.Fatalf("application received %q", got)
	}

	writeFrame(t, h.application, `{"action":"pong","task_id":"1","success":true,"result":null}`)
	if got := readFrame(t, h.extension); !strings.Contains(got, `"pong"`) {
		t.Fatalf("extension received %q", got)
	}

	// Empty frames are data, not disconnects.
	writeFrame(t, h.extension, "")
	if got := readFrame(t, h.application); got != "" {
		t.Fatalf("expected empty frame, got %q", got)
	}

	h.extension.Close()
	result := h.wait(t)

	if result.First.Pump != "native-read" || result.First.Err != nil {
		t.Fatalf("first outcome = %+v, want clean native-read", result.First)
	}
	if result.Err() != nil {
		t.Errorf("Result.Err() = %v, want nil", result.Err())
	}
	if want := []string{"ipc-read", "ipc-write", "native-write"}; !slices.Equal(stoppedPumps(result), want) {
		t.Errorf("stopped pumps = %v, want %v", stoppedPumps(result), want)
	}
	if len(result.Abandoned) != 0 {
		t.Errorf("abandoned pumps = %v", result.Abandoned)
	}
}

func TestBridge_OrderingBeyondQueueCapacity(t *testing.T) {
	h := newHarness(t, func(b *Bridge) { b.QueueCapacity = 2 })
	h.start(context.Background())

	const count = 100
	writeErrors := make(chan error, 1)
	go func() {
		for i := 0; i < count; i++ {
			if err := frame.Write(h.extension, []byte(fmt.Sprintf("frame-%03d", i))); err != nil {
				writeErrors <- err
				return
			}
		}
		writeErrors <- nil
	}()

	for i := 0; i < count; i++ {
		if got, want := readFrame(t, h.application), fmt.Sprintf("frame-%03d", i); got != want {
			t.Fatalf("frame %d: got %q, want %q", i, got, want)
		}
	}
	if err := testutil.RequireReceive(t, writeErrors, 5*time.Second, "waiting for writer"); err != nil {
		t.Fatalf("writer: %v", err)
	}

	h.application.Close()
	result := h.wait(t)
	if result.First.Pump != "ipc-read" || result.First.Err != nil {
		t.Fatalf("first outcome = %+v, want clean ipc-read", result.First)
	}
}

func TestBridge_DirectionsAreIndependent(t *testing.T) {
	h := newHarness(t, nil)
	h.start(context.Background())

	// The application never reads, yet responses it sends still reach
	// the extension while requests back up in the forward queue.
	go func() {
		for i := 0; i < 3; i++ {
			frame.Write(h.extension, []byte("request"))
		}
	}()
	writeFrame(t, h.application, "response")
	if got := readFrame(t, h.extension); got != "response" {
		t.Fatalf("extension received %q", got)
	}

	h.extension.Close()
	h.wait(t)
}

func TestBridge_DecodeErrorEndsBridge(t *testing.T) {
	h := newHarness(t, nil)
	h.start(context.Background())

	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, frame.MaxPayloadSize+1)
	if _, err := h.extension.Write(header); err != nil {
		t.Fatalf("writing header: %v", err)
	}

	result := h.wait(t)
	if result.First.Pump != "native-read" {
		t.Fatalf("first pump = %q, want native-read", result.First.Pump)
	}
	if !errors.Is(result.First.Err, frame.ErrFrameTooLarge) {
		t.Fatalf("first error = %v, want ErrFrameTooLarge", result.First.Err)
	}
	if !errors.Is(result.Err(), frame.ErrFrameTooLarge) {
		t.Errorf("Result.Err() = %v", result.Err())
	}
	if len(result.Stopped) != 3 {
		t.Errorf("expected the other three pumps stopped, got %+v", result.Stopped)
	}

	// The application side was closed by the shutdown.
	if _, err := frame.Read(h.application); err != io.EOF {
		t.Errorf("expected application to observe io.EOF, got %v", err)
	}
}

func TestBridge_TruncatedFrameIsError(t *testing.T) {
	h := newHarness(t, nil)
	h.start(context.Background())

	if _, err := h.application.Write([]byte{9, 0}); err != nil {
		t.Fatalf("writing partial prefix: %v", err)
	}
	h.application.Close()

	result := h.wait(t)
	if result.First.Pump != "ipc-read" || !errors.Is(result.First.Err, io.ErrUnexpectedEOF) {
		t.Fatalf("first outcome = %+v, want ipc-read with io.ErrUnexpectedEOF", result.First)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestBridge_WriteErrorEndsBridge(t *testing.T) {
	failure := errors.New("application went away")
	h := newHarness(t, func(b *Bridge) { b.B.Writer = failingWriter{err: failure} })
	h.start(context.Background())

	writeFrame(t, h.extension, `{"action":"ping"}`)

	result := h.wait(t)
	if result.First.Pump != "ipc-write" || !errors.Is(result.First.Err, failure) {
		t.Fatalf("first outcome = %+v, want ipc-write with the write failure", result.First)
	}
	if want := []string{"ipc-read", "native-read", "native-write"}; !slices.Equal(stoppedPumps(result), want) {
		t.Errorf("stopped pumps = %v, want %v", stoppedPumps(result), want)
	}
}

func TestBridge_ContextCancellation(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	h.start(ctx)
	cancel()

	result := h.wait(t)
	if result.First.Pump != "context" || !errors.Is(result.First.Err, context.Canceled) {
		t.Fatalf("first outcome = %+v, want context cancellation", result.First)
	}
	if result.Err() != nil {
		t.Errorf("Result.Err() = %v, want nil for cancellation", result.Err())
	}
	if len(result.Stopped) != 4 {
		t.Errorf("expected all four pumps stopped, got %+v", result.Stopped)
	}
}

// stuckReader blocks until released and ignores Close, like a console
// stdin handle.
type stuckReader struct{ release chan struct{} }

func (s stuckReader) Read([]byte) (int, error) {
	<-s.release
	return 0, io.EOF
}

func TestBridge_AbandonsPumpsAfterGrace(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	h := newHarness(t, func(b *Bridge) {
		b.A.Reader = stuckReader{release: release}
		b.A.Closer = nil
		b.Clock = fake
		b.ShutdownGrace = 3 * time.Second
	})
	h.start(context.Background())

	h.application.Close()
	fake.WaitForTimers(1)
	fake.Advance(3 * time.Second)

	result := h.wait(t)
	if result.First.Pump != "ipc-read" {
		t.Fatalf("first pump = %q, want ipc-read", result.First.Pump)
	}
	if !slices.Contains(result.Abandoned, "native-read") {
		t.Errorf("abandoned = %v, want native-read among them", result.Abandoned)
	}
	// The write pumps stop promptly but may race the grace timer, so
	// each must be accounted for exactly once either way.
	accounted := append(stoppedPumps(result), result.Abandoned...)
	sort.Strings(accounted)
	if want := []string{"ipc-write", "native-read", "native-write"}; !slices.Equal(accounted, want) {
		t.Errorf("stopped+abandoned = %v, want %v", accounted, want)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.String()
}

func TestBridge_AnnotatesFramesAtDebug(t *testing.T) {
	var logs syncBuffer
	h := newHarness(t, func(b *Bridge) {
		b.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		b.Annotate = func(payload []byte) []any { return []any{"marker", "annotated-" + string(payload)} }
	})
	h.start(context.Background())

	writeFrame(t, h.extension, "x")
	readFrame(t, h.application)
	h.extension.Close()
	h.wait(t)

	output := logs.String()
	if !strings.Contains(output, "marker=annotated-x") {
		t.Errorf("expected annotation in logs:\n%s", output)
	}
	if !strings.Contains(output, "session=") {
		t.Errorf("expected session attribute in logs:\n%s", output)
	}
}

func TestQueue_ProducerSeesDeadConsumer(t *testing.T) {
	q := newQueue(1)
	stop := make(chan struct{})
	if err := q.send([]byte("a"), stop); err != nil {
		t.Fatalf("first send: %v", err)
	}

	result := make(chan error, 1)
	go func() { result <- q.send([]byte("b"), stop) }()

	q.markConsumerGone()
	if err := testutil.RequireReceive(t, result, 5*time.Second, "waiting for blocked send"); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("send = %v, want ErrQueueClosed", err)
	}

	// Idempotent close paths.
	q.markConsumerGone()
	q.close()
	q.close()
}
