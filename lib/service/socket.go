// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime/debug"
	"sync"
	"time"

	"github.com/projectagentis/agentis/lib/clock"
	"github.com/projectagentis/agentis/lib/endpoint"
	"github.com/projectagentis/agentis/lib/netutil"
)

// DefaultAcceptRetryDelay is the pause after a failed accept.
const DefaultAcceptRetryDelay = time.Second

// ConnectionHandler serves one accepted connection. The server closes
// conn after the handler returns. A returned error is logged; it does
// not affect other connections.
type ConnectionHandler func(ctx context.Context, conn net.Conn) error

// SocketServerOptions tunes a SocketServer. The zero value uses the
// real clock and DefaultAcceptRetryDelay.
type SocketServerOptions struct {
	Clock            clock.Clock
	AcceptRetryDelay time.Duration
}

// SocketServer accepts connections on an IPC endpoint and runs a
// ConnectionHandler for each.
type SocketServer struct {
	endpoint         endpoint.Endpoint
	handler          ConnectionHandler
	logger           *slog.Logger
	clock            clock.Clock
	acceptRetryDelay time.Duration

	// listen binds the endpoint. Tests substitute listeners that fail
	// on demand.
	listen func(endpoint.Endpoint, *slog.Logger) (net.Listener, error)

	ready     chan struct{}
	readyOnce sync.Once

	// activeConnections tracks in-flight handlers for graceful
	// shutdown. Serve waits for all of them before returning.
	activeConnections sync.WaitGroup

	connectionsMu sync.Mutex
	connections   map[uint64]net.Conn
	nextID        uint64
}

// NewSocketServer creates a server for target. Call Serve to bind and
// start accepting.
func NewSocketServer(target endpoint.Endpoint, handler ConnectionHandler, logger *slog.Logger, options SocketServerOptions) *SocketServer {
	if logger == nil {
		logger = slog.Default()
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.AcceptRetryDelay <= 0 {
		options.AcceptRetryDelay = DefaultAcceptRetryDelay
	}
	return &SocketServer{
		endpoint:         target,
		handler:          handler,
		logger:           logger,
		clock:            options.Clock,
		acceptRetryDelay: options.AcceptRetryDelay,
		listen:           endpoint.Bind,
		ready:            make(chan struct{}),
		connections:      make(map[uint64]net.Conn),
	}
}

// Ready is closed once the endpoint is bound and connections will be
// accepted. It is never closed if binding fails.
func (s *SocketServer) Ready() <-chan struct{} {
	return s.ready
}

// Serve binds the endpoint and accepts connections until ctx is
// cancelled. It returns a non-nil error only when binding fails; after
// a successful bind it returns nil once every handler has finished.
func (s *SocketServer) Serve(ctx context.Context) error {
	listener, err := s.listen(s.endpoint, s.logger)
	if err != nil {
		return err
	}

	serveDone := make(chan struct{})
	defer close(serveDone)
	go func() {
		select {
		case <-ctx.Done():
		case <-serveDone:
		}
		listener.Close()
	}()

	s.logger.Info("listening for connections",
		"endpoint", s.endpoint.Address,
		"kind", s.endpoint.Kind.String(),
	)
	s.readyOnce.Do(func() { close(s.ready) })

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			if netutil.IsTransientAcceptError(err) {
				s.logger.Warn("accept failed, retrying",
					"error", err,
					"retry_delay", s.acceptRetryDelay,
				)
			} else {
				s.logger.Error("accept failed, retrying",
					"error", err,
					"retry_delay", s.acceptRetryDelay,
				)
			}
			select {
			case <-s.clock.After(s.acceptRetryDelay):
				continue
			case <-ctx.Done():
			}
			break
		}

		id := s.track(conn)
		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			s.handleConnection(ctx, id, conn)
		}()
	}

	listener.Close()
	s.closeConnections()
	s.activeConnections.Wait()
	s.logger.Info("listener stopped", "endpoint", s.endpoint.Address)
	return nil
}

func (s *SocketServer) handleConnection(ctx context.Context, id uint64, conn net.Conn) {
	logger := s.logger.With("connection_id", id)
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("connection handler panicked",
				"panic", fmt.Sprint(recovered),
				"stack", string(debug.Stack()),
			)
		}
		s.untrack(id)
		conn.Close()
		logger.Debug("connection closed")
	}()

	logger.Info("connection accepted")
	if err := s.handler(ctx, conn); err != nil {
		if netutil.IsExpectedCloseError(err) {
			logger.Debug("connection handler finished", "error", err)
			return
		}
		logger.Error("connection handler failed", "error", err)
	}
}

func (s *SocketServer) track(conn net.Conn) uint64 {
	s.connectionsMu.Lock()
	defer s.connectionsMu.Unlock()
	s.nextID++
	s.connections[s.nextID] = conn
	return s.nextID
}

func (s *SocketServer) untrack(id uint64) {
	s.connectionsMu.Lock()
	defer s.connectionsMu.Unlock()
	delete(s.connections, id)
}

// closeConnections closes every open connection so handlers blocked in
// Read return.
func (s *SocketServer) closeConnections() {
	s.connectionsMu.Lock()
	defer s.connectionsMu.Unlock()
	for _, conn := range s.connections {
		conn.Close()
	}
}
