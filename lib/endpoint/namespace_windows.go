// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"net"

	"github.com/Microsoft/go-winio"
)

// NamespaceSupported reports whether Resolve produces namespaced
// endpoints on this platform.
const NamespaceSupported = true

const pipePrefix = `\\.\pipe\`

func namespacedAddress(name string) string {
	return pipePrefix + name
}

func dialNamespaced(ctx context.Context, address string) (net.Conn, error) {
	return winio.DialPipeContext(ctx, address)
}

// Frames are delimited by their length prefix, so the pipe runs in
// byte mode (the go-winio default).
func listenNamespaced(address string) (net.Listener, error) {
	return winio.ListenPipe(address, &winio.PipeConfig{})
}
