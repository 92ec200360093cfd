// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !windows

package endpoint

import (
	"context"
	"net"
)

// NamespaceSupported reports whether Resolve produces namespaced
// endpoints on this platform.
const NamespaceSupported = false

func namespacedAddress(string) string { return "" }

func dialNamespaced(context.Context, string) (net.Conn, error) {
	return nil, ErrNamespaceUnsupported
}

func listenNamespaced(string) (net.Listener, error) {
	return nil, ErrNamespaceUnsupported
}
