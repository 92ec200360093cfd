// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"net"
)

// NamespaceSupported reports whether Resolve produces namespaced
// endpoints on this platform.
const NamespaceSupported = true

// A leading '@' selects the abstract socket namespace in package net.
func namespacedAddress(name string) string {
	return "@" + name
}

func dialNamespaced(ctx context.Context, address string) (net.Conn, error) {
	var dialer net.Dialer
	return dialer.DialContext(ctx, "unix", address)
}

func listenNamespaced(address string) (net.Listener, error) {
	return net.Listen("unix", address)
}
