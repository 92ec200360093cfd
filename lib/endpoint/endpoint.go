// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
)

// DefaultName is the well-known endpoint name the relay and the
// application rendezvous on.
const DefaultName = "com.yourcompany.projectagentis.broker.sock"

// DefaultTempDirectory is the directory prefix for file-path endpoints.
const DefaultTempDirectory = "/tmp"

// ErrNamespaceUnsupported is returned when a namespaced endpoint is
// used on a platform without a socket namespace.
var ErrNamespaceUnsupported = errors.New("namespaced endpoints are not supported on this platform")

// Kind identifies how an endpoint's address is interpreted.
type Kind int

const (
	// KindNamespaced is an abstract socket (Linux) or named pipe
	// (Windows) with no filesystem presence.
	KindNamespaced Kind = iota + 1

	// KindFilePath is a Unix socket file on the filesystem.
	KindFilePath
)

func (k Kind) String() string {
	switch k {
	case KindNamespaced:
		return "namespaced"
	case KindFilePath:
		return "file-path"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Endpoint is a resolved IPC rendezvous point. It is a value type and
// never changes after resolution.
type Endpoint struct {
	Kind Kind

	// Name is the well-known name the endpoint was resolved from.
	Name string

	// Address is the platform address: "@name", `\\.\pipe\name`, or
	// a socket file path.
	Address string
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s endpoint %q", e.Kind, e.Address)
}

// Resolve maps name to this platform's endpoint: namespaced where the
// platform supports it, otherwise a socket file in tempDirectory
// (DefaultTempDirectory when empty).
func Resolve(name, tempDirectory string) (Endpoint, error) {
	if err := validateName(name); err != nil {
		return Endpoint{}, err
	}
	if NamespaceSupported {
		return Endpoint{Kind: KindNamespaced, Name: name, Address: namespacedAddress(name)}, nil
	}
	return FilePath(name, tempDirectory), nil
}

// FilePath returns the file-path endpoint for name regardless of
// platform support for namespaces.
func FilePath(name, tempDirectory string) Endpoint {
	if tempDirectory == "" {
		tempDirectory = DefaultTempDirectory
	}
	return Endpoint{Kind: KindFilePath, Name: name, Address: filepath.Join(tempDirectory, name)}
}

func validateName(name string) error {
	if name == "" {
		return errors.New("endpoint name is empty")
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("endpoint name %q must not contain path separators or NUL", name)
	}
	return nil
}

// Dial opens one connection to the endpoint.
func Dial(ctx context.Context, target Endpoint) (net.Conn, error) {
	switch target.Kind {
	case KindNamespaced:
		return dialNamespaced(ctx, target.Address)
	case KindFilePath:
		var dialer net.Dialer
		return dialer.DialContext(ctx, "unix", target.Address)
	default:
		return nil, fmt.Errorf("dial: unknown endpoint kind %v", target.Kind)
	}
}

// Listen binds the endpoint without any stale-socket handling. Most
// callers want Bind.
func Listen(target Endpoint) (net.Listener, error) {
	switch target.Kind {
	case KindNamespaced:
		return listenNamespaced(target.Address)
	case KindFilePath:
		return net.Listen("unix", target.Address)
	default:
		return nil, fmt.Errorf("listen: unknown endpoint kind %v", target.Kind)
	}
}
