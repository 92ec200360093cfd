// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"errors"
	"io"
	"net"
	"os"
	"syscall"
)

// IsExpectedCloseError reports whether err is a normal connection
// termination rather than a fault: EOF, a closed connection or file,
// broken pipe, or connection reset.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return isCloseErrno(errno)
	}
	return false
}

// IsAddressInUse reports whether err is a bind failure caused by the
// address already being taken.
func IsAddressInUse(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return isAddressInUseErrno(errno)
	}
	return false
}

// IsTransientAcceptError reports whether an accept failure is caused by
// temporary resource exhaustion.
func IsTransientAcceptError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return isTransientErrno(errno)
	}
	return false
}
