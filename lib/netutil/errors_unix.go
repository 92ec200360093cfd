// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package netutil

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func isCloseErrno(errno syscall.Errno) bool {
	return errno == unix.EPIPE || errno == unix.ECONNRESET
}

func isAddressInUseErrno(errno syscall.Errno) bool {
	return errno == unix.EADDRINUSE
}

func isTransientErrno(errno syscall.Errno) bool {
	switch errno {
	case unix.EMFILE, unix.ENFILE, unix.ENOBUFS, unix.ENOMEM, unix.ECONNABORTED, unix.EINTR:
		return true
	}
	return false
}
