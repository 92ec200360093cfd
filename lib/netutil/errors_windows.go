// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package netutil

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Winsock codes from winerror.h.
const (
	wsaeaddrinuse syscall.Errno = 10048
	wsaemfile     syscall.Errno = 10024
	wsaenobufs    syscall.Errno = 10055
)

func isCloseErrno(errno syscall.Errno) bool {
	switch errno {
	case windows.ERROR_BROKEN_PIPE, windows.ERROR_NO_DATA, windows.ERROR_PIPE_NOT_CONNECTED, windows.WSAECONNRESET:
		return true
	}
	return false
}

// A named pipe created with FILE_FLAG_FIRST_PIPE_INSTANCE fails with
// ERROR_ACCESS_DENIED when another server already owns the name.
func isAddressInUseErrno(errno syscall.Errno) bool {
	switch errno {
	case wsaeaddrinuse, windows.ERROR_ACCESS_DENIED, windows.ERROR_PIPE_BUSY:
		return true
	}
	return false
}

func isTransientErrno(errno syscall.Errno) bool {
	switch errno {
	case wsaemfile, wsaenobufs, windows.ERROR_NOT_ENOUGH_MEMORY, windows.WSAECONNABORTED:
		return true
	}
	return false
}
