// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/projectagentis/agentis/lib/netutil"
)

// Bind listens on target. If the bind fails because the address is
// occupied and target is a socket file that exists, the file is treated
// as left over from an unclean shutdown: it is removed and the bind is
// retried exactly once. Every other failure, including an occupied
// namespaced endpoint, a missing file, or a failed unlink, returns the
// original bind error.
//
// Removing the file also evicts a live listener that still owns it.
// Only one application instance is expected per user session.
func Bind(target Endpoint, logger *slog.Logger) (net.Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}

	listener, err := Listen(target)
	if err == nil {
		return listener, nil
	}
	if !netutil.IsAddressInUse(err) {
		return nil, fmt.Errorf("binding %s: %w", target, err)
	}

	if target.Kind != KindFilePath {
		logger.Error("endpoint already in use, is another instance running?",
			"endpoint", target.Address,
			"kind", target.Kind.String(),
		)
		return nil, fmt.Errorf("binding %s: %w", target, err)
	}

	logger.Warn("endpoint already in use, attempting stale socket cleanup",
		"path", target.Address,
	)
	if _, statErr := os.Lstat(target.Address); statErr != nil {
		logger.Error("socket file expected but not found",
			"path", target.Address,
			"error", statErr,
		)
		return nil, fmt.Errorf("binding %s: %w", target, err)
	}
	if removeErr := os.Remove(target.Address); removeErr != nil {
		logger.Error("failed to remove stale socket file",
			"path", target.Address,
			"error", removeErr,
		)
		return nil, fmt.Errorf("binding %s: %w", target, err)
	}
	logger.Info("removed stale socket file", "path", target.Address)

	listener, err = Listen(target)
	if err != nil {
		return nil, fmt.Errorf("binding %s after stale socket cleanup: %w", target, err)
	}
	return listener, nil
}
