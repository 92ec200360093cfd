// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the process-wide *slog.Logger from the log
// section of the configuration.
//
// Records always go to stderr: a native-messaging host owns stdout for
// frames, so nothing else may ever write there. When stderr is a
// terminal the text handler is used, otherwise JSON. Browsers usually
// discard a host's stderr, so an optional rotating file
// (lumberjack) receives the same records.
package logging
