// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the single immutable configuration value shared
// by the relay, the application, and the developer tools.
//
// The configuration file is YAML, selected by the --config flag or the
// AGENTIS_CONFIG environment variable (the flag wins). When neither is
// set the built-in defaults apply: browsers launch native-messaging
// hosts with no way to pass flags or environment, so a missing file is
// the common case, not an error.
//
// Only ${VAR} and ${VAR:-default} references in path fields are
// expanded. Environment variables never override individual values.
//
// The loaded *Config is built once in main() and its fields are handed
// to components explicitly. Nothing reads it through package state.
package config
