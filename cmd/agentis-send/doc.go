// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Agentis-send sends one message to the Agentis application the way the
// relay would, then prints the application's response. It is a
// developer tool for exercising the application without a browser.
//
// With no arguments it sends a ping. --task sends a perform_task
// message built from a JSONC task definition; --message sends a
// complete JSONC message as written. A fresh task id is generated
// unless --task-id is given.
package main
