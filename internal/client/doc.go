// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Kurilov

// Package client implements the headless client application runtime.
//
// It wires the HTTP gateway, connection status tracker, and canvas state
// engine into a single process lifecycle: authenticate, load the board,
// auto-save on mutations, and flush pending changes on shutdown.
package client
