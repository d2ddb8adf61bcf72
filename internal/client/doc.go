// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the syncer process runtime.
//
// It wires the engine services and the periodic sync job into a single
// process lifecycle: an eager first round on startup, ticker-driven rounds
// afterwards, and a clean interrupt-and-drain shutdown on SIGINT/SIGTERM.
package client
