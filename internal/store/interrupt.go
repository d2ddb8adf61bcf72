// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "sync/atomic"

// InterruptHandle is a shared cancellation flag checked at well-defined safe
// points inside the store and the engine: between staged-record transactions,
// between collated entities, and between outgoing uploads.
//
// It is a flag rather than a callback so that requesting an interrupt from
// another goroutine can never re-enter the store. Interruption surfaces as
// [ErrInterrupted] and never leaves the store partially written, because
// every unit of reconciliation work runs inside its own transaction.
type InterruptHandle struct {
	flag atomic.Bool
}

func NewInterruptHandle() *InterruptHandle {
	return &InterruptHandle{}
}

// Interrupt requests that in-flight work stop at the next safe point.
// Safe to call from any goroutine, any number of times.
func (h *InterruptHandle) Interrupt() {
	h.flag.Store(true)
}

// Clear re-arms the handle for the next operation.
func (h *InterruptHandle) Clear() {
	h.flag.Store(false)
}

// Interrupted reports whether an interrupt has been requested.
func (h *InterruptHandle) Interrupted() bool {
	return h.flag.Load()
}

// ErrIfInterrupted returns [ErrInterrupted] when an interrupt has been
// requested, nil otherwise. Loops call this once per unit of work.
func (h *InterruptHandle) ErrIfInterrupted() error {
	if h.Interrupted() {
		return ErrInterrupted
	}
	return nil
}
