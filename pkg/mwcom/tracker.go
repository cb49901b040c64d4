// Copyright (c) 2024 Contributors to the Eclipse Foundation
//
// See the NOTICE file(s) distributed with this work for additional
// information regarding copyright ownership.
//
// This program and the accompanying materials are made available under the
// terms of the Apache Software License 2.0 which is available at
// https://www.apache.org/licenses/LICENSE-2.0, or the MIT license
// which is available at https://opensource.org/licenses/MIT.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mwcom

import "sync/atomic"

// Tracker bounds how many SamplePtr values a proxy event may hand out at
// once. It is lock-free: allocate/deallocate are each a compare-and-swap
// loop over the number of currently available slots, so many concurrent
// GetNewSamples calls and sample drops never block each other.
type Tracker struct {
	available int64
	max       uint16
}

// NewTracker creates a tracker with maxSamples fully available.
func NewTracker(maxSamples uint16) *Tracker {
	return &Tracker{available: int64(maxSamples), max: maxSamples}
}

// MaxSamples returns the budget the tracker was created with.
func (t *Tracker) MaxSamples() uint16 {
	return t.max
}

// IsUsed reports whether any slot is currently allocated, i.e. whether any
// SamplePtr drawn from this tracker has not yet been closed. ProxyEventBase
// uses this to refuse Unsubscribe/destruction while samples are still held.
func (t *Tracker) IsUsed() bool {
	return atomic.LoadInt64(&t.available) != int64(t.max)
}

// NumAvailable returns the number of slots currently free for allocation.
// The value is read with Acquire ordering and may already be stale by the
// time the caller acts on it; it is a hint, not a reservation.
func (t *Tracker) NumAvailable() uint16 {
	return uint16(atomic.LoadInt64(&t.available))
}

// allocate reserves one slot, retrying on a concurrent spurious CAS
// failure, and reports whether a slot was available.
func (t *Tracker) allocate() bool {
	for {
		current := atomic.LoadInt64(&t.available)
		if current <= 0 {
			return false
		}
		if atomic.CompareAndSwapInt64(&t.available, current, current-1) {
			return true
		}
	}
}

// deallocate releases one previously allocated slot back to the tracker.
func (t *Tracker) deallocate() {
	for {
		current := atomic.LoadInt64(&t.available)
		next := current + 1
		if next > int64(t.max) {
			panic("mwcom: tracker deallocate exceeded max sample count, guard double-released")
		}
		if atomic.CompareAndSwapInt64(&t.available, current, next) {
			return
		}
	}
}

// GuardFactory is a short-lived reservation window over a Tracker, used by
// a single GetNewSamples call to hand out guards. The number it can hand
// out is not fixed when it is created, and it does not reserve anything up
// front: each TakeGuard call attempts one allocation
// against the tracker, additionally bounded by an optional per-call limit
// (the caller-supplied maxNumSamples for that one GetNewSamples).
type GuardFactory struct {
	tracker   *Tracker
	remaining int
	bounded   bool
}

// NewGuardFactory returns a factory drawing guards from tracker, unbounded
// beyond the tracker's own budget.
func NewGuardFactory(tracker *Tracker) GuardFactory {
	return GuardFactory{tracker: tracker}
}

// NewBoundedGuardFactory returns a factory drawing at most limit guards
// from tracker over its lifetime, in addition to the tracker's own budget.
// GuardFactory is not safe for concurrent use by multiple goroutines; it is
// meant to be created and drained within one GetNewSamples call.
func NewBoundedGuardFactory(tracker *Tracker, limit uint16) GuardFactory {
	return GuardFactory{tracker: tracker, remaining: int(limit), bounded: true}
}

// NumAvailableGuards reports how many guards could currently be taken.
func (f GuardFactory) NumAvailableGuards() uint16 {
	avail := f.tracker.NumAvailable()
	if f.bounded && int(avail) > f.remaining {
		return uint16(f.remaining)
	}
	return avail
}

// TakeGuard attempts to reserve one slot, returning ok=false if the budget
// is currently exhausted or the per-call limit has been reached.
func (f *GuardFactory) TakeGuard() (Guard, bool) {
	if f.bounded && f.remaining <= 0 {
		return Guard{}, false
	}
	if !f.tracker.allocate() {
		return Guard{}, false
	}
	if f.bounded {
		f.remaining--
	}
	return Guard{tracker: f.tracker, held: true}, true
}

// Guard represents ownership of exactly one reserved slot in a Tracker. It
// must be released exactly once, either explicitly via Release or by being
// embedded in a SamplePtr that releases it on Close. Go has no destructive
// move, so a released Guard is simply marked held=false and Release becomes
// a no-op; double-release is therefore safe by construction as long as
// callers only reach Release through Guard's own methods.
type Guard struct {
	tracker *Tracker
	held    bool
}

// Release returns the reserved slot to the tracker. Calling Release on a
// zero-value or already-released Guard is a no-op.
func (g *Guard) Release() {
	if !g.held {
		return
	}
	g.held = false
	g.tracker.deallocate()
}

// Valid reports whether this guard still holds a reservation.
func (g *Guard) Valid() bool {
	return g.held
}
