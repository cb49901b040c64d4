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

import "sync"

// Scope gates a ScopedReceiveHandler's callability and guarantees, once
// Expire returns, that no invocation of that handler is in flight and none
// will start afterwards. It is the Go stand-in for a synchronously
// expirable C++ scope: instead of a thread-local "currently inside the
// handler" flag, it uses an RWMutex the handler call itself holds for
// reading, so Expire (taking the write lock) blocks until any concurrent
// invocation returns, mirroring how the teacher binding's Close() methods
// wait out in-flight calls before tearing down a handle.
type Scope struct {
	mu      sync.RWMutex
	expired bool
}

// NewScope creates a live scope.
func NewScope() *Scope {
	return &Scope{}
}

// Expire marks the scope expired and blocks until any handler invocation
// currently in flight returns. After Expire returns, every subsequent call
// attempt observes the scope as expired and does not run the handler.
// Expire is idempotent.
func (s *Scope) Expire() {
	s.mu.Lock()
	s.expired = true
	s.mu.Unlock()
}

// tryEnter attempts to enter the scope for the duration of one handler
// invocation. It returns a release function to call when done, or ok=false
// if the scope is already expired.
func (s *Scope) tryEnter() (release func(), ok bool) {
	s.mu.RLock()
	if s.expired {
		s.mu.RUnlock()
		return nil, false
	}
	return s.mu.RUnlock, true
}

// ScopedReceiveHandler couples a callback to a Scope: calling it through
// Invoke is a no-op once the scope has expired, and Invoke never races
// with Expire — either Invoke sees the scope already expired and does
// nothing, or Expire blocks until Invoke's call returns.
type ScopedReceiveHandler struct {
	scope *Scope
	fn    func()
}

// NewScopedReceiveHandler binds fn to scope. fn should be fast: it runs
// synchronously on whatever goroutine the binding uses to deliver
// notifications, and a slow handler delays Expire for every caller racing
// it.
func NewScopedReceiveHandler(scope *Scope, fn func()) *ScopedReceiveHandler {
	return &ScopedReceiveHandler{scope: scope, fn: fn}
}

// Invoke calls the underlying callback if the scope has not expired.
// Bindings call this from their notification-delivery goroutine; it must
// never be called concurrently with itself for the same handler, since the
// spec models receive-handler delivery as strictly serial per event.
func (h *ScopedReceiveHandler) Invoke() {
	if h == nil {
		return
	}
	release, ok := h.scope.tryEnter()
	if !ok {
		return
	}
	defer release()
	h.fn()
}
