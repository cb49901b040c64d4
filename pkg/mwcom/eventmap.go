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

// EventMap is a string-keyed, insertion-ordered container generic over its
// value type, used by ProxyBase to hold one entry per registered service
// element (event or field) name. Insertion order is preserved so that
// diagnostics and the FFI shim's iteration order are stable and
// deterministic across runs.
type EventMap[V any] struct {
	mu     sync.RWMutex
	order  []string
	values map[string]V
}

// NewEventMap returns an empty map.
func NewEventMap[V any]() *EventMap[V] {
	return &EventMap[V]{values: make(map[string]V)}
}

// Insert adds name/value if name is not already present, returning false
// without modifying the map if it is.
func (m *EventMap[V]) Insert(name string, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.values[name]; exists {
		return false
	}
	m.values[name] = value
	m.order = append(m.order, name)
	return true
}

// Get looks up name.
func (m *EventMap[V]) Get(name string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	return v, ok
}

// Names returns all registered names in insertion order.
func (m *EventMap[V]) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of registered entries.
func (m *EventMap[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
