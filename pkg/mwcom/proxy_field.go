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

// ProxyField is the proxy-side facade for a field: a service element with
// the same subscribe/poll/handler semantics as an event, plus (on the
// skeleton side, out of scope here) an initial-value-on-subscribe
// guarantee. Per the design decision recorded for this middleware, a field
// is treated as an event with no additional proxy-side state: it embeds
// one ProxyEvent[T] and forwards every call to it by embedding rather than
// by hand-written passthrough methods.
type ProxyField[T any] struct {
	*ProxyEvent[T]
}

// NewProxyField creates a field named name over binding.
func NewProxyField[T any](name string, binding EventBinding[T]) *ProxyField[T] {
	return &ProxyField[T]{ProxyEvent: NewProxyEvent[T](name, binding)}
}
