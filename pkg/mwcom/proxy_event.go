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

import "context"

// ProxyEvent is the typed proxy-side facade for one event of sample type
// T: subscription lifecycle is inherited from ProxyEventBase, and
// GetNewSamples drains the binding's typed delivery path.
type ProxyEvent[T any] struct {
	*ProxyEventBase
	binding EventBinding[T]
}

// NewProxyEvent creates a typed proxy event named name over binding.
func NewProxyEvent[T any](name string, binding EventBinding[T]) *ProxyEvent[T] {
	return &ProxyEvent[T]{
		ProxyEventBase: NewProxyEventBase(name, binding),
		binding:        binding,
	}
}

// GetNewSamples delivers up to maxNumSamples newly available samples to
// receiver, in arrival order, and returns how many were delivered.
// Returns ErrNotSubscribed unless the event is currently Subscribed, and
// ErrTrackerExhausted, without calling the binding, when no guard can be
// taken (the sample budget is used up or maxNumSamples is 0).
func (e *ProxyEvent[T]) GetNewSamples(ctx context.Context, receiver func(SamplePtr[T]), maxNumSamples uint16) (uint, error) {
	_, span := e.tracer.StartGetNewSamples(ctx, e.name, maxNumSamples)
	defer span.End()

	base, err := e.guardFactory()
	if err != nil {
		return 0, WrapError("ProxyEvent.GetNewSamples", e.name, err)
	}
	factory := NewBoundedGuardFactory(base.tracker, maxNumSamples)
	if factory.NumAvailableGuards() == 0 {
		if base.tracker.NumAvailable() == 0 {
			e.recorder.TrackerExhausted(e.name)
		}
		return 0, WrapError("ProxyEvent.GetNewSamples", e.name, ErrTrackerExhausted)
	}

	delivered, err := e.binding.GetNewSamples(factory, receiver)
	if err != nil {
		return delivered, WrapError("ProxyEvent.GetNewSamples", e.name, err)
	}
	if delivered > 0 {
		e.recorder.SamplesDelivered(e.name, delivered)
	} else if factory.NumAvailableGuards() == 0 && base.tracker.NumAvailable() == 0 {
		e.recorder.TrackerExhausted(e.name)
	}
	return delivered, nil
}
