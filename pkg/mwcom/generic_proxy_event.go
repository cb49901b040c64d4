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

// GenericProxyEvent is the type-erased proxy-side facade, used when the
// sample's concrete Go type is not known at compile time (generic tooling,
// the FFI shim). It holds a GenericEventBinding directly rather than
// downcasting from a common binding pointer, since Go interfaces make the
// "two separate traits" design literal instead of requiring a dynamic_cast.
type GenericProxyEvent struct {
	*ProxyEventBase
	binding GenericEventBinding
}

// NewGenericProxyEventWithBinding builds a generic proxy event directly
// over binding. This is the test-only constructor: production code goes
// through NewGenericProxyEvent, which asks the parent proxy's binding for
// the generic event binding of that name.
func NewGenericProxyEventWithBinding(name string, binding GenericEventBinding) *GenericProxyEvent {
	return &GenericProxyEvent{
		ProxyEventBase: NewProxyEventBase(name, binding),
		binding:        binding,
	}
}

// NewGenericProxyEvent asks proxy's binding for the generic event binding
// named name and wraps it. Returns ErrEventNotFound if the binding has none
// under that name; the names added with ProxyBase.RegisterEvent are not
// consulted.
func NewGenericProxyEvent(proxy *ProxyBase, name string) (*GenericProxyEvent, error) {
	binding, ok := proxy.genericBinding(name)
	if !ok {
		return nil, WrapError("NewGenericProxyEvent", name, ErrEventNotFound)
	}
	return NewGenericProxyEventWithBinding(name, binding), nil
}

// GetSampleSize returns the size in bytes of one serialized sample.
func (e *GenericProxyEvent) GetSampleSize() uint {
	return e.binding.GetSampleSize()
}

// HasSerializedFormat reports whether this event's samples carry a defined
// serialized wire format.
func (e *GenericProxyEvent) HasSerializedFormat() bool {
	return e.binding.HasSerializedFormat()
}

// GetNewSamples delivers up to maxNumSamples newly available samples,
// erased as Opaque payloads, to receiver, and returns how many were
// delivered. Returns ErrNotSubscribed unless the event is currently
// Subscribed, and ErrTrackerExhausted, without calling the binding, when no
// guard can be taken (the sample budget is used up or maxNumSamples is 0).
func (e *GenericProxyEvent) GetNewSamples(ctx context.Context, receiver func(SamplePtr[Opaque]), maxNumSamples uint16) (uint, error) {
	_, span := e.tracer.StartGetNewSamples(ctx, e.name, maxNumSamples)
	defer span.End()

	base, err := e.guardFactory()
	if err != nil {
		return 0, WrapError("GenericProxyEvent.GetNewSamples", e.name, err)
	}
	factory := NewBoundedGuardFactory(base.tracker, maxNumSamples)
	if factory.NumAvailableGuards() == 0 {
		if base.tracker.NumAvailable() == 0 {
			e.recorder.TrackerExhausted(e.name)
		}
		return 0, WrapError("GenericProxyEvent.GetNewSamples", e.name, ErrTrackerExhausted)
	}

	delivered, err := e.binding.GetNewSamples(factory, receiver)
	if err != nil {
		return delivered, WrapError("GenericProxyEvent.GetNewSamples", e.name, err)
	}
	if delivered > 0 {
		e.recorder.SamplesDelivered(e.name, delivered)
	} else if factory.NumAvailableGuards() == 0 && base.tracker.NumAvailable() == 0 {
		e.recorder.TrackerExhausted(e.name)
	}
	return delivered, nil
}
