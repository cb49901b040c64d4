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

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the subscription state machine, the sample
// budget and the event bindings. Callers should compare against these with
// errors.Is rather than matching on OpError's message text.
var (
	// ErrNotSubscribed is returned when an operation that requires an active
	// subscription (GetNewSamples, GetNumNewSamplesAvailable) is invoked
	// while the event is NotSubscribed or SubscriptionPending.
	ErrNotSubscribed = errors.New("mwcom: event is not subscribed")

	// ErrMaxSampleCountNotRealizable is returned by ProxyEventBase.Subscribe
	// when the event is already Subscribed or SubscriptionPending with a
	// different max sample count.
	ErrMaxSampleCountNotRealizable = errors.New("mwcom: requested max sample count is not realizable")

	// ErrSetHandlerFailure is returned when a binding fails to install a
	// receive handler, for example because the underlying transport does
	// not support handler-driven notification in the current state.
	ErrSetHandlerFailure = errors.New("mwcom: failed to set receive handler")

	// ErrUnsetHandlerFailure is returned when a binding fails to remove a
	// previously installed receive handler.
	ErrUnsetHandlerFailure = errors.New("mwcom: failed to unset receive handler")

	// ErrBindingFailure wraps an opaque failure reported by the underlying
	// transport binding (e.g. shared memory segment unavailable).
	ErrBindingFailure = errors.New("mwcom: binding operation failed")

	// ErrAlreadySubscribed is returned by ProxyEventBase.Subscribe when the
	// event is already Subscribed or SubscriptionPending with the same max
	// sample count, and by a binding's Subscribe when it already holds a
	// subscription.
	ErrAlreadySubscribed = errors.New("mwcom: event is already subscribed")

	// ErrTrackerExhausted is returned by GetNewSamples when no guard can be
	// taken: the sample budget has no available guards left, or
	// maxNumSamples is 0. GuardFactory.TakeGuard itself reports exhaustion
	// with ok=false.
	ErrTrackerExhausted = errors.New("mwcom: sample reference tracker exhausted")

	// ErrHandlerNotRegistered is returned by a binding's UnsetReceiveHandler
	// when no handler is currently installed. ProxyEventBase.UnsetReceiveHandler
	// returns nil in that case without calling the binding.
	ErrHandlerNotRegistered = errors.New("mwcom: no receive handler is registered")

	// ErrEventNotFound is returned by NewGenericProxyEvent when the proxy's
	// binding has no generic event binding under the requested name.
	ErrEventNotFound = errors.New("mwcom: event not registered on proxy")

	// ErrEventAlreadyRegistered is returned by ProxyBase.RegisterEvent when
	// an event of that name is already present.
	ErrEventAlreadyRegistered = errors.New("mwcom: event already registered on proxy")
)

// OpError annotates a sentinel error with the operation and event/service
// context in which it occurred, mirroring a contextual-error pattern: the
// sentinel stays comparable via errors.Is/errors.As while the message
// carries enough context for logs and test failures to be self-explanatory.
type OpError struct {
	// Op names the failing operation, e.g. "ProxyEvent.Subscribe".
	Op string
	// Event, if non-empty, names the event or field the operation targeted.
	Event string
	// Err is the underlying sentinel error.
	Err error
}

func (e *OpError) Error() string {
	if e.Event != "" {
		return fmt.Sprintf("%s(%s): %v", e.Op, e.Event, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// WrapError builds an OpError for the given operation and sentinel error.
// event may be empty when the operation is not tied to a single event.
func WrapError(op, event string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Event: event, Err: err}
}
