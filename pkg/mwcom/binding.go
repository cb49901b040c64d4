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

// SubscriptionState models the three states an event can be in from the
// proxy's point of view. The binding is the only thing allowed to move a
// subscription from SubscriptionPending to Subscribed, since that
// transition depends on transport-specific connection establishment.
type SubscriptionState int

const (
	// NotSubscribed is the initial state and the state after Unsubscribe.
	NotSubscribed SubscriptionState = iota
	// SubscriptionPending means Subscribe was called but the binding has
	// not yet confirmed the subscription is active.
	SubscriptionPending
	// Subscribed means samples may be polled or delivered via handler.
	Subscribed
)

func (s SubscriptionState) String() string {
	switch s {
	case NotSubscribed:
		return "NotSubscribed"
	case SubscriptionPending:
		return "SubscriptionPending"
	case Subscribed:
		return "Subscribed"
	default:
		return "Unknown"
	}
}

// BindingType identifies which transport implementation backs an event.
// The FFI shim and tracing hooks use this to tag spans and registry
// entries without importing the concrete binding package.
type BindingType int

const (
	BindingTypeUnknown BindingType = iota
	BindingTypeSharedMemory
	BindingTypeMock
)

func (b BindingType) String() string {
	switch b {
	case BindingTypeSharedMemory:
		return "SharedMemory"
	case BindingTypeMock:
		return "Mock"
	default:
		return "Unknown"
	}
}

// EventBindingBase is the part of an event binding's contract that does
// not depend on the sample's concrete Go type. ProxyEventBase holds one of
// these and drives the subscription state machine through it.
type EventBindingBase interface {
	// Subscribe asks the binding to establish (or re-establish) a
	// subscription with room for at most maxSampleCount in-flight samples.
	Subscribe(maxSampleCount uint16) error
	// Unsubscribe tears down the subscription. Must not be called while
	// any SamplePtr drawn from this binding is still open.
	Unsubscribe()
	// GetSubscriptionState reports the binding's current view of the
	// subscription.
	GetSubscriptionState() SubscriptionState
	// GetMaxSampleCount returns the max sample count last negotiated via
	// Subscribe, or ok=false if not currently subscribed.
	GetMaxSampleCount() (count uint16, ok bool)
	// GetNumNewSamplesAvailable reports how many samples are waiting to be
	// collected via GetNewSamples.
	GetNumNewSamplesAvailable() (uint, error)
	// SetReceiveHandler installs handler to be invoked whenever new
	// samples become available. Replaces any previously installed handler.
	SetReceiveHandler(handler *ScopedReceiveHandler) error
	// UnsetReceiveHandler removes a previously installed receive handler.
	UnsetReceiveHandler() error
	// GetBindingType identifies the concrete transport.
	GetBindingType() BindingType
	// NotifyServiceInstanceChangedAvailability is invoked by service
	// discovery when the providing instance appears or disappears;
	// available reports the new state and providerPID identifies the
	// provider process when available is true.
	NotifyServiceInstanceChangedAvailability(available bool, providerPID int)
}

// EventBinding is the typed transport contract for one event of sample
// type T, used by ProxyEvent[T]/ProxyField[T].
type EventBinding[T any] interface {
	EventBindingBase

	// GetNewSamples drains up to the number of guards tracker can supply,
	// invoking receiver once per sample in delivery order, and returns how
	// many samples were delivered.
	GetNewSamples(tracker GuardFactory, receiver func(SamplePtr[T])) (uint, error)
}

// GenericEventBinding is the type-erased transport contract used by
// GenericProxyEvent, where the payload's Go type is not known at compile
// time (for example when bridged through the FFI shim).
type GenericEventBinding interface {
	EventBindingBase

	// GetNewSamples behaves like EventBinding.GetNewSamples but delivers
	// Opaque payloads.
	GetNewSamples(tracker GuardFactory, receiver func(SamplePtr[Opaque])) (uint, error)
	// GetSampleSize returns the size in bytes of one serialized sample.
	GetSampleSize() uint
	// HasSerializedFormat reports whether samples delivered by this
	// binding carry a defined serialized wire format (as opposed to a raw
	// in-memory layout only meaningful within one shared-memory domain).
	HasSerializedFormat() bool
}
