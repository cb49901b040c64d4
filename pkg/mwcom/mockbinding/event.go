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

package mockbinding

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
)

// EventBinding is a fake mwcom.EventBinding[T] backed by an in-memory FIFO
// of pushed samples. It implements the full EventBindingBase contract so
// it can also drive ProxyEventBase's subscription state machine directly.
type EventBinding[T any] struct {
	mu sync.Mutex

	state          mwcom.SubscriptionState
	maxSampleCount uint16
	fakeSamples    []T
	handler        *mwcom.ScopedReceiveHandler

	// FailSubscribe, when non-nil, is returned by the next Subscribe call
	// instead of succeeding, and then cleared.
	FailSubscribe error
}

// NewEventBinding returns an unsubscribed fake binding.
func NewEventBinding[T any]() *EventBinding[T] {
	return &EventBinding[T]{state: mwcom.NotSubscribed}
}

// PushFakeSample appends sample to the FIFO delivered by the next
// GetNewSamples call. If a receive handler is currently installed, it is
// invoked synchronously to simulate the binding's notification path.
func (b *EventBinding[T]) PushFakeSample(sample T) {
	b.mu.Lock()
	b.fakeSamples = append(b.fakeSamples, sample)
	handler := b.handler
	b.mu.Unlock()

	handler.Invoke()
}

func (b *EventBinding[T]) Subscribe(maxSampleCount uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailSubscribe != nil {
		err := errors.Wrap(b.FailSubscribe, "mockbinding: Subscribe failed")
		b.FailSubscribe = nil
		return err
	}
	b.state = mwcom.Subscribed
	b.maxSampleCount = maxSampleCount
	return nil
}

func (b *EventBinding[T]) Unsubscribe() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = mwcom.NotSubscribed
	b.fakeSamples = nil
}

func (b *EventBinding[T]) GetSubscriptionState() mwcom.SubscriptionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *EventBinding[T]) GetMaxSampleCount() (uint16, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != mwcom.Subscribed {
		return 0, false
	}
	return b.maxSampleCount, true
}

func (b *EventBinding[T]) GetNumNewSamplesAvailable() (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint(len(b.fakeSamples)), nil
}

func (b *EventBinding[T]) SetReceiveHandler(handler *mwcom.ScopedReceiveHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
	return nil
}

func (b *EventBinding[T]) UnsetReceiveHandler() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == nil {
		return mwcom.ErrHandlerNotRegistered
	}
	b.handler = nil
	return nil
}

func (b *EventBinding[T]) GetBindingType() mwcom.BindingType {
	return mwcom.BindingTypeMock
}

func (b *EventBinding[T]) NotifyServiceInstanceChangedAvailability(available bool, providerPID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if available {
		b.state = mwcom.Subscribed
		return
	}
	b.state = mwcom.SubscriptionPending
}

// GetNewSamples drains up to tracker's budget from the fake FIFO, in FIFO
// order, handing each sample a freshly taken Guard.
func (b *EventBinding[T]) GetNewSamples(tracker mwcom.GuardFactory, receiver func(mwcom.SamplePtr[T])) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var delivered uint
	for len(b.fakeSamples) > 0 {
		guard, ok := tracker.TakeGuard()
		if !ok {
			break
		}
		sample := b.fakeSamples[0]
		b.fakeSamples = b.fakeSamples[1:]
		ptr := mwcom.NewSamplePtr(&sample, &guard)
		receiver(ptr)
		delivered++
	}
	return delivered, nil
}
