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

package iceoryx2binding

import (
	"errors"
	"sync"
	"time"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
)

// handlerPollInterval is the tick period of the receive-handler goroutine
// (pollLoop), which takes at most one sample from the subscriber per tick
// and then invokes the handler. There is no push notification, so a new
// sample waits at least until the next tick before the handler sees it.
const handlerPollInterval = 2 * time.Millisecond

// EventBinding is the real shared-memory mwcom.EventBinding[T], backed by
// an iceoryx2 publish-subscribe service. Subscribe opens a Subscriber over
// portFactory; GetNewSamples copies each pending Sample's payload into
// Go-owned memory and releases the shared-memory slot immediately, trading
// true zero-copy for compatibility with Guard, which has no per-sample
// release callback.
type EventBinding[T any] struct {
	mu sync.Mutex

	portFactory *PortFactoryPubSub
	subscriber  *Subscriber

	state          mwcom.SubscriptionState
	maxSampleCount uint16

	queue   []*Sample
	handler *mwcom.ScopedReceiveHandler
	stop    chan struct{}
}

// NewEventBinding wraps portFactory, the already opened or created
// publish-subscribe service an event's proxy was constructed against.
func NewEventBinding[T any](portFactory *PortFactoryPubSub) *EventBinding[T] {
	return &EventBinding[T]{portFactory: portFactory, state: mwcom.NotSubscribed}
}

func (b *EventBinding[T]) Subscribe(maxSampleCount uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != mwcom.NotSubscribed {
		return mwcom.ErrAlreadySubscribed
	}
	sub, err := b.portFactory.SubscriberBuilder().BufferSize(uint64(maxSampleCount)).Create()
	if err != nil {
		return errors.New("iceoryx2binding: subscriber create failed: " + err.Error())
	}
	b.subscriber = sub
	b.maxSampleCount = maxSampleCount
	b.state = mwcom.Subscribed
	return nil
}

func (b *EventBinding[T]) Unsubscribe() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopHandlerLocked()
	for _, s := range b.queue {
		s.Close()
	}
	b.queue = nil
	if b.subscriber != nil {
		b.subscriber.Close()
		b.subscriber = nil
	}
	b.state = mwcom.NotSubscribed
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

// drainLocked pulls every currently pending sample out of the subscriber's
// buffer into the local queue. Receive never blocks: it reports ErrNoData
// once the buffer is empty.
func (b *EventBinding[T]) drainLocked() {
	if b.subscriber == nil {
		return
	}
	for {
		sample, err := b.subscriber.Receive()
		if err != nil {
			return
		}
		b.queue = append(b.queue, sample)
	}
}

func (b *EventBinding[T]) GetNumNewSamplesAvailable() (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != mwcom.Subscribed {
		return 0, mwcom.ErrNotSubscribed
	}
	b.drainLocked()
	return uint(len(b.queue)), nil
}

func (b *EventBinding[T]) SetReceiveHandler(handler *mwcom.ScopedReceiveHandler) error {
	b.mu.Lock()
	if b.subscriber == nil {
		b.mu.Unlock()
		return mwcom.ErrNotSubscribed
	}
	b.stopHandlerLocked()

	stop := make(chan struct{})
	b.stop = stop
	b.handler = handler
	sub := b.subscriber
	b.mu.Unlock()

	go b.pollLoop(sub, handler, stop)
	return nil
}

// pollLoop is the single dedicated delivery goroutine this binding owns for
// the lifetime of one installed receive handler: it is the only goroutine
// that appends to queue on the handler path, matching the documented
// constraint that handlers run serially from one goroutine per event.
func (b *EventBinding[T]) pollLoop(sub *Subscriber, handler *mwcom.ScopedReceiveHandler, stop chan struct{}) {
	ticker := time.NewTicker(handlerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sample, err := sub.Receive()
			if err != nil {
				continue
			}
			b.mu.Lock()
			b.queue = append(b.queue, sample)
			b.mu.Unlock()
			handler.Invoke()
		}
	}
}

func (b *EventBinding[T]) stopHandlerLocked() {
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	b.handler = nil
}

func (b *EventBinding[T]) UnsetReceiveHandler() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == nil {
		return mwcom.ErrHandlerNotRegistered
	}
	b.stopHandlerLocked()
	return nil
}

func (b *EventBinding[T]) GetBindingType() mwcom.BindingType {
	return mwcom.BindingTypeSharedMemory
}

func (b *EventBinding[T]) NotifyServiceInstanceChangedAvailability(available bool, providerPID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case available && b.state == mwcom.SubscriptionPending:
		b.state = mwcom.Subscribed
	case !available && b.state == mwcom.Subscribed:
		b.state = mwcom.SubscriptionPending
	}
}

// GetNewSamples drains up to tracker's budget, in FIFO arrival order,
// copying each sample's payload out of shared memory into a T value before
// releasing the underlying Sample.
func (b *EventBinding[T]) GetNewSamples(tracker mwcom.GuardFactory, receiver func(mwcom.SamplePtr[T])) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != mwcom.Subscribed {
		return 0, mwcom.ErrNotSubscribed
	}
	b.drainLocked()

	var delivered uint
	for len(b.queue) > 0 {
		guard, ok := tracker.TakeGuard()
		if !ok {
			break
		}
		sample := b.queue[0]
		b.queue = b.queue[1:]

		value := *PayloadAs[T](sample)
		sample.Close()

		ptr := mwcom.NewSamplePtr(&value, &guard)
		receiver(ptr)
		delivered++
	}
	return delivered, nil
}
