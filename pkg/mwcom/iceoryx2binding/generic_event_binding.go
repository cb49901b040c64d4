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

// GenericEventBinding is the type-erased counterpart of EventBinding[T],
// used by GenericProxyEvent and the FFI shim where the payload's Go type
// is not known at compile time. Payloads are copied into Opaque byte
// slices rather than read in place, for the same reason EventBinding[T]
// copies: Guard has no per-sample release hook to tie to a later Close.
type GenericEventBinding struct {
	mu sync.Mutex

	portFactory *PortFactoryPubSub
	subscriber  *Subscriber

	state            mwcom.SubscriptionState
	maxSampleCount   uint16
	sampleSize       uint
	serializedFormat bool

	queue   []*Sample
	handler *mwcom.ScopedReceiveHandler
	stop    chan struct{}
}

// NewGenericEventBinding wraps portFactory. sampleSize and
// hasSerializedFormat are reported verbatim by GetSampleSize/
// HasSerializedFormat.
func NewGenericEventBinding(portFactory *PortFactoryPubSub, sampleSize uint, hasSerializedFormat bool) *GenericEventBinding {
	return &GenericEventBinding{
		portFactory:      portFactory,
		state:            mwcom.NotSubscribed,
		sampleSize:       sampleSize,
		serializedFormat: hasSerializedFormat,
	}
}

func (b *GenericEventBinding) Subscribe(maxSampleCount uint16) error {
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

func (b *GenericEventBinding) Unsubscribe() {
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

func (b *GenericEventBinding) GetSubscriptionState() mwcom.SubscriptionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *GenericEventBinding) GetMaxSampleCount() (uint16, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != mwcom.Subscribed {
		return 0, false
	}
	return b.maxSampleCount, true
}

func (b *GenericEventBinding) drainLocked() {
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

func (b *GenericEventBinding) GetNumNewSamplesAvailable() (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != mwcom.Subscribed {
		return 0, mwcom.ErrNotSubscribed
	}
	b.drainLocked()
	return uint(len(b.queue)), nil
}

func (b *GenericEventBinding) SetReceiveHandler(handler *mwcom.ScopedReceiveHandler) error {
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

func (b *GenericEventBinding) pollLoop(sub *Subscriber, handler *mwcom.ScopedReceiveHandler, stop chan struct{}) {
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

func (b *GenericEventBinding) stopHandlerLocked() {
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	b.handler = nil
}

func (b *GenericEventBinding) UnsetReceiveHandler() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == nil {
		return mwcom.ErrHandlerNotRegistered
	}
	b.stopHandlerLocked()
	return nil
}

func (b *GenericEventBinding) GetBindingType() mwcom.BindingType {
	return mwcom.BindingTypeSharedMemory
}

func (b *GenericEventBinding) NotifyServiceInstanceChangedAvailability(available bool, providerPID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case available && b.state == mwcom.SubscriptionPending:
		b.state = mwcom.Subscribed
	case !available && b.state == mwcom.Subscribed:
		b.state = mwcom.SubscriptionPending
	}
}

func (b *GenericEventBinding) GetSampleSize() uint {
	return b.sampleSize
}

func (b *GenericEventBinding) HasSerializedFormat() bool {
	return b.serializedFormat
}

// GetNewSamples drains up to tracker's budget, copying each sample's raw
// payload bytes into an Opaque before releasing the underlying Sample.
func (b *GenericEventBinding) GetNewSamples(tracker mwcom.GuardFactory, receiver func(mwcom.SamplePtr[mwcom.Opaque])) (uint, error) {
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

		raw := append([]byte(nil), sample.Payload()...)
		sample.Close()

		opaque := mwcom.NewOpaque(raw)
		ptr := mwcom.NewSamplePtr(&opaque, &guard)
		receiver(ptr)
		delivered++
	}
	return delivered, nil
}
