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

// GenericEventBinding is a fake mwcom.GenericEventBinding, used to test and
// demonstrate GenericProxyEvent without depending on a concrete sample
// type.
type GenericEventBinding struct {
	mu sync.Mutex

	state          mwcom.SubscriptionState
	maxSampleCount uint16
	fakeSamples    [][]byte
	handler        *mwcom.ScopedReceiveHandler

	SampleSize          uint
	SerializedFormat     bool
	FailSubscribe       error
}

// NewGenericEventBinding returns an unsubscribed fake erased binding that
// reports sampleSize-byte samples.
func NewGenericEventBinding(sampleSize uint, hasSerializedFormat bool) *GenericEventBinding {
	return &GenericEventBinding{
		state:            mwcom.NotSubscribed,
		SampleSize:       sampleSize,
		SerializedFormat: hasSerializedFormat,
	}
}

// PushFakeSample appends raw to the FIFO delivered by the next
// GetNewSamples call, and fires any installed receive handler.
func (b *GenericEventBinding) PushFakeSample(raw []byte) {
	b.mu.Lock()
	b.fakeSamples = append(b.fakeSamples, raw)
	handler := b.handler
	b.mu.Unlock()

	handler.Invoke()
}

func (b *GenericEventBinding) Subscribe(maxSampleCount uint16) error {
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

func (b *GenericEventBinding) Unsubscribe() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = mwcom.NotSubscribed
	b.fakeSamples = nil
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

func (b *GenericEventBinding) GetNumNewSamplesAvailable() (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint(len(b.fakeSamples)), nil
}

func (b *GenericEventBinding) SetReceiveHandler(handler *mwcom.ScopedReceiveHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
	return nil
}

func (b *GenericEventBinding) UnsetReceiveHandler() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == nil {
		return mwcom.ErrHandlerNotRegistered
	}
	b.handler = nil
	return nil
}

func (b *GenericEventBinding) GetBindingType() mwcom.BindingType {
	return mwcom.BindingTypeMock
}

func (b *GenericEventBinding) NotifyServiceInstanceChangedAvailability(available bool, providerPID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if available {
		b.state = mwcom.Subscribed
		return
	}
	b.state = mwcom.SubscriptionPending
}

func (b *GenericEventBinding) GetSampleSize() uint {
	return b.SampleSize
}

func (b *GenericEventBinding) HasSerializedFormat() bool {
	return b.SerializedFormat
}

// GetNewSamples drains up to tracker's budget from the fake FIFO, in FIFO
// order, wrapping each raw payload as an Opaque sample.
func (b *GenericEventBinding) GetNewSamples(tracker mwcom.GuardFactory, receiver func(mwcom.SamplePtr[mwcom.Opaque])) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var delivered uint
	for len(b.fakeSamples) > 0 {
		guard, ok := tracker.TakeGuard()
		if !ok {
			break
		}
		raw := b.fakeSamples[0]
		b.fakeSamples = b.fakeSamples[1:]
		opaque := mwcom.NewOpaque(raw)
		ptr := mwcom.NewSamplePtr(&opaque, &guard)
		receiver(ptr)
		delivered++
	}
	return delivered, nil
}
