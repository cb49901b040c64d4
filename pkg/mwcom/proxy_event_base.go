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
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom/comlog"
	"github.com/eclipse-score/mw-com-go/pkg/mwcom/telemetry"
	"github.com/eclipse-score/mw-com-go/pkg/mwcom/tracing"
)

// ProxyEventBase is the binding-independent half of a proxy event: the
// subscription state machine, the sample budget tracker and the receive
// handler scope. ProxyEvent[T], ProxyField[T] and GenericProxyEvent each
// embed one, layering the binding's sample type on top.
type ProxyEventBase struct {
	name    string
	binding EventBindingBase

	mu      sync.Mutex
	tracker *Tracker
	state   SubscriptionState
	scope   *Scope

	tracer   tracing.Provider
	recorder telemetry.Recorder
}

// NewProxyEventBase constructs the subscription state machine for one
// event identified by name, over the given binding. The tracer and recorder
// default to tracing.NoopProvider() and telemetry.NoopRecorder{}; WithTracing
// and WithRecorder replace them. The call sites use them without nil-checks,
// so a zero tracing.Provider{} or a nil recorder must not be passed.
func NewProxyEventBase(name string, binding EventBindingBase) *ProxyEventBase {
	return &ProxyEventBase{
		name:     name,
		binding:  binding,
		state:    NotSubscribed,
		tracer:   tracing.NoopProvider(),
		recorder: telemetry.NoopRecorder{},
	}
}

// WithTracing overrides the tracing provider used for this event's spans.
func (b *ProxyEventBase) WithTracing(p tracing.Provider) *ProxyEventBase {
	b.tracer = p
	return b
}

// WithRecorder overrides the telemetry recorder used for this event.
func (b *ProxyEventBase) WithRecorder(r telemetry.Recorder) *ProxyEventBase {
	b.recorder = r
	return b
}

// Name returns the event's name as registered on its owning proxy.
func (b *ProxyEventBase) Name() string {
	return b.name
}

// BindingType identifies the concrete transport backing this event.
func (b *ProxyEventBase) BindingType() BindingType {
	return b.binding.GetBindingType()
}

// IsBindingValid reports whether this event still has a usable binding,
// e.g. after the providing service instance has gone away.
func (b *ProxyEventBase) IsBindingValid() bool {
	return b.binding != nil
}

// Subscribe asks the binding to establish a subscription with room for at
// most maxSampleCount in-flight samples, and creates a fresh sample budget
// tracker of that size. Calling Subscribe while already Subscribed or
// SubscriptionPending returns ErrAlreadySubscribed for the same
// maxSampleCount and ErrMaxSampleCountNotRealizable for a different one;
// in both cases the binding is not called.
func (b *ProxyEventBase) Subscribe(ctx context.Context, maxSampleCount uint16) error {
	_, span := b.tracer.StartSubscribe(ctx, b.name, maxSampleCount)
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != NotSubscribed {
		if b.tracker != nil && b.tracker.MaxSamples() != maxSampleCount {
			return WrapError("ProxyEventBase.Subscribe", b.name, ErrMaxSampleCountNotRealizable)
		}
		return WrapError("ProxyEventBase.Subscribe", b.name, ErrAlreadySubscribed)
	}

	b.state = SubscriptionPending
	if err := b.binding.Subscribe(maxSampleCount); err != nil {
		b.state = NotSubscribed
		return WrapError("ProxyEventBase.Subscribe", b.name, err)
	}
	b.tracker = NewTracker(maxSampleCount)
	b.state = b.binding.GetSubscriptionState()
	if b.state == NotSubscribed {
		// A binding may confirm synchronously; treat as Subscribed unless
		// it explicitly reports otherwise.
		b.state = Subscribed
	}
	b.recorder.SubscriptionStateChanged(b.name, b.state == Subscribed)
	return nil
}

// Unsubscribe tears down the subscription. It refuses to do so, and
// terminates the process, while any SamplePtr this event produced is still
// open — a held SamplePtr after the binding releases its shared-memory
// segment is a dangling read, which cannot be allowed to happen silently.
func (b *ProxyEventBase) Unsubscribe(ctx context.Context) {
	_, span := b.tracer.StartUnsubscribe(ctx, b.name)
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == NotSubscribed {
		return
	}
	if b.tracker != nil && b.tracker.IsUsed() {
		comlog.Terminate("called unsubscribe while still holding SamplePtr instances, terminating",
			zap.String("event", b.name))
	}
	if b.scope != nil {
		b.scope.Expire()
		b.scope = nil
	}
	b.binding.Unsubscribe()
	b.tracker = nil
	b.state = NotSubscribed
	b.recorder.SubscriptionStateChanged(b.name, false)
}

// Close releases resources held by this event. Per the same liveness
// contract as Unsubscribe, destroying an event while SamplePtr instances
// it produced are still open terminates the process rather than leaking or
// racing a shared-memory unmap.
func (b *ProxyEventBase) Close() {
	b.mu.Lock()
	tracker := b.tracker
	scope := b.scope
	b.mu.Unlock()

	if tracker != nil && tracker.IsUsed() {
		comlog.Terminate("proxy event instance destroyed while still holding SamplePtr instances, terminating",
			zap.String("event", b.name))
	}
	if scope != nil {
		scope.Expire()
	}
}

// GetSubscriptionState reports the current subscription state.
func (b *ProxyEventBase) GetSubscriptionState() SubscriptionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// MaxSampleCount returns the max sample count negotiated by the last
// successful Subscribe call, or ok=false if not currently subscribed.
func (b *ProxyEventBase) MaxSampleCount() (count uint16, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tracker == nil {
		return 0, false
	}
	return b.tracker.MaxSamples(), true
}

// GetFreeSampleCount reports how many slots in the sample budget are
// currently unallocated.
func (b *ProxyEventBase) GetFreeSampleCount() (uint16, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tracker == nil {
		return 0, false
	}
	return b.tracker.NumAvailable(), true
}

// GetNumNewSamplesAvailable reports how many samples are waiting to be
// collected, or ErrNotSubscribed if the event is not currently Subscribed.
func (b *ProxyEventBase) GetNumNewSamplesAvailable() (uint, error) {
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()

	if state != Subscribed {
		return 0, WrapError("ProxyEventBase.GetNumNewSamplesAvailable", b.name, ErrNotSubscribed)
	}
	n, err := b.binding.GetNumNewSamplesAvailable()
	if err != nil {
		return 0, WrapError("ProxyEventBase.GetNumNewSamplesAvailable", b.name, err)
	}
	return n, nil
}

// guardFactory returns a GuardFactory over the current tracker, and an
// error if the event is not currently Subscribed.
func (b *ProxyEventBase) guardFactory() (GuardFactory, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Subscribed || b.tracker == nil {
		return GuardFactory{}, ErrNotSubscribed
	}
	return NewGuardFactory(b.tracker), nil
}

// SetReceiveHandler installs fn to run whenever new samples become
// available, replacing (and expiring) any previously installed handler.
func (b *ProxyEventBase) SetReceiveHandler(ctx context.Context, fn func()) error {
	_, span := b.tracer.StartSetReceiveHandler(ctx, b.name)
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scope != nil {
		b.scope.Expire()
	}
	scope := NewScope()
	handler := NewScopedReceiveHandler(scope, fn)
	if err := b.binding.SetReceiveHandler(handler); err != nil {
		scope.Expire()
		return WrapError("ProxyEventBase.SetReceiveHandler", b.name, ErrSetHandlerFailure)
	}
	b.scope = scope
	return nil
}

// UnsetReceiveHandler removes a previously installed receive handler. It
// is a no-op, not an error, if no handler is currently installed.
func (b *ProxyEventBase) UnsetReceiveHandler() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scope == nil {
		return nil
	}
	if err := b.binding.UnsetReceiveHandler(); err != nil {
		return WrapError("ProxyEventBase.UnsetReceiveHandler", b.name, ErrUnsetHandlerFailure)
	}
	b.scope.Expire()
	b.scope = nil
	return nil
}
