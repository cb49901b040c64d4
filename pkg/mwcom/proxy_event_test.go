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

package mwcom_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
	"github.com/eclipse-score/mw-com-go/pkg/mwcom/mockbinding"
)

type position struct {
	X, Y float64
}

func TestProxyEvent_SubscribeLifecycle(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewEventBinding[position]()
	event := mwcom.NewProxyEvent[position]("Position", binding)

	require.Equal(t, mwcom.NotSubscribed, event.GetSubscriptionState())

	require.NoError(t, event.Subscribe(ctx, 4))
	require.Equal(t, mwcom.Subscribed, event.GetSubscriptionState())

	err := event.Subscribe(ctx, 4)
	require.Error(t, err)
	require.ErrorIs(t, err, mwcom.ErrAlreadySubscribed)

	event.Unsubscribe(ctx)
	require.Equal(t, mwcom.NotSubscribed, event.GetSubscriptionState())
}

func TestProxyEvent_GetNewSamplesRequiresSubscription(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewEventBinding[position]()
	event := mwcom.NewProxyEvent[position]("Position", binding)

	_, err := event.GetNewSamples(ctx, func(mwcom.SamplePtr[position]) {}, 4)
	require.Error(t, err)
	require.ErrorIs(t, err, mwcom.ErrNotSubscribed)
}

func TestProxyEvent_GetNewSamplesDeliversInFIFOOrder(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewEventBinding[position]()
	event := mwcom.NewProxyEvent[position]("Position", binding)
	require.NoError(t, event.Subscribe(ctx, 4))

	binding.PushFakeSample(position{X: 1})
	binding.PushFakeSample(position{X: 2})
	binding.PushFakeSample(position{X: 3})

	var received []position
	delivered, err := event.GetNewSamples(ctx, func(s mwcom.SamplePtr[position]) {
		defer s.Close()
		received = append(received, *s.Get())
	}, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, delivered)
	require.Equal(t, []position{{X: 1}, {X: 2}, {X: 3}}, received)
}

func TestProxyEvent_GetNewSamplesRespectsMaxNumSamplesCap(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewEventBinding[position]()
	event := mwcom.NewProxyEvent[position]("Position", binding)
	require.NoError(t, event.Subscribe(ctx, 10))

	for i := 0; i < 5; i++ {
		binding.PushFakeSample(position{X: float64(i)})
	}

	delivered, err := event.GetNewSamples(ctx, func(s mwcom.SamplePtr[position]) { s.Close() }, 2)
	require.NoError(t, err)
	require.EqualValues(t, 2, delivered, "GetNewSamples must not exceed the per-call maxNumSamples even though the tracker has more budget")
}

func TestProxyEvent_UnsubscribeWhileSampleHeldTerminates(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewEventBinding[position]()
	event := mwcom.NewProxyEvent[position]("Position", binding)
	require.NoError(t, event.Subscribe(ctx, 4))

	binding.PushFakeSample(position{X: 1})

	var held mwcom.SamplePtr[position]
	_, err := event.GetNewSamples(ctx, func(s mwcom.SamplePtr[position]) { held = s }, 4)
	require.NoError(t, err)
	require.True(t, held.Valid())

	require.Panics(t, func() { event.Unsubscribe(ctx) })
}

func TestProxyEvent_ReceiveHandlerFiresOnPush(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewEventBinding[position]()
	event := mwcom.NewProxyEvent[position]("Position", binding)
	require.NoError(t, event.Subscribe(ctx, 4))

	fired := make(chan struct{}, 1)
	err := event.SetReceiveHandler(ctx, func() {
		n, err := event.GetNewSamples(ctx, func(s mwcom.SamplePtr[position]) { s.Close() }, 4)
		require.NoError(t, err)
		if n > 0 {
			fired <- struct{}{}
		}
	})
	require.NoError(t, err)

	binding.PushFakeSample(position{X: 9})

	select {
	case <-fired:
	default:
		t.Fatal("receive handler did not fire synchronously on PushFakeSample")
	}

	require.NoError(t, event.UnsetReceiveHandler())
}

func TestProxyEvent_BindingFailureIsWrapped(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewEventBinding[position]()
	binding.FailSubscribe = errors.New("transport unavailable")
	event := mwcom.NewProxyEvent[position]("Position", binding)

	err := event.Subscribe(ctx, 4)
	require.Error(t, err)
	var opErr *mwcom.OpError
	require.ErrorAs(t, err, &opErr)
}
