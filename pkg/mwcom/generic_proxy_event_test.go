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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
	"github.com/eclipse-score/mw-com-go/pkg/mwcom/mockbinding"
)

func TestGenericProxyEvent_IntrospectionAndDelivery(t *testing.T) {
	ctx := context.Background()
	binding := mockbinding.NewGenericEventBinding(8, true)
	event := mwcom.NewGenericProxyEventWithBinding("Position", binding)

	require.EqualValues(t, 8, event.GetSampleSize())
	require.True(t, event.HasSerializedFormat())

	require.NoError(t, event.Subscribe(ctx, 2))

	binding.PushFakeSample([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	var receivedLen int
	delivered, err := event.GetNewSamples(ctx, func(s mwcom.SamplePtr[mwcom.Opaque]) {
		defer s.Close()
		receivedLen = len(s.Get().Bytes())
	}, 4)
	require.NoError(t, err)
	require.EqualValues(t, 1, delivered)
	require.Equal(t, 8, receivedLen)
}

func TestNewGenericProxyEvent_ResolvesFromProxyRegistry(t *testing.T) {
	proxyBinding := mockbinding.NewProxyBinding()
	eventBinding := mockbinding.NewGenericEventBinding(4, false)
	proxyBinding.AddGenericEventBinding("Position", eventBinding)

	discovery := mockbinding.NewDiscovery()
	proxy := mwcom.NewProxyBase(proxyBinding, mwcom.HandleType{InstanceSpecifier: "test"}, discovery)

	event, err := mwcom.NewGenericProxyEvent(proxy, "Position")
	require.NoError(t, err)
	require.EqualValues(t, 4, event.GetSampleSize())

	_, err = mwcom.NewGenericProxyEvent(proxy, "DoesNotExist")
	require.Error(t, err)
	require.ErrorIs(t, err, mwcom.ErrEventNotFound)
}
