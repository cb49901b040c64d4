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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
	"github.com/eclipse-score/mw-com-go/pkg/mwcom/mockbinding"
)

func TestProxyBase_RegisterEventRejectsDuplicate(t *testing.T) {
	proxy := mwcom.NewProxyBase(mockbinding.NewProxyBinding(), mwcom.HandleType{}, mockbinding.NewDiscovery())

	require.NoError(t, proxy.RegisterEvent("Position"))
	err := proxy.RegisterEvent("Position")
	require.Error(t, err)
	require.ErrorIs(t, err, mwcom.ErrEventAlreadyRegistered)

	require.Equal(t, []string{"Position"}, proxy.RegisteredEvents())
}

func TestProxyBase_BindingValidity(t *testing.T) {
	proxy := mwcom.NewProxyBase(mockbinding.NewProxyBinding(), mwcom.HandleType{}, mockbinding.NewDiscovery())
	require.True(t, proxy.AreBindingsValid())

	proxy.MarkServiceElementBindingsInvalid()
	require.False(t, proxy.AreBindingsValid())
}

func TestProxyBase_FindService(t *testing.T) {
	handle := mockbinding.NewSyntheticHandle("my/instance")
	discovery := mockbinding.NewDiscovery(handle)
	proxy := mwcom.NewProxyBase(mockbinding.NewProxyBinding(), mwcom.HandleType{}, discovery)

	found, err := proxy.FindService("my/instance")
	require.NoError(t, err)
	require.Equal(t, []mwcom.HandleType{handle}, found)

	found, err = proxy.FindService("other/instance")
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestProxyBase_EventBindingAsRecoversTypedBinding(t *testing.T) {
	proxyBinding := mockbinding.NewProxyBinding()
	typed := mockbinding.NewEventBinding[int]()
	proxyBinding.AddEventBinding("Counter", typed)

	recovered, ok := mwcom.EventBindingAs[int](proxyBinding, "Counter")
	require.True(t, ok)
	require.Same(t, typed, recovered)

	_, ok = mwcom.EventBindingAs[string](proxyBinding, "Counter")
	require.False(t, ok, "recovering with the wrong sample type must fail")
}
