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

package mockbinding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
	"github.com/eclipse-score/mw-com-go/pkg/mwcom/mockbinding"
)

func TestEventBinding_NotifyServiceInstanceChangedAvailability(t *testing.T) {
	binding := mockbinding.NewEventBinding[int]()
	require.NoError(t, binding.Subscribe(4))
	require.Equal(t, mwcom.Subscribed, binding.GetSubscriptionState())

	binding.NotifyServiceInstanceChangedAvailability(false, 1234)
	require.Equal(t, mwcom.SubscriptionPending, binding.GetSubscriptionState(),
		"a provider going away must move the binding out of Subscribed without a full Unsubscribe")

	binding.NotifyServiceInstanceChangedAvailability(true, 1234)
	require.Equal(t, mwcom.Subscribed, binding.GetSubscriptionState())
}

func TestEventBinding_UnsetReceiveHandlerWithoutOneRegistered(t *testing.T) {
	binding := mockbinding.NewEventBinding[int]()
	err := binding.UnsetReceiveHandler()
	require.ErrorIs(t, err, mwcom.ErrHandlerNotRegistered)
}
