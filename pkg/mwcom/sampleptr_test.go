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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSamplePtr_CloseReleasesGuardAndClearsPayload(t *testing.T) {
	tracker := NewTracker(1)
	factory := NewGuardFactory(tracker)
	guard, ok := factory.TakeGuard()
	require.True(t, ok)

	value := 42
	sample := NewSamplePtr(&value, &guard)
	require.True(t, sample.Valid())
	require.Equal(t, 42, *sample.Get())
	require.True(t, tracker.IsUsed())

	sample.Close()
	require.False(t, sample.Valid())
	require.Nil(t, sample.Get())
	require.False(t, tracker.IsUsed(), "closing the SamplePtr must release its guard back to the tracker")

	require.NotPanics(t, sample.Close, "Close must be idempotent")
}

func TestOpaque_Bytes(t *testing.T) {
	raw := []byte{1, 2, 3}
	o := NewOpaque(raw)
	require.Equal(t, raw, o.Bytes())
}
