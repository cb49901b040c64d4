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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eclipse-score/mw-com-go/pkg/registry"
)

func TestRegistry_RegisterAndFindMemberOperation(t *testing.T) {
	r := registry.New()
	called := false
	r.RegisterMember("Example", "Position", registry.MemberOperation{
		Subscribe: func(uintptr, uint16) error { called = true; return nil },
	})

	op, ok := r.FindMemberOperation("Example", "Position")
	require.True(t, ok)
	require.NoError(t, op.Subscribe(0, 1))
	require.True(t, called)

	_, ok = r.FindMemberOperation("Example", "DoesNotExist")
	require.False(t, ok)

	_, ok = r.FindMemberOperation("NoSuchInterface", "Position")
	require.False(t, ok)
}

func TestRegistry_RegisterMemberPanicsOnDuplicate(t *testing.T) {
	r := registry.New()
	r.RegisterMember("Example", "Position", registry.MemberOperation{})
	require.Panics(t, func() {
		r.RegisterMember("Example", "Position", registry.MemberOperation{})
	})
}

func TestRegistry_FreezeRejectsFurtherRegistration(t *testing.T) {
	r := registry.New()
	r.Freeze()
	require.Panics(t, func() {
		r.RegisterMember("Example", "Position", registry.MemberOperation{})
	})
}

func TestRegistry_TypeOperations(t *testing.T) {
	r := registry.New()
	r.RegisterType("Position", registry.TypeOperations{SampleSize: 16})

	ops, ok := r.FindTypeOperations("Position")
	require.True(t, ok)
	require.EqualValues(t, 16, ops.SampleSize)
}
