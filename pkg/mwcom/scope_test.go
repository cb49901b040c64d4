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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScopedReceiveHandler_InvokeRunsWhileNotExpired(t *testing.T) {
	scope := NewScope()
	var fired bool
	handler := NewScopedReceiveHandler(scope, func() { fired = true })

	handler.Invoke()
	require.True(t, fired)
}

func TestScopedReceiveHandler_InvokeIsNoopAfterExpire(t *testing.T) {
	scope := NewScope()
	var fired bool
	handler := NewScopedReceiveHandler(scope, func() { fired = true })

	scope.Expire()
	handler.Invoke()
	require.False(t, fired, "a handler must not run after its scope has expired")
}

func TestScope_ExpireWaitsOutInFlightInvocation(t *testing.T) {
	scope := NewScope()
	entered := make(chan struct{})
	release := make(chan struct{})
	handler := NewScopedReceiveHandler(scope, func() {
		close(entered)
		<-release
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		handler.Invoke()
	}()

	<-entered

	expired := make(chan struct{})
	go func() {
		scope.Expire()
		close(expired)
	}()

	select {
	case <-expired:
		t.Fatal("Expire returned while a handler invocation was still in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-expired
	wg.Wait()
}

func TestScope_NilHandlerInvokeIsNoop(t *testing.T) {
	var handler *ScopedReceiveHandler
	require.NotPanics(t, func() { handler.Invoke() })
}
