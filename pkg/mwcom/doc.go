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

// Package mwcom implements the proxy-side event delivery core of a
// shared-memory publish/subscribe middleware: binding-independent
// subscription state, a bounded reference-counted sample budget, and the
// typed/erased proxy event facades layered on top of a pluggable
// EventBinding.
//
// # Getting Started
//
// A proxy event is created over a binding supplied by a concrete transport:
// pkg/mwcom/iceoryx2binding for the real shared-memory transport, or
// pkg/mwcom/mockbinding for tests and examples that need no C dependency.
//
//	event := mwcom.NewProxyEvent[Position]("Position", binding)
//	if err := event.Subscribe(ctx, 16); err != nil {
//	    log.Fatal(err)
//	}
//	defer event.Unsubscribe(ctx)
//
//	n, err := event.GetNewSamples(ctx, func(sample mwcom.SamplePtr[Position]) {
//	    fmt.Println(*sample.Get())
//	}, 16)
//
// # Receive handlers
//
// Instead of polling, a receive handler can be registered to run whenever
// new samples become available. SetReceiveHandler wraps the function in a
// Scope of its own, which UnsetReceiveHandler and Unsubscribe expire:
//
//	err := event.SetReceiveHandler(ctx, func() {
//	    // new samples are available, call GetNewSamples from here
//	})
//
// # Sample budget
//
// Every GetNewSamples call draws from the event's own fixed-size Tracker,
// created by Subscribe with maxSampleCount slots; SamplePtr values returned to callers must be closed (or
// let the handler return) before the budget is replenished.
package mwcom
