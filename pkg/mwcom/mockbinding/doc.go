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

// Package mockbinding provides an in-memory EventBinding/GenericEventBinding
// implementation for tests and examples, with no C dependency; see
// pkg/mwcom/iceoryx2binding for the real shared-memory transport. Samples
// pushed with PushFakeSample are delivered in FIFO order on the next
// GetNewSamples call, the same default behavior the C++ binding's
// GMock-based mock gives callers that have not set up an explicit
// expectation.
package mockbinding
