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

// Package iceoryx2binding is the real shared-memory mwcom binding: a thin
// cgo layer over the iceoryx2 pub-sub C ABI (Node, ServiceBuilder,
// Publisher/Subscriber, service discovery, WaitSet) plus EventBinding[T]/
// GenericEventBinding/Discovery adapters satisfying the mwcom binding
// interfaces.
//
// Building an application against this package requires the iceoryx2 C
// bindings (iox2/iceoryx2.h and libiceoryx2_ffi_c) to be available at the
// path the cgo directives in iceoryx2.go reference; pkg/mwcom/mockbinding
// has no such requirement and is what the core package's own tests link
// against.
package iceoryx2binding
