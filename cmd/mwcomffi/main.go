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

// Command mwcomffi builds the C ABI shim other languages (Rust, via the
// registry bridge this mirrors) link against to drive the proxy-side event
// delivery core without depending on this package's Go types directly.
// Every exported function resolves its target through pkg/registry, which
// must have been populated and frozen before any of these are called.
package main

/*
#include <stddef.h>
#include <stdint.h>

typedef struct {
    const char* data;
    size_t len;
} mw_com_string_view_t;

// Host-language callback type accepted by mw_com_proxy_event_get_new_samples.
// Go only checks it for nil; samples reach the host through the trampoline
// below.
typedef void (*mw_com_sample_callback_t)(const unsigned char* data, size_t len, void* ctx);

// Trampoline defined by the host side (Go neither defines nor exports it),
// called from Go once per delivered sample with the caller's opaque context.
extern void mw_com_call_dyn_ref_fnmut_sample(const unsigned char* data, size_t len, void* ctx);
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"go.uber.org/zap"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom/comlog"
	"github.com/eclipse-score/mw-com-go/pkg/registry"
)

func goStringView(v C.mw_com_string_view_t) string {
	if v.data == nil || v.len == 0 {
		return ""
	}
	return C.GoStringN(v.data, C.int(v.len))
}

//export mw_com_proxy_event_subscribe
func mw_com_proxy_event_subscribe(interfaceName, memberName C.mw_com_string_view_t, proxyHandle C.uintptr_t, maxSampleCount C.uint16_t) C.int {
	op, ok := registry.Global.FindMemberOperation(goStringView(interfaceName), goStringView(memberName))
	if !ok || op.Subscribe == nil {
		return -1
	}
	if err := op.Subscribe(uintptr(proxyHandle), uint16(maxSampleCount)); err != nil {
		comlog.L().Warn("mwcomffi: subscribe failed", zap.Error(err))
		return -2
	}
	return 0
}

//export mw_com_proxy_event_unsubscribe
func mw_com_proxy_event_unsubscribe(interfaceName, memberName C.mw_com_string_view_t, proxyHandle C.uintptr_t) {
	op, ok := registry.Global.FindMemberOperation(goStringView(interfaceName), goStringView(memberName))
	if !ok || op.Unsubscribe == nil {
		return
	}
	op.Unsubscribe(uintptr(proxyHandle))
}

//export mw_com_proxy_event_get_new_samples
func mw_com_proxy_event_get_new_samples(
	interfaceName, memberName C.mw_com_string_view_t,
	proxyHandle C.uintptr_t,
	maxNumSamples C.uint16_t,
	callback C.mw_com_sample_callback_t,
	callbackCtx unsafe.Pointer,
) C.int64_t {
	op, ok := registry.Global.FindMemberOperation(goStringView(interfaceName), goStringView(memberName))
	if !ok || op.GetNewSamples == nil {
		return -1
	}

	h := cgo.NewHandle(callbackFFIContext{callback: callback, ctx: callbackCtx})
	defer h.Delete()

	delivered, err := op.GetNewSamples(uintptr(proxyHandle), uint16(maxNumSamples), func(raw []byte) {
		invokeSampleCallback(h, raw)
	})
	if err != nil {
		comlog.L().Warn("mwcomffi: get_new_samples failed", zap.Error(err))
		return -2
	}
	return C.int64_t(delivered)
}

// callbackFFIContext pairs the C function pointer with its caller-supplied
// context so invokeSampleCallback can cross back into C exactly once per
// delivered sample, the same cgo.Handle-carried-as-void* pattern the
// teacher binding uses for its node-listing callback.
type callbackFFIContext struct {
	callback C.mw_com_sample_callback_t
	ctx      unsafe.Pointer
}

func invokeSampleCallback(h cgo.Handle, raw []byte) {
	fctx, ok := h.Value().(callbackFFIContext)
	if !ok || fctx.callback == nil {
		return
	}
	var dataPtr *C.uchar
	if len(raw) > 0 {
		dataPtr = (*C.uchar)(unsafe.Pointer(&raw[0]))
	}
	C.mw_com_call_dyn_ref_fnmut_sample(dataPtr, C.size_t(len(raw)), fctx.ctx)
}

func main() {
	registry.Global.Freeze()
}
