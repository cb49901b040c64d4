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

// Package comlog provides the structured logger used across the middleware,
// and the Terminate helper that reports unrecoverable contract violations
// (destroying a subscribed event while samples are still held, unsubscribing
// while samples are still held) before the process terminates.
package comlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	current = l
}

// Set replaces the process-wide logger, e.g. with a logger built from
// comconfig.Config's log level. Intended to be called once during startup.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// L returns the current process-wide logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Terminate logs msg with fields at error level and then panics with msg.
// It is used exclusively for the liveness contract violations that must
// terminate the process: destroying or unsubscribing a proxy event while
// SamplePtr instances it produced are still alive. The panic is the Go
// analogue of std::terminate() for a contract bug, not a normal error
// return; callers must not recover from it and continue as if nothing
// happened.
func Terminate(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
	panic(msg)
}
