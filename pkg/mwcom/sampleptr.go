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

// Opaque is the erased sample type used by GenericProxyEvent and the FFI
// shim, where the payload's concrete Go type is not known at compile time.
// The underlying bytes are exposed read-only via Bytes.
type Opaque struct {
	data []byte
}

// NewOpaque wraps raw as an Opaque payload. Bindings use this to hand
// erased samples to GenericProxyEvent without exposing their own
// serialization details.
func NewOpaque(raw []byte) Opaque {
	return Opaque{data: raw}
}

// Bytes returns the raw, read-only payload bytes.
func (o Opaque) Bytes() []byte {
	return o.data
}

// SamplePtr is an owning handle to one received sample: a read-only
// pointer to the sample data plus exactly one Guard drawn from the
// proxy event's Tracker. It has no destructive-move equivalent in Go, so
// ownership transfer is by value copy of the struct followed by marking
// the source consumed; Close is idempotent and safe to call from a
// deferred statement regardless of how the SamplePtr was obtained.
type SamplePtr[T any] struct {
	value    *T
	guard    *Guard
	consumed bool
}

// NewSamplePtr builds a SamplePtr taking ownership of guard. guard must be
// Valid(); ownership of the pointee is logical only, callers must not
// mutate *value through the returned pointer.
func NewSamplePtr[T any](value *T, guard *Guard) SamplePtr[T] {
	return SamplePtr[T]{value: value, guard: guard}
}

// Get returns the sample's payload. Returns nil if the SamplePtr has
// already been closed.
func (s *SamplePtr[T]) Get() *T {
	if s.consumed {
		return nil
	}
	return s.value
}

// Valid reports whether this SamplePtr still owns an un-released guard.
func (s *SamplePtr[T]) Valid() bool {
	return !s.consumed && s.guard != nil && s.guard.Valid()
}

// Close releases the underlying guard back to the tracker it was drawn
// from. Close is idempotent: calling it more than once, or on a
// zero-value SamplePtr, is a no-op.
func (s *SamplePtr[T]) Close() {
	if s.consumed {
		return
	}
	s.consumed = true
	if s.guard != nil {
		s.guard.Release()
	}
	s.value = nil
}
