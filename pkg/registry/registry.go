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

// Package registry is the process-wide, string-keyed service-element
// registry the FFI shim (cmd/mwcomffi) looks member operations up through.
// It is populated by init() functions in generated registration files
// before main runs, and frozen once with Freeze, after which no further
// registrations are accepted. Lookups take the registry's read lock, so
// concurrent lookups do not block each other.
package registry

import (
	"fmt"
	"sync"
)

// MemberOperation is the set of operations the FFI shim can invoke on one
// named member (event or field) of one interface, without either side
// needing to know the other's concrete Go/C++ type.
type MemberOperation struct {
	// Subscribe mirrors mwcom.EventBindingBase.Subscribe, keyed by opaque
	// proxy handle and the member name this MemberOperation was registered
	// under.
	Subscribe func(proxyHandle uintptr, maxSampleCount uint16) error
	// Unsubscribe mirrors mwcom.EventBindingBase.Unsubscribe.
	Unsubscribe func(proxyHandle uintptr)
	// GetNewSamples mirrors mwcom.GenericEventBinding.GetNewSamples,
	// delivering each sample's raw bytes to receiver.
	GetNewSamples func(proxyHandle uintptr, maxNumSamples uint16, receiver func([]byte)) (uint, error)
}

// InterfaceOperations maps one interface's member (event/field) names to
// their MemberOperation.
type InterfaceOperations struct {
	members map[string]MemberOperation
}

// TypeOperations holds the operations needed to marshal one sample type
// across the FFI boundary: currently just its serialized size, since
// encoding itself happens binding-side.
type TypeOperations struct {
	SampleSize uint
}

// Registry is the top-level, string-keyed table:
// interface name -> InterfaceOperations, and type name -> TypeOperations.
// It is safe for concurrent reads after Freeze; writes (Register*) are only
// safe before Freeze is called.
type Registry struct {
	mu        sync.RWMutex
	frozen    bool
	interfaces map[string]InterfaceOperations
	types      map[string]TypeOperations
}

// New returns an empty, unfrozen registry.
func New() *Registry {
	return &Registry{
		interfaces: make(map[string]InterfaceOperations),
		types:      make(map[string]TypeOperations),
	}
}

// RegisterMember adds operation under interfaceName/memberName. Panics if
// called after Freeze, or if that interface/member pair is already
// registered — both are init()-time programming errors, not runtime
// conditions a caller can recover from.
func (r *Registry) RegisterMember(interfaceName, memberName string, operation MemberOperation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("registry: RegisterMember(%s.%s) called after Freeze", interfaceName, memberName))
	}
	iface, ok := r.interfaces[interfaceName]
	if !ok {
		iface = InterfaceOperations{members: make(map[string]MemberOperation)}
	}
	if _, exists := iface.members[memberName]; exists {
		panic(fmt.Sprintf("registry: member %s.%s already registered", interfaceName, memberName))
	}
	iface.members[memberName] = operation
	r.interfaces[interfaceName] = iface
}

// RegisterType adds operation under typeName. Panics under the same
// conditions as RegisterMember.
func (r *Registry) RegisterType(typeName string, operation TypeOperations) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("registry: RegisterType(%s) called after Freeze", typeName))
	}
	if _, exists := r.types[typeName]; exists {
		panic(fmt.Sprintf("registry: type %s already registered", typeName))
	}
	r.types[typeName] = operation
}

// Freeze stops accepting further registrations. Called once from
// cmd/mwcomffi's main before any FFI call is allowed to reach the
// registry.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// FindMemberOperation looks up interfaceName.memberName.
func (r *Registry) FindMemberOperation(interfaceName, memberName string) (MemberOperation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	iface, ok := r.interfaces[interfaceName]
	if !ok {
		return MemberOperation{}, false
	}
	op, ok := iface.members[memberName]
	return op, ok
}

// FindTypeOperations looks up typeName.
func (r *Registry) FindTypeOperations(typeName string) (TypeOperations, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.types[typeName]
	return op, ok
}

// Global is the process-wide registry the FFI shim's generated
// registration files populate via init().
var Global = New()
