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

import "sync"

// HandleType identifies a specific instance of a specific service, the way
// a FindService call or service discovery notification reports it.
type HandleType struct {
	InstanceSpecifier string
	InstanceID        string
}

// FindServiceHandle identifies one outstanding StartFindService
// registration, to be passed to StopFindService.
type FindServiceHandle struct {
	id uint64
}

// NewFindServiceHandle builds a FindServiceHandle wrapping id. Intended for
// use by ServiceDiscovery implementations; proxy code should otherwise only
// ever receive a FindServiceHandle back from StartFindService.
func NewFindServiceHandle(id uint64) FindServiceHandle {
	return FindServiceHandle{id: id}
}

// Value returns the opaque id a ServiceDiscovery implementation wrapped
// this handle around, for use in its own StopFindService lookup.
func (h FindServiceHandle) Value() uint64 {
	return h.id
}

// ServiceDiscovery is the pluggable lookup mechanism ProxyBase's
// FindService/StartFindService/StopFindService forward to.
// mockbinding.Discovery provides a fixed-answer implementation for tests
// and examples; iceoryx2binding.Discovery resolves against the real
// shared-memory service directory.
type ServiceDiscovery interface {
	FindService(instanceSpecifier string) ([]HandleType, error)
	StartFindService(handler func([]HandleType), instanceSpecifier string) (FindServiceHandle, error)
	StopFindService(handle FindServiceHandle) error
}

// ProxyBinding is the proxy-level binding contract: given a service
// element's name, it resolves the binding used to construct that
// element's facade (ProxyEvent[T]/ProxyField[T]/GenericProxyEvent).
type ProxyBinding interface {
	// GetEventBinding resolves name to a typed event binding. Concrete
	// bindings return a value whose underlying type additionally
	// implements EventBinding[T] for the element's sample type T; callers
	// recover it with a type assertion, since Go methods cannot themselves
	// be generic over the caller's T.
	GetEventBinding(name string) (EventBindingBase, bool)
	// GetGenericEventBinding resolves name to an erased event binding, for
	// GenericProxyEvent and the FFI shim.
	GetGenericEventBinding(name string) (GenericEventBinding, bool)
}

// EventBindingAs recovers a typed EventBinding[T] from whatever
// EventBindingBase proxyBinding.GetEventBinding returned, since Go has no
// way to make GetEventBinding itself generic over the caller's T.
func EventBindingAs[T any](proxyBinding ProxyBinding, name string) (EventBinding[T], bool) {
	base, ok := proxyBinding.GetEventBinding(name)
	if !ok {
		return nil, false
	}
	typed, ok := base.(EventBinding[T])
	return typed, ok
}

// eventRegistration is the registration guard's payload: everything it
// needs to identify one registered service element without ever storing a
// pointer back to the owning ProxyBase. Go structs are rarely physically
// relocated the way a moved-from C++ object is, but avoiding the back
// pointer keeps the guarantee true even if that ever changes.
type eventRegistration struct {
	bindingName string
}

// ProxyBase is the binding-independent base embedded by every generated
// (or hand-written) proxy: it owns the proxy-level binding, the service
// handle it was constructed from, and the set of registered service
// element names.
type ProxyBase struct {
	binding   ProxyBinding
	handle    HandleType
	discovery ServiceDiscovery

	mu                           sync.RWMutex
	areServiceElementBindingsValid bool
	registered                   *EventMap[eventRegistration]
}

// NewProxyBase constructs a ProxyBase over binding (which may be nil if
// the providing service instance could not be resolved), identified by
// handle.
func NewProxyBase(binding ProxyBinding, handle HandleType, discovery ServiceDiscovery) *ProxyBase {
	return &ProxyBase{
		binding:                        binding,
		handle:                         handle,
		discovery:                      discovery,
		areServiceElementBindingsValid: binding != nil,
		registered:                     NewEventMap[eventRegistration](),
	}
}

// GetHandle returns the handle this proxy was instantiated from.
func (p *ProxyBase) GetHandle() HandleType {
	return p.handle
}

// AreBindingsValid reports whether both the proxy-level binding and every
// registered service element binding are still usable.
func (p *ProxyBase) AreBindingsValid() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.binding != nil && p.areServiceElementBindingsValid
}

// MarkServiceElementBindingsInvalid is called by a ProxyBaseView-equivalent
// accessor (here just an exported ProxyBase method, since Go has no
// friend classes to hide it behind) when service discovery reports the
// providing instance has gone away.
func (p *ProxyBase) MarkServiceElementBindingsInvalid() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.areServiceElementBindingsValid = false
}

// RegisterEvent records that a service element named name was constructed
// over this proxy's binding. Returns ErrEventAlreadyRegistered if name was
// already registered.
func (p *ProxyBase) RegisterEvent(name string) error {
	if !p.registered.Insert(name, eventRegistration{bindingName: name}) {
		return WrapError("ProxyBase.RegisterEvent", name, ErrEventAlreadyRegistered)
	}
	return nil
}

// RegisteredEvents returns the names of all service elements registered on
// this proxy, in registration order.
func (p *ProxyBase) RegisteredEvents() []string {
	return p.registered.Names()
}

// genericBinding resolves name to an erased event binding via this
// proxy's ProxyBinding, used by NewGenericProxyEvent.
func (p *ProxyBase) genericBinding(name string) (GenericEventBinding, bool) {
	p.mu.RLock()
	binding := p.binding
	p.mu.RUnlock()
	if binding == nil {
		return nil, false
	}
	return binding.GetGenericEventBinding(name)
}

// FindService performs a synchronous one-shot lookup of service instances
// matching instanceSpecifier.
func (p *ProxyBase) FindService(instanceSpecifier string) ([]HandleType, error) {
	return p.discovery.FindService(instanceSpecifier)
}

// StartFindService registers handler to be invoked asynchronously whenever
// the set of instances matching instanceSpecifier changes.
func (p *ProxyBase) StartFindService(handler func([]HandleType), instanceSpecifier string) (FindServiceHandle, error) {
	return p.discovery.StartFindService(handler, instanceSpecifier)
}

// StopFindService cancels a registration made via StartFindService.
func (p *ProxyBase) StopFindService(handle FindServiceHandle) error {
	return p.discovery.StopFindService(handle)
}
