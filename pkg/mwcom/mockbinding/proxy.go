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

package mockbinding

import (
	"sync"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
)

// ProxyBinding is a fake mwcom.ProxyBinding backed by a name-to-binding
// map populated by the test or example setting it up.
type ProxyBinding struct {
	mu       sync.RWMutex
	typed    map[string]mwcom.EventBindingBase
	generic  map[string]mwcom.GenericEventBinding
}

// NewProxyBinding returns an empty fake proxy binding.
func NewProxyBinding() *ProxyBinding {
	return &ProxyBinding{
		typed:   make(map[string]mwcom.EventBindingBase),
		generic: make(map[string]mwcom.GenericEventBinding),
	}
}

// AddEventBinding registers binding under name for GetEventBinding,
// accepting anything implementing EventBindingBase (which *EventBinding[T]
// does, in addition to the GetNewSamples method EventBindingAs recovers).
func (p *ProxyBinding) AddEventBinding(name string, binding mwcom.EventBindingBase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.typed[name] = binding
}

// AddGenericEventBinding registers binding under name for
// GetGenericEventBinding.
func (p *ProxyBinding) AddGenericEventBinding(name string, binding mwcom.GenericEventBinding) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generic[name] = binding
}

func (p *ProxyBinding) GetEventBinding(name string) (mwcom.EventBindingBase, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.typed[name]
	return b, ok
}

func (p *ProxyBinding) GetGenericEventBinding(name string) (mwcom.GenericEventBinding, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.generic[name]
	return b, ok
}
