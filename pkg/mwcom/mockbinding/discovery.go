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

	"github.com/google/uuid"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
)

// Discovery is a fake mwcom.ServiceDiscovery holding a fixed set of
// handles and answering each lookup with those whose InstanceSpecifier
// matches. It is sufficient for tests and examples that do not exercise
// real service discovery semantics.
type Discovery struct {
	mu      sync.Mutex
	handles []mwcom.HandleType
	nextID  uint64
}

// NewDiscovery returns a Discovery that answers FindService with the
// handles given whose InstanceSpecifier matches; a specifier with no
// matching handle gets an empty result, and no handle is minted for it.
func NewDiscovery(handles ...mwcom.HandleType) *Discovery {
	return &Discovery{handles: handles}
}

// NewSyntheticHandle mints a handle for instanceSpecifier with a
// uuid-derived instance id, useful when a test only cares that handles are
// distinguishable, not what their id looks like.
func NewSyntheticHandle(instanceSpecifier string) mwcom.HandleType {
	return mwcom.HandleType{InstanceSpecifier: instanceSpecifier, InstanceID: uuid.NewString()}
}

func (d *Discovery) FindService(instanceSpecifier string) ([]mwcom.HandleType, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []mwcom.HandleType
	for _, h := range d.handles {
		if h.InstanceSpecifier == instanceSpecifier {
			out = append(out, h)
		}
	}
	return out, nil
}

func (d *Discovery) StartFindService(handler func([]mwcom.HandleType), instanceSpecifier string) (mwcom.FindServiceHandle, error) {
	d.mu.Lock()
	d.nextID++
	d.mu.Unlock()

	matches, _ := d.FindService(instanceSpecifier)
	handler(matches)
	return mwcom.NewFindServiceHandle(d.nextID), nil
}

func (d *Discovery) StopFindService(handle mwcom.FindServiceHandle) error {
	return nil
}
