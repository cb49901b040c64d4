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

package iceoryx2binding

import (
	"reflect"
	"sync"
	"time"

	"github.com/eclipse-score/mw-com-go/pkg/mwcom"
)

// discoveryPollInterval bounds how stale a StartFindService subscription's
// view of the instance set can be, since iceoryx2's service directory has
// no native change-notification callback.
const discoveryPollInterval = 200 * time.Millisecond

// Discovery is the real mwcom.ServiceDiscovery, backed by iceoryx2's
// process-wide service list. An instanceSpecifier matches a discovered
// publish-subscribe service's name exactly.
type Discovery struct {
	serviceType ServiceType

	mu      sync.Mutex
	nextID  uint64
	watches map[uint64]chan struct{}
}

// NewDiscovery builds a Discovery that lists services of serviceType (the
// same domain the proxy's node was created in).
func NewDiscovery(serviceType ServiceType) *Discovery {
	return &Discovery{serviceType: serviceType, watches: make(map[uint64]chan struct{})}
}

func (d *Discovery) FindService(instanceSpecifier string) ([]mwcom.HandleType, error) {
	services, err := CollectServices(d.serviceType)
	if err != nil {
		return nil, err
	}
	return matchingHandles(services, instanceSpecifier), nil
}

func (d *Discovery) StartFindService(handler func([]mwcom.HandleType), instanceSpecifier string) (mwcom.FindServiceHandle, error) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	stop := make(chan struct{})
	d.watches[id] = stop
	d.mu.Unlock()

	go d.watch(instanceSpecifier, handler, stop)
	return mwcom.NewFindServiceHandle(id), nil
}

func (d *Discovery) StopFindService(handle mwcom.FindServiceHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := handle.Value()
	stop, ok := d.watches[id]
	if !ok {
		return mwcom.ErrHandlerNotRegistered
	}
	close(stop)
	delete(d.watches, id)
	return nil
}

func (d *Discovery) watch(instanceSpecifier string, handler func([]mwcom.HandleType), stop <-chan struct{}) {
	ticker := time.NewTicker(discoveryPollInterval)
	defer ticker.Stop()

	var last []mwcom.HandleType
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			services, err := CollectServices(d.serviceType)
			if err != nil {
				continue
			}
			current := matchingHandles(services, instanceSpecifier)
			if !reflect.DeepEqual(current, last) {
				last = current
				handler(current)
			}
		}
	}
}

func matchingHandles(services []*ServiceInfo, instanceSpecifier string) []mwcom.HandleType {
	var out []mwcom.HandleType
	for _, s := range services {
		if s.MessagingPattern != MessagingPatternPublishSubscribe {
			continue
		}
		if s.Name != instanceSpecifier {
			continue
		}
		out = append(out, mwcom.HandleType{InstanceSpecifier: s.Name, InstanceID: s.ID})
	}
	return out
}
