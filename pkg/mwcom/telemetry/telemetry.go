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

// Package telemetry provides optional Prometheus instrumentation for the
// proxy event delivery core: a NoopRecorder is the zero-value default, so
// the hot path never pays for metrics unless a caller opts in with a
// PrometheusRecorder bound to their own registry.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives sample-delivery and subscription lifecycle events from
// the proxy event facades.
type Recorder interface {
	SamplesDelivered(eventName string, count uint)
	TrackerExhausted(eventName string)
	SubscriptionStateChanged(eventName string, subscribed bool)
}

// NoopRecorder discards all events; it is the default used when a proxy
// event is constructed without an explicit Recorder.
type NoopRecorder struct{}

func (NoopRecorder) SamplesDelivered(string, uint)             {}
func (NoopRecorder) TrackerExhausted(string)                   {}
func (NoopRecorder) SubscriptionStateChanged(string, bool)     {}

// PrometheusRecorder records events as Prometheus counters and a gauge,
// registered eagerly against reg at construction time.
type PrometheusRecorder struct {
	samplesDelivered   *prometheus.CounterVec
	trackerExhaustions *prometheus.CounterVec
	activeSubscriptions *prometheus.GaugeVec
}

// NewPrometheusRecorder registers the middleware's instruments against reg
// and returns a Recorder backed by them.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		samplesDelivered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mwcom_proxy_samples_delivered_total",
			Help: "Number of samples delivered to proxy event receivers, by event name.",
		}, []string{"event"}),
		trackerExhaustions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mwcom_proxy_tracker_exhausted_total",
			Help: "Number of times GetNewSamples found the sample reference tracker exhausted, by event name.",
		}, []string{"event"}),
		activeSubscriptions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mwcom_proxy_active_subscriptions",
			Help: "Current number of Subscribed proxy events, by event name.",
		}, []string{"event"}),
	}
}

func (r *PrometheusRecorder) SamplesDelivered(eventName string, count uint) {
	r.samplesDelivered.WithLabelValues(eventName).Add(float64(count))
}

func (r *PrometheusRecorder) TrackerExhausted(eventName string) {
	r.trackerExhaustions.WithLabelValues(eventName).Inc()
}

func (r *PrometheusRecorder) SubscriptionStateChanged(eventName string, subscribed bool) {
	if subscribed {
		r.activeSubscriptions.WithLabelValues(eventName).Set(1)
		return
	}
	r.activeSubscriptions.WithLabelValues(eventName).Set(0)
}
