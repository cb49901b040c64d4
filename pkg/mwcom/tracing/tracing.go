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

// Package tracing wraps the proxy event lifecycle (subscribe, unsubscribe,
// receive-handler registration, sample delivery) in OpenTelemetry spans.
// The concrete exporter and span processor are the caller's concern; this
// package only ever talks to the global/handed-in TracerProvider.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/eclipse-score/mw-com-go/pkg/mwcom"

// Provider supplies the tracer used to instrument one proxy event. Callers
// construct one around their own trace.TracerProvider (or use NoopProvider,
// built on otel's default no-op provider, when tracing is disabled).
type Provider struct {
	tracer trace.Tracer
}

// NewProvider wraps tp for use by the proxy event facades.
func NewProvider(tp trace.TracerProvider) Provider {
	return Provider{tracer: tp.Tracer(instrumentationName)}
}

// NoopProvider returns a Provider backed by otel's global no-op tracer,
// the default when no concrete tracing backend has been configured.
func NoopProvider() Provider {
	return NewProvider(otel.GetTracerProvider())
}

// StartSubscribe opens a span around a Subscribe call.
func (p Provider) StartSubscribe(ctx context.Context, eventName string, maxSampleCount uint16) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "mwcom.ProxyEvent.Subscribe",
		trace.WithAttributes(
			attribute.String("event.name", eventName),
			attribute.Int64("max_sample_count", int64(maxSampleCount)),
		))
}

// StartUnsubscribe opens a span around an Unsubscribe call.
func (p Provider) StartUnsubscribe(ctx context.Context, eventName string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "mwcom.ProxyEvent.Unsubscribe",
		trace.WithAttributes(attribute.String("event.name", eventName)))
}

// StartSetReceiveHandler opens a span around installing a receive handler.
func (p Provider) StartSetReceiveHandler(ctx context.Context, eventName string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "mwcom.ProxyEvent.SetReceiveHandler",
		trace.WithAttributes(attribute.String("event.name", eventName)))
}

// StartGetNewSamples opens a span around one GetNewSamples call.
func (p Provider) StartGetNewSamples(ctx context.Context, eventName string, maxNumSamples uint16) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "mwcom.ProxyEvent.GetNewSamples",
		trace.WithAttributes(
			attribute.String("event.name", eventName),
			attribute.Int64("max_num_samples", int64(maxNumSamples)),
		))
}

// AnnotateDelivered records how many samples a GetNewSamples span actually
// delivered and a correlation id for the originating trace point.
func AnnotateDelivered(span trace.Span, delivered uint, tracePointDataID string) {
	span.SetAttributes(
		attribute.Int64("samples_delivered", int64(delivered)),
		attribute.String("trace_point_data_id", tracePointDataID),
	)
}

// StartHandlerInvocation opens a span around a single receive-handler call.
func (p Provider) StartHandlerInvocation(ctx context.Context, eventName string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "mwcom.ProxyEvent.ReceiveHandler",
		trace.WithAttributes(attribute.String("event.name", eventName)))
}
