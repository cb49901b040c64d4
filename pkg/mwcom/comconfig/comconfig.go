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

// Package comconfig loads the YAML-backed configuration shared by the
// middleware's proxies: default sample counts, log level and whether
// tracing/metrics instrumentation should be constructed with a live
// backend or left as no-ops.
package comconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
	// TracingEnabled toggles whether proxies are instrumented with a live
	// TracerProvider instead of tracing.NoopProvider.
	TracingEnabled bool `yaml:"tracing_enabled"`
	// MetricsEnabled toggles whether proxies record to a PrometheusRecorder
	// instead of telemetry.NoopRecorder.
	MetricsEnabled bool `yaml:"metrics_enabled"`
	// DefaultMaxSampleCount is used by generated proxies that do not
	// otherwise specify a max sample count at Subscribe time.
	DefaultMaxSampleCount uint16 `yaml:"default_max_sample_count"`
	// Instances maps an instance specifier to the binding-specific instance
	// identifier string used to resolve it.
	Instances map[string]string `yaml:"instances"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		LogLevel:              "info",
		TracingEnabled:        false,
		MetricsEnabled:        false,
		DefaultMaxSampleCount: 16,
	}
}

// Load reads and parses a YAML configuration file at path, filling in
// Default() for any field the document does not set.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("comconfig: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("comconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}
