// Copyright 2026 Patrick J. Scruggs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package otelsqsaws

import (
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ExtractionErrorPolicy controls what happens when response attributes cannot
// be extracted from an otherwise successful call.
type ExtractionErrorPolicy int

const (
	// ExtractionErrorLog logs the failure, records it on the span, and
	// returns the call result untouched.
	ExtractionErrorLog ExtractionErrorPolicy = iota
	// ExtractionErrorPropagate returns the failure to the caller as the
	// call's error. The SDK discards the output in that case.
	ExtractionErrorPropagate
)

// SpanNameFormatter derives the client span name from the service ID and
// operation name.
type SpanNameFormatter func(serviceID, operation string) string

// Option configures otelsqsaws behavior.
type Option func(*config)

type config struct {
	logger            *slog.Logger
	tracerProvider    trace.TracerProvider
	meterProvider     metric.MeterProvider
	spanAttributes    []attribute.KeyValue
	spanNameFormatter SpanNameFormatter
	errorPolicy       ExtractionErrorPolicy
}

// defaultConfig returns a config populated with production-oriented defaults.
func defaultConfig() *config {
	return &config{
		spanNameFormatter: defaultSpanName,
		errorPolicy:       ExtractionErrorLog,
	}
}

// applyOptions applies Option values to the default configuration.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func defaultSpanName(serviceID, operation string) string {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		serviceID = "SQS"
	}
	if operation == "" {
		return serviceID
	}
	return serviceID + "." + operation
}

// WithLogger sets the logger used to report extraction failures. When unset,
// the logger stored on the call context via otelsqs.ContextWithLogger is
// used, falling back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithTracerProvider installs the OpenTelemetry tracer provider used to start
// client spans. When omitted, otel.GetTracerProvider() is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		cfg.tracerProvider = tp
	}
}

// WithMeterProvider installs the OpenTelemetry meter provider used for the
// extraction error counter. When omitted, otel.GetMeterProvider() is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *config) {
		cfg.meterProvider = mp
	}
}

// WithSpanAttributes appends OpenTelemetry attributes applied to every client
// span.
func WithSpanAttributes(attrs ...attribute.KeyValue) Option {
	return func(cfg *config) {
		cfg.spanAttributes = append(cfg.spanAttributes, attrs...)
	}
}

// WithSpanNameFormatter overrides the default `<service>.<operation>` span
// name. A nil formatter restores the default.
func WithSpanNameFormatter(formatter SpanNameFormatter) Option {
	return func(cfg *config) {
		if formatter == nil {
			cfg.spanNameFormatter = defaultSpanName
			return
		}
		cfg.spanNameFormatter = formatter
	}
}

// WithExtractionErrorPolicy selects how response extraction failures are
// surfaced. The default is ExtractionErrorLog.
func WithExtractionErrorPolicy(policy ExtractionErrorPolicy) Option {
	return func(cfg *config) {
		cfg.errorPolicy = policy
	}
}
