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
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/pjscruggs/otelsqs"
)

// ExtractionErrorsMetric counts response-phase extraction failures.
const ExtractionErrorsMetric = "otelsqs.extraction.errors"

// ErrorTypeKey classifies extraction failures on the error counter.
const ErrorTypeKey = attribute.Key("error.type")

type extractionMetrics struct {
	errors metric.Int64Counter
}

func newExtractionMetrics(cfg *config) *extractionMetrics {
	mp := cfg.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(otelsqs.InstrumentationName, metric.WithInstrumentationVersion(otelsqs.GetVersion()))

	counter, err := meter.Int64Counter(
		ExtractionErrorsMetric,
		metric.WithUnit("{error}"),
		metric.WithDescription("Number of SQS calls whose response span attributes could not be extracted."),
	)
	if err != nil {
		otel.Handle(err)
		counter, _ = noop.NewMeterProvider().Meter(otelsqs.InstrumentationName).Int64Counter(ExtractionErrorsMetric)
	}
	return &extractionMetrics{errors: counter}
}

func (m *extractionMetrics) recordError(ctx context.Context, operation string, err error) {
	if m == nil || m.errors == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		semconv.RPCMethodKey.String(operation),
		ErrorTypeKey.String(errorType(err)),
	))
}

func errorType(err error) string {
	switch {
	case errors.Is(err, otelsqs.ErrNoMessages):
		return "no_messages"
	case errors.Is(err, otelsqs.ErrResultMismatch):
		return "result_mismatch"
	case errors.Is(err, otelsqs.ErrMalformedResult):
		return "malformed_result"
	default:
		return "other"
	}
}
