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
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPClient returns an HTTP client for sqs.Options.HTTPClient whose
// transport emits a span per HTTP attempt. Attempts nest under the SQS client
// span started by the middleware, so retries show up as siblings. A nil base
// uses a clone of http.DefaultTransport.
//
// The tracer and meter providers configured through opts are shared with
// otelhttp; other options are ignored.
func NewHTTPClient(base http.RoundTripper, opts ...Option) *http.Client {
	cfg := applyOptions(opts)
	if base == nil {
		base = defaultTransport()
	}

	otelOpts := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "SQS HTTP " + r.Method
		}),
	}
	if cfg.tracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(cfg.tracerProvider))
	}
	if cfg.meterProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithMeterProvider(cfg.meterProvider))
	}
	return &http.Client{Transport: otelhttp.NewTransport(base, otelOpts...)}
}

func defaultTransport() http.RoundTripper {
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		return t.Clone()
	}
	return http.DefaultTransport
}
