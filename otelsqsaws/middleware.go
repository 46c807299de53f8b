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
	"log/slog"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/pjscruggs/otelsqs"
)

// MiddlewareID identifies the otelsqs middleware on the Initialize step.
const MiddlewareID = "otelsqs"

// Additional span attribute keys set by the middleware.
const (
	RegionKey    = attribute.Key("aws.region")
	RequestIDKey = attribute.Key("aws.request_id")
)

const rpcSystemAWS = "aws-api"

type sqsMiddleware struct {
	cfg     *config
	tracer  trace.Tracer
	metrics *extractionMetrics
}

// AppendMiddlewares attaches the otelsqs middleware to an SQS client's API
// options, typically sqs.Options.APIOptions.
func AppendMiddlewares(apiOptions *[]func(*middleware.Stack) error, opts ...Option) {
	if apiOptions == nil {
		return
	}
	m := newSQSMiddleware(applyOptions(opts))
	*apiOptions = append(*apiOptions, m.register)
}

func newSQSMiddleware(cfg *config) *sqsMiddleware {
	return &sqsMiddleware{
		cfg:     cfg,
		tracer:  resolveTracer(cfg),
		metrics: newExtractionMetrics(cfg),
	}
}

func resolveTracer(cfg *config) trace.Tracer {
	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(otelsqs.InstrumentationName, trace.WithInstrumentationVersion(otelsqs.GetVersion()))
}

func (m *sqsMiddleware) register(stack *middleware.Stack) error {
	return stack.Initialize.Add(middleware.InitializeMiddlewareFunc(MiddlewareID, m.handleInitialize), middleware.After)
}

func (m *sqsMiddleware) handleInitialize(
	ctx context.Context,
	in middleware.InitializeInput,
	next middleware.InitializeHandler,
) (out middleware.InitializeOutput, metadata middleware.Metadata, err error) {
	serviceID := middleware.GetServiceID(ctx)
	operation := middleware.GetOperationName(ctx)
	cc := CallContextFromInput(operation, in.Parameters)

	requestAttrs := otelsqs.AttributeMap{}
	otelsqs.ExtractRequestAttributes(cc, requestAttrs)

	ctx, span := m.tracer.Start(ctx, m.cfg.spanNameFormatter(serviceID, operation),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(m.startAttributes(ctx, serviceID, operation, requestAttrs)...),
	)
	defer span.End()

	out, metadata, err = next.HandleInitialize(ctx, in)
	if requestID, ok := awsmiddleware.GetRequestIDMetadata(metadata); ok && requestID != "" {
		span.SetAttributes(RequestIDKey.String(requestID))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, metadata, err
	}

	result, _ := ResultFromOutput(out.Result)
	if extractErr := otelsqs.ExtractResponseAttributes(span, cc, result); extractErr != nil {
		m.reportExtractionError(ctx, span, operation, extractErr)
		if m.cfg.errorPolicy == ExtractionErrorPropagate {
			span.SetStatus(codes.Error, extractErr.Error())
			return out, metadata, extractErr
		}
	}
	return out, metadata, nil
}

func (m *sqsMiddleware) startAttributes(ctx context.Context, serviceID, operation string, requestAttrs otelsqs.AttributeMap) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4+len(requestAttrs)+len(m.cfg.spanAttributes))
	attrs = append(attrs,
		semconv.RPCSystemKey.String(rpcSystemAWS),
		semconv.RPCServiceKey.String(serviceID),
		semconv.RPCMethodKey.String(operation),
	)
	if region := awsmiddleware.GetRegion(ctx); region != "" {
		attrs = append(attrs, RegionKey.String(region))
	}
	attrs = append(attrs, requestAttrs.KeyValues()...)
	attrs = append(attrs, m.cfg.spanAttributes...)
	return attrs
}

func (m *sqsMiddleware) reportExtractionError(ctx context.Context, span trace.Span, operation string, err error) {
	m.metrics.recordError(ctx, operation, err)
	span.RecordError(err)

	logger := m.cfg.logger
	if logger == nil {
		logger = otelsqs.Logger(ctx)
	}
	attrs := []slog.Attr{
		slog.String(string(semconv.RPCMethodKey), operation),
		slog.Any("error", err),
	}
	if traceAttrs, ok := otelsqs.TraceAttributes(ctx); ok {
		attrs = append(attrs, traceAttrs...)
	}
	logger.LogAttrs(ctx, slog.LevelWarn, "otelsqs: response attribute extraction failed", attrs...)
}
