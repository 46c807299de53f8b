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

package otelsqsaws_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/pjscruggs/otelsqs"
	"github.com/pjscruggs/otelsqs/otelsqsaws"
)

const testQueueURL = "https://sqs.us-east-1.amazonaws.com/123/my-queue"

// harness wires an SQS client whose Finalize step is replaced by a stub, so
// calls never leave the process.
type harness struct {
	recorder *tracetest.SpanRecorder
	reader   *sdkmetric.ManualReader
	logs     *bytes.Buffer
	client   *sqs.Client
}

// newHarness builds a client that answers every call with output (or err).
func newHarness(t *testing.T, output any, stubErr error, opts ...otelsqsaws.Option) *harness {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))

	allOpts := append([]otelsqsaws.Option{
		otelsqsaws.WithTracerProvider(tp),
		otelsqsaws.WithMeterProvider(mp),
		otelsqsaws.WithLogger(logger),
	}, opts...)

	client := sqs.New(sqs.Options{Region: "us-east-1"}, func(o *sqs.Options) {
		otelsqsaws.AppendMiddlewares(&o.APIOptions, allOpts...)
		o.APIOptions = append(o.APIOptions, stubResponse(output, stubErr))
	})

	return &harness{recorder: recorder, reader: reader, logs: logs, client: client}
}

// stubResponse short-circuits the Finalize step with a canned result.
func stubResponse(output any, stubErr error) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Finalize.Add(middleware.FinalizeMiddlewareFunc("stubResponse",
			func(context.Context, middleware.FinalizeInput, middleware.FinalizeHandler) (middleware.FinalizeOutput, middleware.Metadata, error) {
				var md middleware.Metadata
				awsmiddleware.SetRequestIDMetadata(&md, "req-123")
				if stubErr != nil {
					return middleware.FinalizeOutput{}, md, stubErr
				}
				return middleware.FinalizeOutput{Result: output}, md, nil
			}), middleware.Before)
	}
}

// onlySpan returns the single ended span.
func (h *harness) onlySpan(t *testing.T) sdktrace.ReadOnlySpan {
	t.Helper()
	ended := h.recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	return ended[0]
}

// errorCount returns the extraction error counter total.
func (h *harness) errorCount(t *testing.T) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := h.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != otelsqsaws.ExtractionErrorsMetric {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

// attrMap flattens span attributes for lookups.
func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

// TestMiddlewareSendMessage verifies a full SendMessage call produces a client span with request and response attributes.
func TestMiddlewareSendMessage(t *testing.T) {
	h := newHarness(t, &sqs.SendMessageOutput{MessageId: aws.String("abc-123")}, nil,
		otelsqsaws.WithSpanAttributes(attribute.String("app.component", "billing")),
	)

	out, err := h.client.SendMessage(context.Background(), &sqs.SendMessageInput{
		QueueUrl:    aws.String(testQueueURL),
		MessageBody: aws.String("hello"),
	})
	if err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
	if aws.ToString(out.MessageId) != "abc-123" {
		t.Fatalf("MessageId = %q, want abc-123", aws.ToString(out.MessageId))
	}

	span := h.onlySpan(t)
	if span.Name() != "SQS.SendMessage" {
		t.Fatalf("span name = %q, want SQS.SendMessage", span.Name())
	}
	if span.SpanKind() != trace.SpanKindClient {
		t.Fatalf("span kind = %v, want client", span.SpanKind())
	}

	attrs := attrMap(span)
	want := map[attribute.Key]string{
		otelsqs.QueueURLKey:             testQueueURL,
		otelsqs.MessagingSystemKey:      "aws.sqs",
		otelsqs.MessagingURLKey:         testQueueURL,
		otelsqs.MessagingDestinationKey: "my-queue",
		otelsqs.MessagingMessageIDKey:   "abc-123",
		"rpc.system":                    "aws-api",
		"rpc.service":                   "SQS",
		"rpc.method":                    "SendMessage",
		otelsqsaws.RegionKey:            "us-east-1",
		otelsqsaws.RequestIDKey:         "req-123",
		"app.component":                 "billing",
	}
	for key, value := range want {
		if got := attrs[key].AsString(); got != value {
			t.Errorf("attribute %s = %q, want %q", key, got, value)
		}
	}
	if h.errorCount(t) != 0 {
		t.Fatalf("expected no extraction errors")
	}
}

// TestMiddlewareSendMessageBatch verifies the first successful entry id is recorded.
func TestMiddlewareSendMessageBatch(t *testing.T) {
	h := newHarness(t, &sqs.SendMessageBatchOutput{
		Successful: []types.SendMessageBatchResultEntry{
			{Id: aws.String("a"), MessageId: aws.String("m1")},
			{Id: aws.String("b"), MessageId: aws.String("m2")},
		},
	}, nil)

	_, err := h.client.SendMessageBatch(context.Background(), &sqs.SendMessageBatchInput{
		QueueUrl: aws.String(testQueueURL),
		Entries: []types.SendMessageBatchRequestEntry{
			{Id: aws.String("a"), MessageBody: aws.String("one")},
			{Id: aws.String("b"), MessageBody: aws.String("two")},
		},
	})
	if err != nil {
		t.Fatalf("SendMessageBatch returned error: %v", err)
	}

	attrs := attrMap(h.onlySpan(t))
	if got := attrs[otelsqs.MessagingMessageIDKey].AsString(); got != "m1" {
		t.Fatalf("message id = %q, want m1", got)
	}
}

// TestMiddlewareReceiveMessage verifies the first received message id is recorded.
func TestMiddlewareReceiveMessage(t *testing.T) {
	h := newHarness(t, &sqs.ReceiveMessageOutput{
		Messages: []types.Message{
			{MessageId: aws.String("r1"), ReceiptHandle: aws.String("h1")},
			{MessageId: aws.String("r2"), ReceiptHandle: aws.String("h2")},
		},
	}, nil)

	out, err := h.client.ReceiveMessage(context.Background(), &sqs.ReceiveMessageInput{QueueUrl: aws.String(testQueueURL)})
	if err != nil {
		t.Fatalf("ReceiveMessage returned error: %v", err)
	}
	if len(out.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out.Messages))
	}

	attrs := attrMap(h.onlySpan(t))
	if got := attrs[otelsqs.MessagingMessageIDKey].AsString(); got != "r1" {
		t.Fatalf("message id = %q, want r1", got)
	}
	if got := attrs[otelsqs.MessagingDestinationKey].AsString(); got != "my-queue" {
		t.Fatalf("destination = %q, want my-queue", got)
	}
}

// TestMiddlewareEmptyReceiveLogsByDefault verifies an empty receive is logged, counted, and not returned to the caller.
func TestMiddlewareEmptyReceiveLogsByDefault(t *testing.T) {
	h := newHarness(t, &sqs.ReceiveMessageOutput{}, nil)

	out, err := h.client.ReceiveMessage(context.Background(), &sqs.ReceiveMessageInput{QueueUrl: aws.String(testQueueURL)})
	if err != nil {
		t.Fatalf("ReceiveMessage returned error: %v", err)
	}
	if out == nil {
		t.Fatalf("expected output to be returned")
	}

	span := h.onlySpan(t)
	attrs := attrMap(span)
	if _, ok := attrs[otelsqs.MessagingMessageIDKey]; ok {
		t.Fatalf("unexpected message id on empty receive")
	}
	if got := attrs[otelsqs.MessagingSystemKey].AsString(); got != "aws.sqs" {
		t.Fatalf("messaging.system = %q, want aws.sqs", got)
	}
	if span.Status().Code == codes.Error {
		t.Fatalf("span status should not be Error under the log policy")
	}
	if len(span.Events()) == 0 {
		t.Fatalf("expected the extraction error to be recorded as a span event")
	}
	if got := h.errorCount(t); got != 1 {
		t.Fatalf("extraction error count = %d, want 1", got)
	}

	line := strings.TrimSpace(h.logs.String())
	if line == "" {
		t.Fatalf("expected a warning log line")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Fatalf("log level = %v, want WARN", entry["level"])
	}
	if entry["rpc.method"] != "ReceiveMessage" {
		t.Fatalf("rpc.method = %v, want ReceiveMessage", entry["rpc.method"])
	}
	if entry[otelsqs.TraceIDKey] != span.SpanContext().TraceID().String() {
		t.Fatalf("trace_id = %v, want %s", entry[otelsqs.TraceIDKey], span.SpanContext().TraceID())
	}
}

// TestMiddlewareEmptyReceivePropagates verifies the propagate policy surfaces ErrNoMessages to the caller.
func TestMiddlewareEmptyReceivePropagates(t *testing.T) {
	h := newHarness(t, &sqs.ReceiveMessageOutput{Messages: []types.Message{}}, nil,
		otelsqsaws.WithExtractionErrorPolicy(otelsqsaws.ExtractionErrorPropagate),
	)

	_, err := h.client.ReceiveMessage(context.Background(), &sqs.ReceiveMessageInput{QueueUrl: aws.String(testQueueURL)})
	if !errors.Is(err, otelsqs.ErrNoMessages) {
		t.Fatalf("expected ErrNoMessages, got %v", err)
	}

	span := h.onlySpan(t)
	if span.Status().Code != codes.Error {
		t.Fatalf("span status = %v, want Error", span.Status().Code)
	}
	if got := len(attrMap(span)); got == 0 {
		t.Fatalf("expected the unconditional attributes to remain on the span")
	}
	if got := h.errorCount(t); got != 1 {
		t.Fatalf("extraction error count = %d, want 1", got)
	}
}

// TestMiddlewareUnsupportedOperation verifies other operations get a span without messaging attributes.
func TestMiddlewareUnsupportedOperation(t *testing.T) {
	h := newHarness(t, &sqs.DeleteMessageOutput{}, nil)

	_, err := h.client.DeleteMessage(context.Background(), &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(testQueueURL),
		ReceiptHandle: aws.String("h1"),
	})
	if err != nil {
		t.Fatalf("DeleteMessage returned error: %v", err)
	}

	span := h.onlySpan(t)
	if span.Name() != "SQS.DeleteMessage" {
		t.Fatalf("span name = %q, want SQS.DeleteMessage", span.Name())
	}
	attrs := attrMap(span)
	if got := attrs[otelsqs.QueueURLKey].AsString(); got != testQueueURL {
		t.Fatalf("aws.queue_url = %q, want %q", got, testQueueURL)
	}
	for _, key := range []attribute.Key{
		otelsqs.MessagingSystemKey,
		otelsqs.MessagingURLKey,
		otelsqs.MessagingDestinationKey,
		otelsqs.MessagingMessageIDKey,
	} {
		if _, ok := attrs[key]; ok {
			t.Errorf("unexpected attribute %s on DeleteMessage span", key)
		}
	}
}

// TestMiddlewareCallErrorSkipsResponsePhase verifies failed calls record the error and write no messaging attributes.
func TestMiddlewareCallErrorSkipsResponsePhase(t *testing.T) {
	stubErr := errors.New("queue does not exist")
	h := newHarness(t, nil, stubErr)

	_, err := h.client.SendMessage(context.Background(), &sqs.SendMessageInput{
		QueueUrl:    aws.String(testQueueURL),
		MessageBody: aws.String("hello"),
	})
	if !errors.Is(err, stubErr) {
		t.Fatalf("expected stub error, got %v", err)
	}

	span := h.onlySpan(t)
	if span.Status().Code != codes.Error {
		t.Fatalf("span status = %v, want Error", span.Status().Code)
	}
	attrs := attrMap(span)
	if _, ok := attrs[otelsqs.MessagingSystemKey]; ok {
		t.Fatalf("response attributes must not be written for failed calls")
	}
	if got := attrs[otelsqsaws.RequestIDKey].AsString(); got != "req-123" {
		t.Fatalf("aws.request_id = %q, want req-123", got)
	}
	if got := h.errorCount(t); got != 0 {
		t.Fatalf("extraction error count = %d, want 0", got)
	}
}

// TestMiddlewareUsesContextLogger verifies the call-scoped logger is used when no logger option is set.
func TestMiddlewareUsesContextLogger(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	client := sqs.New(sqs.Options{Region: "us-east-1"}, func(o *sqs.Options) {
		otelsqsaws.AppendMiddlewares(&o.APIOptions, otelsqsaws.WithTracerProvider(tp))
		o.APIOptions = append(o.APIOptions, stubResponse(&sqs.ReceiveMessageOutput{}, nil))
	})

	var buf bytes.Buffer
	ctx := otelsqs.ContextWithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	if _, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{QueueUrl: aws.String(testQueueURL)}); err != nil {
		t.Fatalf("ReceiveMessage returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "response attribute extraction failed") {
		t.Fatalf("expected warning on the context logger, got %q", buf.String())
	}
}

// TestMiddlewareCustomSpanName verifies WithSpanNameFormatter controls the span name.
func TestMiddlewareCustomSpanName(t *testing.T) {
	h := newHarness(t, &sqs.SendMessageOutput{MessageId: aws.String("x")}, nil,
		otelsqsaws.WithSpanNameFormatter(func(serviceID, operation string) string {
			return strings.ToLower(serviceID) + " " + operation
		}),
	)

	if _, err := h.client.SendMessage(context.Background(), &sqs.SendMessageInput{
		QueueUrl:    aws.String(testQueueURL),
		MessageBody: aws.String("hello"),
	}); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
	if got := h.onlySpan(t).Name(); got != "sqs SendMessage" {
		t.Fatalf("span name = %q, want %q", got, "sqs SendMessage")
	}
}

// TestAppendMiddlewaresNilOptions ensures a nil API options pointer is ignored.
func TestAppendMiddlewaresNilOptions(t *testing.T) {
	otelsqsaws.AppendMiddlewares(nil)
}
