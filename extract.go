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

package otelsqs

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ExtractRequestAttributes records request-phase attributes for cc into
// attrs. Only a non-empty QueueUrl produces an attribute; anything else is
// treated as nothing to extract.
func ExtractRequestAttributes(cc CallContext, attrs AttributeMap) {
	if attrs == nil {
		return
	}
	if url, ok := cc.Params.QueueURL(); ok {
		attrs[QueueURLKey] = QueueURLKey.String(url).Value
	}
}

// ExtractResponseAttributes writes messaging attributes for a successful call
// onto span. Unsupported operations are a no-op.
//
// Supported operations always receive messaging.system, messaging.url, and
// messaging.destination. The message id comes from the operation's result:
// the SendMessage id, the first successful SendMessageBatch entry (skipped
// when the batch has none), or the first received message. A ReceiveMessage
// result without messages returns an *ExtractionError wrapping ErrNoMessages;
// the three unconditional attributes are already set when that happens.
func ExtractResponseAttributes(span trace.Span, cc CallContext, result Result) error {
	if span == nil {
		span = noop.Span{}
	}

	switch op := cc.Op(); op {
	case OperationOther:
		return nil

	case OperationSendMessage:
		setMessagingAttributes(span, cc)
		res, ok := asSendMessageResult(result)
		if !ok {
			return mismatch(op, result)
		}
		setMessageID(span, res.MessageID)
		return nil

	case OperationSendMessageBatch:
		setMessagingAttributes(span, cc)
		res, ok := asSendMessageBatchResult(result)
		if !ok {
			return mismatch(op, result)
		}
		if len(res.Successful) > 0 {
			setMessageID(span, res.Successful[0].MessageID)
		}
		return nil

	case OperationReceiveMessage:
		setMessagingAttributes(span, cc)
		res, ok := asReceiveMessageResult(result)
		if !ok {
			return mismatch(op, result)
		}
		if len(res.Messages) == 0 {
			return &ExtractionError{Operation: op, Err: ErrNoMessages}
		}
		setMessageID(span, res.Messages[0].MessageID)
		return nil

	default:
		return nil
	}
}

func setMessagingAttributes(span trace.Span, cc CallContext) {
	url, _ := cc.Params.QueueURL()
	span.SetAttributes(
		MessagingSystemKey.String(MessagingSystemValue),
		MessagingURLKey.String(url),
		MessagingDestinationKey.String(DestinationFromURL(url)),
	)
}

// setMessageID skips nil ids; span attributes cannot carry a null value.
func setMessageID(span trace.Span, id *string) {
	if id == nil {
		return
	}
	span.SetAttributes(MessagingMessageIDKey.String(*id))
}

func mismatch(op Operation, result Result) error {
	return &ExtractionError{
		Operation: op,
		Err:       fmt.Errorf("%w: got %T", ErrResultMismatch, result),
	}
}

func asSendMessageResult(result Result) (SendMessageResult, bool) {
	switch r := result.(type) {
	case SendMessageResult:
		return r, true
	case *SendMessageResult:
		if r != nil {
			return *r, true
		}
	}
	return SendMessageResult{}, false
}

func asSendMessageBatchResult(result Result) (SendMessageBatchResult, bool) {
	switch r := result.(type) {
	case SendMessageBatchResult:
		return r, true
	case *SendMessageBatchResult:
		if r != nil {
			return *r, true
		}
	}
	return SendMessageBatchResult{}, false
}

func asReceiveMessageResult(result Result) (ReceiveMessageResult, bool) {
	switch r := result.(type) {
	case ReceiveMessageResult:
		return r, true
	case *ReceiveMessageResult:
		if r != nil {
			return *r, true
		}
	}
	return ReceiveMessageResult{}, false
}
