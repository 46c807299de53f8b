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

	"github.com/mitchellh/mapstructure"
)

// Result is the successful outcome of a supported SQS operation. The set of
// implementations is closed: SendMessageResult, SendMessageBatchResult, and
// ReceiveMessageResult.
type Result interface {
	// Operation reports which operation produced the result.
	Operation() Operation
	sealed()
}

// SendMessageResult is the SendMessage response.
type SendMessageResult struct {
	MessageID *string `mapstructure:"MessageId"`
}

// BatchResultEntry is one successfully enqueued SendMessageBatch entry.
type BatchResultEntry struct {
	ID        *string `mapstructure:"Id"`
	MessageID *string `mapstructure:"MessageId"`
}

// SendMessageBatchResult is the SendMessageBatch response.
type SendMessageBatchResult struct {
	Successful []BatchResultEntry `mapstructure:"Successful"`
}

// Message is one message delivered by ReceiveMessage.
type Message struct {
	MessageID     *string `mapstructure:"MessageId"`
	ReceiptHandle *string `mapstructure:"ReceiptHandle"`
}

// ReceiveMessageResult is the ReceiveMessage response.
type ReceiveMessageResult struct {
	Messages []Message `mapstructure:"Messages"`
}

// Operation implements Result.
func (SendMessageResult) Operation() Operation { return OperationSendMessage }

// Operation implements Result.
func (SendMessageBatchResult) Operation() Operation { return OperationSendMessageBatch }

// Operation implements Result.
func (ReceiveMessageResult) Operation() Operation { return OperationReceiveMessage }

func (SendMessageResult) sealed()      {}
func (SendMessageBatchResult) sealed() {}
func (ReceiveMessageResult) sealed()   {}

// ResultFromMap decodes a loosely typed result mapping, as produced by SDKs
// without generated output types, into the Result for op. Unknown keys are
// ignored. OperationOther yields a nil Result and a nil error because no
// attributes are derived from those responses.
func ResultFromMap(op Operation, raw map[string]any) (Result, error) {
	switch op {
	case OperationSendMessage:
		var res SendMessageResult
		if err := decodeResult(raw, &res); err != nil {
			return nil, err
		}
		return res, nil
	case OperationSendMessageBatch:
		var res SendMessageBatchResult
		if err := decodeResult(raw, &res); err != nil {
			return nil, err
		}
		return res, nil
	case OperationReceiveMessage:
		var res ReceiveMessageResult
		if err := decodeResult(raw, &res); err != nil {
			return nil, err
		}
		return res, nil
	case OperationOther:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown operation %d", ErrMalformedResult, int(op))
	}
}

func decodeResult(raw map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	return nil
}
