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
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/pjscruggs/otelsqs"
)

// CallContextFromInput builds the extractor's view of an SQS call from the
// operation name and the typed SDK input. Inputs that address a queue
// contribute their QueueUrl; a loosely typed map or otelsqs.Params is copied
// as-is. Any other value yields empty params.
func CallContextFromInput(operation string, params any) otelsqs.CallContext {
	cc := otelsqs.CallContext{Operation: operation, Params: otelsqs.Params{}}

	switch in := params.(type) {
	case otelsqs.Params:
		for k, v := range in {
			cc.Params[k] = v
		}
		return cc
	case map[string]any:
		for k, v := range in {
			cc.Params[k] = v
		}
		return cc
	}

	if url := inputQueueURL(params); url != nil {
		cc.Params[otelsqs.QueueURLParam] = aws.ToString(url)
	}
	return cc
}

// inputQueueURL returns the QueueUrl field of SDK inputs that carry one.
func inputQueueURL(params any) *string {
	switch in := params.(type) {
	case *sqs.SendMessageInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.SendMessageBatchInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.ReceiveMessageInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.DeleteMessageInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.DeleteMessageBatchInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.ChangeMessageVisibilityInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.ChangeMessageVisibilityBatchInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.GetQueueAttributesInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.SetQueueAttributesInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.PurgeQueueInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.DeleteQueueInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.ListDeadLetterSourceQueuesInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.ListQueueTagsInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.TagQueueInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.UntagQueueInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.AddPermissionInput:
		if in != nil {
			return in.QueueUrl
		}
	case *sqs.RemovePermissionInput:
		if in != nil {
			return in.QueueUrl
		}
	}
	return nil
}

// ResultFromOutput converts the typed SDK output of a supported operation
// into an otelsqs.Result. It reports false for nil outputs and for outputs of
// operations without messaging attributes.
func ResultFromOutput(output any) (otelsqs.Result, bool) {
	switch out := output.(type) {
	case *sqs.SendMessageOutput:
		if out == nil {
			return nil, false
		}
		return otelsqs.SendMessageResult{MessageID: out.MessageId}, true

	case *sqs.SendMessageBatchOutput:
		if out == nil {
			return nil, false
		}
		res := otelsqs.SendMessageBatchResult{}
		if len(out.Successful) > 0 {
			res.Successful = make([]otelsqs.BatchResultEntry, 0, len(out.Successful))
			for _, entry := range out.Successful {
				res.Successful = append(res.Successful, otelsqs.BatchResultEntry{
					ID:        entry.Id,
					MessageID: entry.MessageId,
				})
			}
		}
		return res, true

	case *sqs.ReceiveMessageOutput:
		if out == nil {
			return nil, false
		}
		res := otelsqs.ReceiveMessageResult{}
		if len(out.Messages) > 0 {
			res.Messages = make([]otelsqs.Message, 0, len(out.Messages))
			for _, msg := range out.Messages {
				res.Messages = append(res.Messages, otelsqs.Message{
					MessageID:     msg.MessageId,
					ReceiptHandle: msg.ReceiptHandle,
				})
			}
		}
		return res, true

	default:
		return nil, false
	}
}
