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

// Operation identifies an SQS API operation as far as attribute extraction is
// concerned. Every operation without dedicated handling is OperationOther.
type Operation int

const (
	// OperationOther covers every SQS operation without messaging attributes.
	OperationOther Operation = iota
	// OperationSendMessage is the SendMessage API.
	OperationSendMessage
	// OperationSendMessageBatch is the SendMessageBatch API.
	OperationSendMessageBatch
	// OperationReceiveMessage is the ReceiveMessage API.
	OperationReceiveMessage
)

// SDK operation names.
const (
	SendMessageName      = "SendMessage"
	SendMessageBatchName = "SendMessageBatch"
	ReceiveMessageName   = "ReceiveMessage"
)

var supportedOperations = [...]Operation{
	OperationSendMessage,
	OperationSendMessageBatch,
	OperationReceiveMessage,
}

// SupportedOperations returns the operations that receive messaging
// attributes. The returned slice is a copy and may be modified by the caller.
func SupportedOperations() []Operation {
	ops := make([]Operation, len(supportedOperations))
	copy(ops, supportedOperations[:])
	return ops
}

// ParseOperation maps an SDK operation name onto an Operation. Names are
// matched exactly.
func ParseOperation(name string) Operation {
	switch name {
	case SendMessageName:
		return OperationSendMessage
	case SendMessageBatchName:
		return OperationSendMessageBatch
	case ReceiveMessageName:
		return OperationReceiveMessage
	default:
		return OperationOther
	}
}

// Supported reports whether op receives messaging attributes.
func (op Operation) Supported() bool {
	switch op {
	case OperationSendMessage, OperationSendMessageBatch, OperationReceiveMessage:
		return true
	default:
		return false
	}
}

// String returns the SDK operation name, or "Other".
func (op Operation) String() string {
	switch op {
	case OperationSendMessage:
		return SendMessageName
	case OperationSendMessageBatch:
		return SendMessageBatchName
	case OperationReceiveMessage:
		return ReceiveMessageName
	default:
		return "Other"
	}
}
