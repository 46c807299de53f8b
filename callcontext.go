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

// QueueURLParam is the SDK parameter carrying the target queue URL.
const QueueURLParam = "QueueUrl"

// Params holds the parameters supplied by the caller, keyed by SDK parameter
// name.
type Params map[string]any

// QueueURL returns the QueueUrl parameter. Plain strings and string pointers
// are accepted. Empty strings, nil pointers, and values of any other type
// report false.
func (p Params) QueueURL() (string, bool) {
	if p == nil {
		return "", false
	}
	switch v := p[QueueURLParam].(type) {
	case string:
		return v, v != ""
	case *string:
		if v == nil || *v == "" {
			return "", false
		}
		return *v, true
	default:
		return "", false
	}
}

// CallContext is a read-only view of one in-flight SQS call. The extractor
// never mutates it.
type CallContext struct {
	// Operation is the SDK operation name, for example "SendMessage".
	Operation string
	// Params are the caller-supplied parameters.
	Params Params
}

// Op returns the parsed operation.
func (cc CallContext) Op() Operation {
	return ParseOperation(cc.Operation)
}
