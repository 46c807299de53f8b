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
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// Attribute keys written by the extractor. The messaging keys follow the
// semantic conventions in use when SQS instrumentation was first specified.
const (
	// QueueURLKey carries the request QueueUrl. There is no semantic
	// convention for it yet.
	QueueURLKey = attribute.Key("aws.queue_url")

	MessagingSystemKey      = semconv.MessagingSystemKey
	MessagingURLKey         = semconv.MessagingURLKey
	MessagingDestinationKey = semconv.MessagingDestinationKey
	MessagingMessageIDKey   = semconv.MessagingMessageIDKey
)

// MessagingSystemValue is the messaging.system value recorded for SQS.
const MessagingSystemValue = "aws.sqs"

// AttributeMap collects request-phase attributes before the host starts the
// span.
type AttributeMap map[attribute.Key]attribute.Value

// KeyValues returns the attributes sorted by key.
func (m AttributeMap) KeyValues() []attribute.KeyValue {
	if len(m) == 0 {
		return nil
	}
	kvs := make([]attribute.KeyValue, 0, len(m))
	for k, v := range m {
		kvs = append(kvs, attribute.KeyValue{Key: k, Value: v})
	}
	slices.SortFunc(kvs, func(a, b attribute.KeyValue) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})
	return kvs
}

// DestinationFromURL returns the final "/"-separated segment of a queue URL,
// which is the queue name. An empty URL yields an empty destination.
func DestinationFromURL(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}
