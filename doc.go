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

// Package otelsqs derives OpenTelemetry span attributes from Amazon SQS API
// calls.
//
// Attribute extraction runs in two phases for each intercepted call:
//   - [ExtractRequestAttributes] runs before the call executes and records the
//     queue URL (`aws.queue_url`) into an [AttributeMap] that the host uses
//     when it starts the client span.
//   - [ExtractResponseAttributes] runs after the call succeeds and writes the
//     messaging attributes (`messaging.system`, `messaging.url`,
//     `messaging.destination`, `messaging.message_id`) onto the span for the
//     operations returned by [SupportedOperations]. Every other operation is
//     left untouched.
//
// Results are modelled per operation ([SendMessageResult],
// [SendMessageBatchResult], [ReceiveMessageResult]) so the empty batch and
// empty receive cases are handled explicitly. An empty receive surfaces as
// [ErrNoMessages] rather than being silently skipped.
//
// The extractor holds no state and is safe to call from any goroutine. It
// only touches the inputs of the call it was given and that call's span.
//
// # Subpackages
//
//   - [github.com/pjscruggs/otelsqs/otelsqsaws] wires the extractor into the
//     aws-sdk-go-v2 SQS client through its smithy middleware stack.
//
// # Quick Start
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    log.Fatalf("load aws config: %v", err)
//	}
//	client := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
//	    otelsqsaws.AppendMiddlewares(&o.APIOptions)
//	})
package otelsqs
