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

// Package otelsqsaws instruments the aws-sdk-go-v2 Amazon SQS client with
// otelsqs span attributes.
//
// [AppendMiddlewares] registers a single Initialize-step middleware on the
// client's smithy middleware stack. For every call the middleware:
//   - builds an [otelsqs.CallContext] from the typed SDK input and records the
//     request-phase attributes (`aws.queue_url`);
//   - starts a client span named `SQS.<Operation>` carrying those attributes
//     together with `rpc.system`, `rpc.service`, `rpc.method`, and
//     `aws.region`;
//   - after a successful call, converts the typed SDK output with
//     [ResultFromOutput] and writes the messaging attributes through
//     [otelsqs.ExtractResponseAttributes]. Failed calls record the error on
//     the span and skip the response phase.
//
// Extraction failures (for example a ReceiveMessage response without
// messages) are logged and counted by default. [WithExtractionErrorPolicy]
// with [ExtractionErrorPropagate] returns them to the caller instead.
//
// Typical usage:
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    // handle error
//	}
//	client := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
//	    otelsqsaws.AppendMiddlewares(&o.APIOptions, otelsqsaws.WithLogger(logger))
//	    o.HTTPClient = otelsqsaws.NewHTTPClient(nil)
//	})
package otelsqsaws
