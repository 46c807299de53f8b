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

// Command sqs demonstrates otelsqs span attributes on an instrumented SQS
// client.
//
// This example is both documentation, and a test for `otelsqs`.
// Our Github workflow tests if any changes to `otelsqs` break the example.
//
// The client answers calls locally so the example runs without AWS
// credentials. Drop localResponder to talk to a real queue.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go/middleware"
	"github.com/sethvargo/go-envconfig"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/pjscruggs/otelsqs/otelsqsaws"
)

// exampleConfig is read from the environment.
type exampleConfig struct {
	QueueURL string `env:"QUEUE_URL, default=https://sqs.us-east-1.amazonaws.com/123456789012/orders"`
	Region   string `env:"AWS_REGION, default=us-east-1"`
}

// main runs the SQS tracing example.
func main() {
	ctx := context.Background()

	var cfg exampleConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	tracerProvider := sdktrace.NewTracerProvider()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown tracer provider: %v", err)
		}
	}()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	client := newClient(cfg, tracerProvider, logger)
	if err := run(ctx, client, cfg.QueueURL, logger); err != nil {
		log.Fatalf("run: %v", err)
	}
}

// newClient builds an SQS client instrumented with otelsqsaws.
func newClient(cfg exampleConfig, tp trace.TracerProvider, logger *slog.Logger) *sqs.Client {
	opts := []otelsqsaws.Option{
		otelsqsaws.WithTracerProvider(tp),
		otelsqsaws.WithLogger(logger),
	}
	return sqs.New(sqs.Options{
		Region:     cfg.Region,
		HTTPClient: otelsqsaws.NewHTTPClient(nil, opts...),
	}, func(o *sqs.Options) {
		otelsqsaws.AppendMiddlewares(&o.APIOptions, opts...)
		o.APIOptions = append(o.APIOptions, localResponder)
	})
}

// run sends one message, then receives it.
func run(ctx context.Context, client *sqs.Client, queueURL string, logger *slog.Logger) error {
	sent, err := client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String("hello"),
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	logger.InfoContext(ctx, "sent message", "message_id", aws.ToString(sent.MessageId))

	received, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: 1,
	})
	if err != nil {
		return fmt.Errorf("receive message: %w", err)
	}
	for _, msg := range received.Messages {
		logger.InfoContext(ctx, "received message",
			"message_id", aws.ToString(msg.MessageId),
			"body", aws.ToString(msg.Body),
		)
	}
	return nil
}

// localResponder short-circuits the Finalize step with simulated SQS
// responses.
func localResponder(stack *middleware.Stack) error {
	return stack.Finalize.Add(middleware.FinalizeMiddlewareFunc("localResponder",
		func(ctx context.Context, _ middleware.FinalizeInput, _ middleware.FinalizeHandler) (middleware.FinalizeOutput, middleware.Metadata, error) {
			var md middleware.Metadata
			awsmiddleware.SetRequestIDMetadata(&md, "local-request")

			var result any
			switch middleware.GetOperationName(ctx) {
			case "SendMessage":
				result = &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}
			case "ReceiveMessage":
				result = &sqs.ReceiveMessageOutput{Messages: []types.Message{{
					MessageId:     aws.String("msg-1"),
					ReceiptHandle: aws.String("rh-1"),
					Body:          aws.String("hello"),
				}}}
			default:
				return middleware.FinalizeOutput{}, md, fmt.Errorf("localResponder: unsupported operation %q", middleware.GetOperationName(ctx))
			}
			return middleware.FinalizeOutput{Result: result}, md, nil
		}), middleware.Before)
}
