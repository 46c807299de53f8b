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
	"errors"
	"fmt"
)

var (
	// ErrNoMessages reports a ReceiveMessage result without any messages, so
	// no message id can be recorded.
	ErrNoMessages = errors.New("otelsqs: receive result has no messages")
	// ErrResultMismatch reports a result that is nil or does not belong to
	// the operation being extracted.
	ErrResultMismatch = errors.New("otelsqs: result does not match operation")
	// ErrMalformedResult reports a result mapping that could not be decoded.
	ErrMalformedResult = errors.New("otelsqs: malformed result")
)

// ExtractionError describes a response-phase extraction failure. Attributes
// written before the failure remain on the span.
type ExtractionError struct {
	Operation Operation
	Err       error
}

// Error implements error.
func (e *ExtractionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("extract %s response attributes: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
