// Copyright 2025 Poiesic Systems
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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates an assessment Record failed validation.
	ErrInvalidRecord = errors.New("invalid assessment record")

	// ErrEmptyState indicates the State field is blank.
	ErrEmptyState = errors.New("state cannot be empty")

	// ErrEmptyDistrict indicates the District field is blank.
	ErrEmptyDistrict = errors.New("district cannot be empty")

	// ErrEmptyAssessmentYear indicates the AssessmentYear field is blank.
	ErrEmptyAssessmentYear = errors.New("assessment year cannot be empty")

	// ErrInvalidFeedback indicates a Feedback entry failed validation.
	ErrInvalidFeedback = errors.New("invalid feedback")

	// ErrEmptyFeedback indicates the feedback Text is blank.
	ErrEmptyFeedback = errors.New("feedback text cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
