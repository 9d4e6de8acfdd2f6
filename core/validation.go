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

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRecord validates an assessment Record according to domain rules.
//
// Validation rules:
//   - State must not be blank
//   - District must not be blank
//   - AssessmentYear must not be blank
//
// NOT validated (consumed as-is):
//   - Category (assigned upstream, unknown values pass through)
//   - numeric fields (NaN means unavailable)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if strings.TrimSpace(record.State) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyState)
	}

	if strings.TrimSpace(record.District) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyDistrict)
	}

	if strings.TrimSpace(record.AssessmentYear) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyAssessmentYear)
	}

	return nil
}

// ValidateFeedback validates a Feedback entry.
//
// Validation rules:
//   - Text must not be blank
//   - SubmittedAt must not be in the future
func ValidateFeedback(feedback *Feedback) error {
	if feedback == nil {
		return fmt.Errorf("%w: feedback is nil", ErrInvalidFeedback)
	}

	if strings.TrimSpace(feedback.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrEmptyFeedback)
	}

	if !IsValidTimestamp(feedback.SubmittedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
// Allows a small tolerance for clock skew (1 second).
func IsValidTimestamp(t time.Time) bool {
	return !t.After(time.Now().Add(time.Second))
}
