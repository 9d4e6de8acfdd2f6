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

package ingres

import "errors"

var (
	// ErrFeedbackDisabled indicates the engine was opened without a feedback store.
	ErrFeedbackDisabled = errors.New("feedback store not enabled")

	// ErrEngineClosed indicates the engine was used after Close.
	ErrEngineClosed = errors.New("engine is closed")

	// ErrIndexPathsRequired indicates BuildIndex was called without artifact paths.
	ErrIndexPathsRequired = errors.New("index and metadata paths are required")
)
