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

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/ingres/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return core.ID(id), nil
}

// MarshalFeedback serializes a Feedback to bytes.
// Layout: id, text, submission time in Unix nanoseconds.
func MarshalFeedback(feedback *core.Feedback) []byte {
	submitted := feedback.SubmittedAt.UnixNano()
	size := varint.Uint64.Size(uint64(feedback.Id)) +
		ord.String.Size(feedback.Text) +
		varint.Int64.Size(submitted)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(feedback.Id), buf)
	n += ord.String.Marshal(feedback.Text, buf[n:])
	varint.Int64.Marshal(submitted, buf[n:])
	return buf
}

// UnmarshalFeedback deserializes a Feedback from bytes.
func UnmarshalFeedback(data []byte) (*core.Feedback, error) {
	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	offset := n

	text, n, err := ord.String.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: text: %w", ErrSerializationFailed, err)
	}
	offset += n

	submitted, n, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: submitted: %w", ErrSerializationFailed, err)
	}
	if offset+n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-offset-n)
	}

	return &core.Feedback{
		Id:          core.ID(id),
		Text:        text,
		SubmittedAt: time.Unix(0, submitted).UTC(),
	}, nil
}
