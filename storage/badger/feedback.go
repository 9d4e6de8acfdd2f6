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

package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/storage"
)

// FeedbackRepository implements storage.FeedbackRepository for BadgerDB.
type FeedbackRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
	logger  *slog.Logger
}

var _ storage.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a feedback repository over backend.
// Closing the repository releases its ID sequence but not the backend.
func NewFeedbackRepository(backend *Backend) (storage.FeedbackRepository, error) {
	idSeq, err := backend.GetSequence(feedbackIDSeq)
	if err != nil {
		return nil, err
	}

	return &FeedbackRepository{
		backend: backend,
		idSeq:   idSeq,
		logger:  backend.logger,
	}, nil
}

// Close releases the ID sequence.
func (r *FeedbackRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *FeedbackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddFeedback stores one or more feedback entries.
func (r *FeedbackRepository) AddFeedback(ctx context.Context, feedback ...*core.Feedback) ([]*core.Feedback, error) {
	now := time.Now().UTC()
	for _, f := range feedback {
		if f != nil && f.SubmittedAt.IsZero() {
			f.SubmittedAt = now
		}
		if err := core.ValidateFeedback(f); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, f := range feedback {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			f.Id = core.ID(nextID)
			f.SubmittedAt = f.SubmittedAt.UTC()

			if err := tx.Set(makeFeedbackKey(f.Id), storage.MarshalFeedback(f)); err != nil {
				return err
			}
			if err := tx.Set(makeFeedbackDateKey(f.SubmittedAt, f.Id), storage.MarshalID(f.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("feedback stored", "count", len(feedback))
	return feedback, nil
}

// GetFeedback retrieves a single feedback entry by ID.
func (r *FeedbackRepository) GetFeedback(ctx context.Context, id core.ID) (*core.Feedback, error) {
	var result *core.Feedback
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readFeedback(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetFeedbackByDateRange retrieves feedback submitted in [start, end).
func (r *FeedbackRepository) GetFeedbackByDateRange(ctx context.Context, start, end time.Time) ([]*core.Feedback, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s", storage.ErrInvalidQuery, end, start)
	}
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Feedback
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialFeedbackDateKey(start)
		endKey := makePartialFeedbackDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if slices.Compare(iter.Item().Key(), endKey) > 0 {
				break
			}
			f, err := r.followDateKey(tx, iter.Item())
			if err != nil {
				return err
			}
			if f != nil {
				results = append(results, f)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentFeedback retrieves up to limit entries, newest first.
func (r *FeedbackRepository) GetRecentFeedback(ctx context.Context, limit int) ([]*core.Feedback, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}

	var results []*core.Feedback
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the newest possible date key and walk backwards
		startKey := makePartialFeedbackDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(feedbackDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}
			f, err := r.followDateKey(tx, iter.Item())
			if err != nil {
				return err
			}
			if f != nil {
				results = append(results, f)
			}
		}
		return nil
	}, false)

	return results, err
}

// followDateKey resolves a date index entry to its feedback.
// A dangling index entry yields nil.
func (r *FeedbackRepository) followDateKey(tx *badger.Txn, item *badger.Item) (*core.Feedback, error) {
	var id core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}

	f, err := r.readFeedback(tx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		r.logger.Warn("date index points at missing feedback", "id", id)
	}
	return f, nil
}

// readFeedback reads a feedback entry, returning nil if it doesn't exist.
func (r *FeedbackRepository) readFeedback(tx *badger.Txn, id core.ID) (*core.Feedback, error) {
	item, err := tx.Get(makeFeedbackKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var f *core.Feedback
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		f, unmarshalErr = storage.UnmarshalFeedback(val)
		return unmarshalErr
	})
	return f, err
}
