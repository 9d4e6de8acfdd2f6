package storage

import (
	"context"
	"time"

	"github.com/poiesic/ingres/core"
)

type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

type FeedbackRepository interface {
	Repository
	// AddFeedback stores one or more feedback entries.
	// Every entry gets a new ID from the sequence; a zero SubmittedAt is set
	// to the current time. Entries are validated first and nothing is stored
	// if any is invalid.
	// Returns the entries with IDs and timestamps populated.
	AddFeedback(ctx context.Context, feedback ...*core.Feedback) ([]*core.Feedback, error)

	// GetFeedback retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetFeedback(ctx context.Context, id core.ID) (*core.Feedback, error)

	// GetFeedbackByDateRange retrieves entries where start <= SubmittedAt < end,
	// oldest first.
	GetFeedbackByDateRange(ctx context.Context, start, end time.Time) ([]*core.Feedback, error)

	// GetRecentFeedback retrieves up to limit entries, most recent first.
	GetRecentFeedback(ctx context.Context, limit int) ([]*core.Feedback, error)
}
