package corpus

import "errors"

var (
	// ErrMissingColumn is returned when a required header column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrEmptyCorpus is returned when the file has no header row.
	ErrEmptyCorpus = errors.New("corpus file is empty")
)
