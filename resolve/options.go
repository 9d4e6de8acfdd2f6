package resolve

import "log/slog"

// DefaultTopK is the number of neighbors the semantic stage requests.
const DefaultTopK = 5

// Option configures a Semantic or a Resolver.
type Option func(*options) error

type options struct {
	logger *slog.Logger
	topK   int
}

func newOptions(opts []Option) (*options, error) {
	o := &options{logger: slog.Default(), topK: DefaultTopK}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithTopK sets how many neighbors the semantic stage retrieves.
// Only the nearest one decides the result; the rest are reported to monitors.
func WithTopK(k int) Option {
	return func(o *options) error {
		if k <= 0 {
			return ErrInvalidTopK
		}
		o.topK = k
		return nil
	}
}
