package ssds

import "log/slog"

// DefaultMaxLength caps length-delimited payloads on read.
const DefaultMaxLength = 64 << 20

// Option configures a Writer or a Reader.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	maxLength  int
	lenientEnd bool
}

// WithLogger routes schema declarations to l at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxLength sets the largest string or bytes payload a Reader accepts.
func WithMaxLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLength = n
		}
	}
}

// WithLenientEnd makes a Reader accept groups still open at end of stream.
func WithLenientEnd() Option {
	return func(o *options) { o.lenientEnd = true }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:    slog.New(slog.DiscardHandler),
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
