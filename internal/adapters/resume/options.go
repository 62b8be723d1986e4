package resume

import "github.com/aakritiieee7/hrmanagementsystem/pkg/logger"

// DefaultMaxBytes caps uploads at 5 MiB.
const DefaultMaxBytes = 5 << 20

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMaxBytes sets the upload size cap. Non-positive values keep the default.
func WithMaxBytes(n int64) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxBytes = n
		}
	}
}

// WithLogger sets the extractor logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}
