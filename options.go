package calldata

import (
	"go.uber.org/zap"
)

// Option configures encoding and decomposition.
type Option func(*config)

// config holds settings shared by Encode, Decompose and Breakdown.
type config struct {
	logger         *zap.Logger
	lenientPadding bool
	maxElements    int
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		logger:         zap.NewNop(),
		lenientPadding: false,
		maxElements:    0,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger used for debug events.
// A nil logger restores the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// WithLenientPadding accepts non-zero bytes in the padding after string and
// bytes content. By default such bytes are reported as a corrupt layout.
func WithLenientPadding(enabled bool) Option {
	return func(c *config) {
		c.lenientPadding = enabled
	}
}

// WithMaxElements caps the element count accepted for a variable-length array
// while decomposing. Zero (default) means the count is bounded only by the
// available bytes.
func WithMaxElements(max int) Option {
	return func(c *config) {
		if max < 0 {
			max = 0
		}
		c.maxElements = max
	}
}
