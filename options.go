package shapeschema

import "log/slog"

// Option configures ToSchema, ToValidator and Compile.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for debug events (compilation, rejected
// values, unmappable descriptors). The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	c := config{logger: slog.Default()}
	for _, o := range opts {
		o(&c)
	}
	return c
}
