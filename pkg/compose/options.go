package compose

import "log/slog"

// Option configures a Composer.
type Option func(*Composer)

// WithStrictParent makes AddView and region creation fail with ErrNoParent
// when the composer has no parent. By default they do nothing.
func WithStrictParent(strict bool) Option {
	return func(c *Composer) {
		c.strict = strict
	}
}

// WithLogger sets the logger used for composition diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}
