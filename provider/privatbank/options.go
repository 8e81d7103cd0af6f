package privatbank

import "log/slog"

type Option func(c *Client)

// WithLogger specifies the logger for the client.
// Unless WithReporter is also given, diagnostics are logged to it
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithReporter specifies the diagnostic reporter for failed fetches
func WithReporter(r Reporter) Option {
	return func(c *Client) {
		c.reporter = r
	}
}
