package privatbank

import (
	"context"
	"log/slog"
)

// Diagnostic describes a failed day fetch
type Diagnostic struct {
	Err        error  // the underlying cause, if any
	URL        string // the requested URL
	StatusCode int    // the received status code, 0 if no response arrived
}

// Reporter receives diagnostics for failed day fetches
type Reporter interface {
	// Report is called once per failed fetch, from the fetching goroutine
	Report(context.Context, Diagnostic)
}

// ReporterFunc adapts a plain function to a Reporter
type ReporterFunc func(context.Context, Diagnostic)

func (f ReporterFunc) Report(ctx context.Context, d Diagnostic) {
	f(ctx, d)
}

// LogReporter reports diagnostics to a structured logger
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a new reporter backed by the given logger
func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{
		logger: logger,
	}
}

func (r *LogReporter) Report(ctx context.Context, d Diagnostic) {
	if d.StatusCode != 0 {
		r.logger.ErrorContext(
			ctx,
			"unexpected status code received",
			"status", d.StatusCode,
			"url", d.URL,
		)

		return
	}

	r.logger.ErrorContext(
		ctx,
		"unable to fetch day rates",
		"url", d.URL,
		"err", d.Err,
	)
}

// MultiReporter fans diagnostics out to several reporters
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, d Diagnostic) {
	for _, r := range m {
		if r == nil {
			continue
		}

		r.Report(ctx, d)
	}
}
