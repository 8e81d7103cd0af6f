package ingest

import (
	"log/slog"
	"time"

	"github.com/sig-0/pbrates/storage"
)

type Option func(o *Orchestrator)

// WithLogger specifies the logger for the orchestrator
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithClock specifies the clock used to pick "today".
// Defaults to time.Now
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// WithObserver specifies the observer notified of every day outcome
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		o.observer = obs
	}
}

// WithArchive specifies the storage every found day is saved to.
// The archive is write-only from the orchestrator's point of view
func WithArchive(s storage.Storage) Option {
	return func(o *Orchestrator) {
		o.archive = s
	}
}
