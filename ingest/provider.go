package ingest

import (
	"context"
	"time"

	"github.com/sig-0/pbrates/storage/types"
)

// Provider is a daily exchange rate provider
type Provider interface {
	// Name returns the human-readable name of the provider
	Name() string

	// URLs returns one request URL per day, starting at now's day
	// and going backwards
	URLs(now time.Time, days int) []string

	// FetchDay fetches a single day. It never fails, failures are
	// reported as a failed outcome
	FetchDay(ctx context.Context, url string) *types.DayResult
}

// Observer is notified of every settled day fetch
type Observer interface {
	ObserveDay(outcome types.Outcome, elapsed time.Duration)
}
