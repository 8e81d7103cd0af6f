package storage

import (
	"context"

	"github.com/sig-0/pbrates/storage/types"
)

// Storage is an abstraction over the archive of fetched day rates
type Storage interface {
	// SaveDayRates saves (or replaces) the rates for the given day
	SaveDayRates(context.Context, *types.DayRates) error

	// DayRates fetches the archived rates for the given DD.MM.YYYY day.
	// Returns nil, nil if the day is not archived
	DayRates(context.Context, string) (*types.DayRates, error)

	// ListDates lists all archived days, newest first
	ListDates(context.Context) ([]string, error)
}
