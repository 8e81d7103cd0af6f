package mock

import (
	"context"

	"github.com/sig-0/pbrates/storage/types"
)

type (
	SaveDayRatesDelegate func(context.Context, *types.DayRates) error
	DayRatesDelegate     func(context.Context, string) (*types.DayRates, error)
	ListDatesDelegate    func(context.Context) ([]string, error)
)

type Storage struct {
	SaveDayRatesFn SaveDayRatesDelegate
	DayRatesFn     DayRatesDelegate
	ListDatesFn    ListDatesDelegate
}

func (m *Storage) SaveDayRates(ctx context.Context, day *types.DayRates) error {
	if m.SaveDayRatesFn != nil {
		return m.SaveDayRatesFn(ctx, day)
	}

	return nil
}

func (m *Storage) DayRates(ctx context.Context, date string) (*types.DayRates, error) {
	if m.DayRatesFn != nil {
		return m.DayRatesFn(ctx, date)
	}

	return nil, nil
}

func (m *Storage) ListDates(ctx context.Context) ([]string, error) {
	if m.ListDatesFn != nil {
		return m.ListDatesFn(ctx)
	}

	return nil, nil
}
