package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/sig-0/pbrates/storage/types"
)

type Storage struct {
	data map[time.Time]types.DayRates // keyed by the UTC day

	mu sync.RWMutex
}

func NewStorage() *Storage {
	return &Storage{
		data: make(map[time.Time]types.DayRates),
	}
}

func (s *Storage) SaveDayRates(_ context.Context, d *types.DayRates) error {
	day, err := types.ParseDate(d.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", d.Date, err)
	}

	elem := *d
	elem.FetchedAt = elem.FetchedAt.UTC()
	elem.Rates = maps.Clone(d.Rates)

	s.mu.Lock()
	s.data[day] = elem // day is unique
	s.mu.Unlock()

	return nil
}

func (s *Storage) DayRates(_ context.Context, date string) (*types.DayRates, error) {
	day, err := types.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	s.mu.RLock()
	elem, ok := s.data[day]
	s.mu.RUnlock()

	if !ok {
		return nil, nil //nolint:nilnil // valid case
	}

	elem.Rates = maps.Clone(elem.Rates)

	return &elem, nil
}

func (s *Storage) ListDates(_ context.Context) ([]string, error) {
	s.mu.RLock()

	days := make([]time.Time, 0, len(s.data))
	for day := range s.data {
		days = append(days, day)
	}

	s.mu.RUnlock()

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(types.DateLayout))
	}

	return out, nil
}
