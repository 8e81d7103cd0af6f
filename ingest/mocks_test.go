package ingest

import (
	"context"
	"time"

	"github.com/sig-0/pbrates/storage/types"
)

type (
	nameDelegate     func() string
	urlsDelegate     func(time.Time, int) []string
	fetchDayDelegate func(context.Context, string) *types.DayResult
	observeDelegate  func(types.Outcome, time.Duration)
)

type mockProvider struct {
	nameFn     nameDelegate
	urlsFn     urlsDelegate
	fetchDayFn fetchDayDelegate
}

func (m *mockProvider) Name() string {
	if m.nameFn != nil {
		return m.nameFn()
	}

	return ""
}

func (m *mockProvider) URLs(now time.Time, days int) []string {
	if m.urlsFn != nil {
		return m.urlsFn(now, days)
	}

	return nil
}

func (m *mockProvider) FetchDay(ctx context.Context, url string) *types.DayResult {
	if m.fetchDayFn != nil {
		return m.fetchDayFn(ctx, url)
	}

	return nil
}

type mockObserver struct {
	observeFn observeDelegate
}

func (m *mockObserver) ObserveDay(outcome types.Outcome, elapsed time.Duration) {
	if m.observeFn != nil {
		m.observeFn(outcome, elapsed)
	}
}
