package ingest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"

	"github.com/sig-0/pbrates/storage"
	"github.com/sig-0/pbrates/storage/types"
)

// archiveTimeout bounds a single archive save
const archiveTimeout = 10 * time.Second

// Orchestrator fans day fetches out to the provider and
// joins them back in day order
type Orchestrator struct {
	provider Provider
	logger   *slog.Logger
	observer Observer
	archive  storage.Storage

	clock func() time.Time
}

// New creates a new Orchestrator instance
func New(provider Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    time.Now,
	}

	// Apply the options
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Run fetches the given number of trailing days concurrently [BLOCKING].
// The result holds one entry per day, today first, and is returned only
// once every fetch has settled. A failed day never aborts the others
func (o *Orchestrator) Run(ctx context.Context, days int) []*types.DayResult {
	var (
		batchID = xid.New()
		logger  = o.logger.With("batch", batchID.String())
		start   = time.Now()

		urls  = o.provider.URLs(o.clock(), days)
		resCh = make(chan dayResponse, len(urls))
	)

	logger.Debug(
		"fetching day rates",
		"provider", o.provider.Name(),
		"days", len(urls),
	)

	// Spawn one worker per day
	for offset, url := range urls {
		info := &workerInfo{
			provider: o.provider,
			resCh:    resCh,
			url:      url,
			offset:   offset,
		}

		go handleJob(ctx, info)
	}

	// Collect the responses, in arrival order
	q := iq.NewQueue[dayResponse]()

	for range urls {
		response := <-resCh

		if o.observer != nil {
			o.observer.ObserveDay(response.result.Outcome, response.elapsed)
		}

		q.Push(response)
	}

	// Restore the day order
	var (
		results = make([]*types.DayResult, 0, len(urls))
		counts  = make(map[types.Outcome]int, 3)
	)

	for q.Len() > 0 {
		response := q.PopFront()

		results = append(results, response.result)
		counts[response.result.Outcome]++
	}

	o.archiveResults(ctx, logger, results)

	logger.Info(
		"fetched day rates",
		"days", len(results),
		"found", counts[types.OutcomeFound],
		"not_found", counts[types.OutcomeNotFound],
		"failed", counts[types.OutcomeFailed],
		"elapsed", time.Since(start).String(),
	)

	return results
}

// archiveResults saves the found days to the archive, if any
func (o *Orchestrator) archiveResults(
	ctx context.Context,
	logger *slog.Logger,
	results []*types.DayResult,
) {
	if o.archive == nil {
		return
	}

	fetchedAt := time.Now().UTC()

	for _, result := range results {
		if result.Outcome != types.OutcomeFound {
			continue
		}

		day := &types.DayRates{
			FetchedAt: fetchedAt,
			Rates:     result.Rates,
			Date:      result.Date,
		}

		saveCtx, cancelFn := context.WithTimeout(ctx, archiveTimeout)

		if err := o.archive.SaveDayRates(saveCtx, day); err != nil {
			logger.Error(
				"unable to archive day rates",
				"date", day.Date,
				"err", err,
			)
		} else {
			logger.Debug(
				"archived day rates",
				"date", day.Date,
			)
		}

		cancelFn()
	}
}
