package ingest

import (
	"context"
	"time"

	"github.com/sig-0/pbrates/storage/types"
)

// workerInfo is the work context for a single day fetch routine
type workerInfo struct {
	provider Provider
	resCh    chan<- dayResponse
	url      string
	offset   int
}

// dayResponse is the day fetch routine response
type dayResponse struct {
	result  *types.DayResult // the settled day result
	elapsed time.Duration    // time spent fetching
	offset  int              // the day offset (0 is today)
}

// Less is utilized to sort day responses by their offset (today == first)
func (a dayResponse) Less(b dayResponse) bool {
	return a.offset < b.offset
}

// handleJob fetches a single day using the provider.
// resCh is expected to have room for every response
func handleJob(ctx context.Context, info *workerInfo) {
	start := time.Now()

	result := info.provider.FetchDay(ctx, info.url)
	if result == nil {
		result = types.Failed()
	}

	info.resCh <- dayResponse{
		result:  result,
		elapsed: time.Since(start),
		offset:  info.offset,
	}
}
