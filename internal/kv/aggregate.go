package kv

import (
	"context"
	"sync"

	"github.com/systmms/secretgrep/internal/logging"
)

// Aggregator fans a set of identifiers out to concurrent Fetch calls and
// merges the results into a Store. The contract is all-or-nothing: either
// every requested identifier is in the returned store, or the whole
// operation fails with the first fetch error.
type Aggregator struct {
	fetcher *Fetcher
	logger  *logging.Logger
}

// NewAggregator creates an aggregator over the given fetcher.
func NewAggregator(fetcher *Fetcher, logger *logging.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// FetchAll retrieves every identifier concurrently, one goroutine per
// identifier. Each goroutine writes only to its own result slot, so the
// store needs no locking: the merge happens after every fetch has settled.
// FetchAll always waits for all in-flight fetches before returning, even
// when one of them has already failed, so no orphaned work outlives the
// call. Duplicate identifiers simply overwrite in the store.
func (a *Aggregator) FetchAll(ctx context.Context, identifiers []string) (*Store, error) {
	records := make([]*Record, len(identifiers))
	errs := make([]error, len(identifiers))

	var wg sync.WaitGroup
	for i, identifier := range identifiers {
		wg.Add(1)
		go func(slot int, id string) {
			defer wg.Done()
			records[slot], errs[slot] = a.fetcher.Fetch(ctx, id)
		}(i, identifier)
	}
	wg.Wait()

	// First error in input order wins, for deterministic reporting.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := NewStore()
	for _, record := range records {
		result.Add(record)
	}

	a.logger.Debug("aggregated %d secrets", result.Len())
	return result, nil
}
