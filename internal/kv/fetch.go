package kv

import (
	"context"
	"time"

	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/logging"
	"github.com/systmms/secretgrep/pkg/store"
)

// Fetcher retrieves one secret at a time through a store client and parses
// the payload into a Record. It holds no state between calls and is safe for
// concurrent use.
type Fetcher struct {
	client  store.Client
	logger  *logging.Logger
	timeout time.Duration
}

// FetcherOption is a functional option for configuring a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout bounds each individual fetch. A zero duration (the default)
// means no per-fetch timeout: a hanging store call hangs the whole
// operation.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a fetcher over the given store client.
func NewFetcher(client store.Client, logger *logging.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: client,
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves and parses one secret. Remote failures come back as
// FetchError; payload problems (no text, invalid JSON, non-object top level)
// come back as PayloadError. No caching, no retries.
func (f *Fetcher) Fetch(ctx context.Context, identifier string) (*Record, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	payload, err := f.client.GetPayload(ctx, identifier)
	if err != nil {
		return nil, &dserrors.FetchError{Identifier: identifier, Err: err}
	}

	if payload.Data == nil {
		return nil, &dserrors.PayloadError{
			Identifier: identifier,
			Reason:     dserrors.PayloadNotTextual,
		}
	}
	defer payload.Data.Destroy()

	locked, err := payload.Data.Open()
	if err != nil {
		return nil, &dserrors.FetchError{Identifier: identifier, Err: err}
	}
	defer locked.Destroy()

	record, err := NewRecordFromJSON(identifier, locked.Bytes())
	if err != nil {
		return nil, err
	}

	f.logger.Debug("fetched secret %s (%d keys)", identifier, record.Len())
	return record, nil
}

// ListIdentifiers enumerates every identifier the store knows about, in the
// order the remote service returns them. Any page failure aborts the whole
// listing; no partial list is returned.
func ListIdentifiers(ctx context.Context, client store.Client) ([]string, error) {
	identifiers, err := client.ListIdentifiers(ctx)
	if err != nil {
		return nil, &dserrors.ListError{Err: err}
	}
	return identifiers, nil
}
