package fakes

import (
	"context"
	"sync"

	"github.com/systmms/secretgrep/internal/secure"
	"github.com/systmms/secretgrep/pkg/store"
)

// FakeStoreClient is an in-memory implementation of store.Client for tests
// of the retrieval core and the commands.
type FakeStoreClient struct {
	// StoreName is returned by Name(); defaults to "fake".
	StoreName string
	// Payloads maps identifiers to payload text.
	Payloads map[string]string
	// NonTextual marks identifiers that exist but have no textual content.
	NonTextual map[string]bool
	// Errors maps identifiers to errors to return from GetPayload.
	Errors map[string]error
	// ListResult and ListErr drive ListIdentifiers.
	ListResult []string
	ListErr    error
	// ValidateErr drives Validate.
	ValidateErr error
	// GetPayloadFunc allows custom behavior for GetPayload.
	GetPayloadFunc func(ctx context.Context, identifier string) (store.Payload, error)

	mu      sync.Mutex
	fetched []string
}

// NewFakeStoreClient creates an empty fake store client.
func NewFakeStoreClient() *FakeStoreClient {
	return &FakeStoreClient{
		Payloads:   make(map[string]string),
		NonTextual: make(map[string]bool),
		Errors:     make(map[string]error),
	}
}

// AddPayload registers an identifier with payload text.
func (f *FakeStoreClient) AddPayload(identifier, text string) {
	f.Payloads[identifier] = text
}

// AddError configures GetPayload to fail for an identifier.
func (f *FakeStoreClient) AddError(identifier string, err error) {
	f.Errors[identifier] = err
}

// Fetched returns the identifiers GetPayload was called with, in call order.
func (f *FakeStoreClient) Fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.fetched))
	copy(out, f.fetched)
	return out
}

func (f *FakeStoreClient) Name() string {
	if f.StoreName != "" {
		return f.StoreName
	}
	return "fake"
}

func (f *FakeStoreClient) GetPayload(ctx context.Context, identifier string) (store.Payload, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, identifier)
	f.mu.Unlock()

	if f.GetPayloadFunc != nil {
		return f.GetPayloadFunc(ctx, identifier)
	}

	if err, exists := f.Errors[identifier]; exists {
		return store.Payload{}, err
	}
	if f.NonTextual[identifier] {
		return store.Payload{}, nil
	}
	text, exists := f.Payloads[identifier]
	if !exists {
		return store.Payload{}, &store.NotFoundError{Store: f.Name(), Identifier: identifier}
	}
	return store.Payload{Data: secure.NewBuffer([]byte(text))}, nil
}

func (f *FakeStoreClient) ListIdentifiers(ctx context.Context) ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.ListResult, nil
}

func (f *FakeStoreClient) Validate(ctx context.Context) error {
	return f.ValidateErr
}

var _ store.Client = (*FakeStoreClient)(nil)
