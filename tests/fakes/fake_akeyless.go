package fakes

import (
	"context"
	"sync"

	"github.com/systmms/secretgrep/internal/stores"
)

// FakeAkeylessAPI is a mock implementation of the Akeyless API surface used
// by the akeyless store.
type FakeAkeylessAPI struct {
	// Token is returned by Authenticate; defaults to "t-fake".
	Token string
	// AuthErr makes Authenticate fail.
	AuthErr error
	// Secrets maps paths to values.
	Secrets map[string]string
	// Errors maps paths to errors to return from GetSecretValue.
	Errors map[string]error
	// Items and ListErr drive ListItems.
	Items   []string
	ListErr error

	mu        sync.Mutex
	authCalls int
}

// NewFakeAkeylessAPI creates an empty mock Akeyless API.
func NewFakeAkeylessAPI() *FakeAkeylessAPI {
	return &FakeAkeylessAPI{
		Secrets: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// AuthCalls reports how many times Authenticate was called.
func (f *FakeAkeylessAPI) AuthCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authCalls
}

func (f *FakeAkeylessAPI) Authenticate(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.authCalls++
	f.mu.Unlock()

	if f.AuthErr != nil {
		return "", f.AuthErr
	}
	if f.Token != "" {
		return f.Token, nil
	}
	return "t-fake", nil
}

func (f *FakeAkeylessAPI) GetSecretValue(ctx context.Context, token, path string) (string, error) {
	if err, exists := f.Errors[path]; exists {
		return "", err
	}
	value, exists := f.Secrets[path]
	if !exists {
		return "", stores.ErrAkeylessNotFound
	}
	return value, nil
}

func (f *FakeAkeylessAPI) ListItems(ctx context.Context, token, path string) ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Items, nil
}

var _ stores.AkeylessAPI = (*FakeAkeylessAPI)(nil)
