package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/secure"
	"github.com/systmms/secretgrep/pkg/store"
)

// KeychainStore implements the store client for the OS keychain (macOS
// Keychain, Linux Secret Service, Windows Credential Manager) via
// go-keyring. Identifiers are accounts under the configured service name.
// The keychain cannot enumerate accounts, so listing is unsupported and
// get-only workflows apply.
type KeychainStore struct {
	name    string
	service string
}

// keychainProbeAccount is looked up by Validate; not-found means the
// keychain itself is reachable.
const keychainProbeAccount = "__secretgrep_probe__"

// NewKeychainStore creates an OS keychain store client.
func NewKeychainStore(name string, storeConfig map[string]interface{}) (*KeychainStore, error) {
	service, _ := storeConfig["service"].(string)
	if service == "" {
		return nil, dserrors.ConfigError{
			Field:      "service",
			Message:    "service is required for the keychain store",
			Suggestion: "Set service to the keychain service name your secrets are stored under",
		}
	}

	return &KeychainStore{
		name:    name,
		service: service,
	}, nil
}

// Name returns the configured store name.
func (s *KeychainStore) Name() string {
	return s.name
}

// GetPayload retrieves one account's value from the keychain.
func (s *KeychainStore) GetPayload(_ context.Context, identifier string) (store.Payload, error) {
	value, err := keyring.Get(s.service, identifier)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return store.Payload{}, &store.NotFoundError{Store: s.name, Identifier: identifier}
		}
		return store.Payload{}, fmt.Errorf("keychain error: %w", err)
	}

	return store.Payload{
		Data: secure.NewBuffer([]byte(value)),
		Metadata: map[string]string{
			"store":   s.name,
			"service": s.service,
		},
	}, nil
}

// ListIdentifiers is unsupported: the OS keychain has no enumeration API.
func (s *KeychainStore) ListIdentifiers(_ context.Context) ([]string, error) {
	return nil, store.NotSupportedError{Store: s.name, Op: "listing secrets"}
}

// Validate checks the keychain is reachable by probing a well-known absent
// account; not-found is the healthy outcome.
func (s *KeychainStore) Validate(_ context.Context) error {
	_, err := keyring.Get(s.service, keychainProbeAccount)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return store.AuthError{
			Store:   s.name,
			Message: fmt.Sprintf("keychain not accessible: %v", err),
		}
	}
	return nil
}
