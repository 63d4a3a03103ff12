// Package store defines the contract between secretgrep's retrieval core and
// the remote secret-store backends (AWS Secrets Manager, AWS SSM Parameter
// Store, GCP Secret Manager, Azure Key Vault, Akeyless, OS keychain).
//
// A Client is a thin, stateless capability: it fetches one secret's raw
// payload or enumerates the identifiers the store knows about. Clients must
// be safe for concurrent use, since the aggregator dispatches many GetPayload
// calls against a single Client at once. Parsing, aggregation, and search
// live in internal/kv and never touch the network.
package store

import (
	"context"
	"fmt"

	"github.com/systmms/secretgrep/internal/secure"
)

// Client is implemented by every secret-store backend.
type Client interface {
	// Name returns the configured store name (the key under stores: in
	// secretgrep.yaml), used in error messages.
	Name() string

	// GetPayload retrieves one secret's raw payload. The returned
	// Payload.Data is nil when the store holds the secret but has no
	// textual content for it (e.g. binary-only secrets). Remote failures
	// are returned as-is; NotFoundError and AuthError are used where the
	// backend can classify them.
	GetPayload(ctx context.Context, identifier string) (Payload, error)

	// ListIdentifiers returns every identifier the store knows about, in
	// the order the remote service returns them. Backends handle
	// pagination internally; a failure on any page fails the whole call.
	ListIdentifiers(ctx context.Context) ([]string, error)

	// Validate checks connectivity and credentials without retrieving any
	// secret values.
	Validate(ctx context.Context) error
}

// Payload is one secret's raw contents as returned by a store. The text is
// held in a memguard enclave so plaintext is encrypted at rest in memory
// until the parser opens it.
type Payload struct {
	Data     *secure.Buffer
	Version  string
	Metadata map[string]string
}

// NotFoundError indicates the store has no secret for the identifier.
type NotFoundError struct {
	Store      string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("secret '%s' not found in store '%s'", e.Identifier, e.Store)
}

// AuthError indicates authentication or authorization against the store
// failed.
type AuthError struct {
	Store   string
	Message string
}

func (e AuthError) Error() string {
	return fmt.Sprintf("store '%s': authentication failed: %s", e.Store, e.Message)
}

// NotSupportedError indicates the backend cannot perform the requested
// operation (e.g. the OS keychain cannot enumerate accounts).
type NotSupportedError struct {
	Store string
	Op    string
}

func (e NotSupportedError) Error() string {
	return fmt.Sprintf("store '%s' does not support %s", e.Store, e.Op)
}
