package stores

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/secure"
	"github.com/systmms/secretgrep/pkg/store"
)

// AzureKeyVaultClientAPI defines the interface for Azure Key Vault operations
// This allows for mocking in tests. Listing goes through a separate
// injectable func because the SDK pager is a concrete type that cannot be
// mocked.
type AzureKeyVaultClientAPI interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// AzureKeyVaultStore implements the store client for Azure Key Vault.
type AzureKeyVaultStore struct {
	name     string
	client   AzureKeyVaultClientAPI
	vaultURL string
	// listSecretNames drives ListIdentifiers; the default walks the SDK
	// pager on the concrete client.
	listSecretNames func(ctx context.Context) ([]string, error)
}

// AzureOption is a functional option for configuring the store.
type AzureOption func(*AzureKeyVaultStore)

// WithAzureKeyVaultClient sets a custom Key Vault client (for testing)
func WithAzureKeyVaultClient(client AzureKeyVaultClientAPI) AzureOption {
	return func(s *AzureKeyVaultStore) {
		s.client = client
	}
}

// WithAzureSecretLister sets a custom listing implementation (for testing)
func WithAzureSecretLister(list func(ctx context.Context) ([]string, error)) AzureOption {
	return func(s *AzureKeyVaultStore) {
		s.listSecretNames = list
	}
}

// NewAzureKeyVaultStore creates an Azure Key Vault store client.
func NewAzureKeyVaultStore(name string, storeConfig map[string]interface{}, opts ...AzureOption) (*AzureKeyVaultStore, error) {
	vaultURL, _ := storeConfig["vault_url"].(string)
	if vaultURL == "" {
		return nil, dserrors.ConfigError{
			Field:      "vault_url",
			Message:    "vault_url is required for Azure Key Vault",
			Suggestion: "Provide the Key Vault URL (e.g., https://my-vault.vault.azure.net/)",
		}
	}
	if _, err := url.Parse(vaultURL); err != nil {
		return nil, dserrors.ConfigError{
			Field:      "vault_url",
			Message:    "Invalid vault_url format",
			Suggestion: "Use format: https://vault-name.vault.azure.net/",
		}
	}

	s := &AzureKeyVaultStore{
		name:     name,
		vaultURL: vaultURL,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		client, err := newAzureSecretsClient(vaultURL, storeConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Key Vault client: %w", err)
		}
		s.client = client
		if s.listSecretNames == nil {
			s.listSecretNames = func(ctx context.Context) ([]string, error) {
				return azureListSecretNames(ctx, client)
			}
		}
	}

	return s, nil
}

// newAzureSecretsClient builds the SDK client with the configured
// credential: user-assigned or system-assigned managed identity, service
// principal with client secret, or the default chain.
func newAzureSecretsClient(vaultURL string, storeConfig map[string]interface{}) (*azsecrets.Client, error) {
	var cred azcore.TokenCredential
	var err error

	tenantID, _ := storeConfig["tenant_id"].(string)
	clientID, _ := storeConfig["client_id"].(string)
	clientSecret, _ := storeConfig["client_secret"].(string)
	useManagedIdentity, _ := storeConfig["use_managed_identity"].(bool)
	userAssignedID, _ := storeConfig["user_assigned_identity_id"].(string)

	switch {
	case useManagedIdentity && userAssignedID != "":
		cred, err = azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
			ID: azidentity.ClientID(userAssignedID),
		})
	case useManagedIdentity:
		cred, err = azidentity.NewManagedIdentityCredential(nil)
	case clientSecret != "":
		cred, err = azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	default:
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	}
	if err != nil {
		return nil, err
	}

	return azsecrets.NewClient(vaultURL, cred, nil)
}

// azureListSecretNames walks the secret-properties pager.
func azureListSecretNames(ctx context.Context, client *azsecrets.Client) ([]string, error) {
	var names []string
	pager := client.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Value {
			if item.ID != nil {
				names = append(names, item.ID.Name())
			}
		}
	}
	return names, nil
}

// Name returns the configured store name.
func (s *AzureKeyVaultStore) Name() string {
	return s.name
}

// GetPayload retrieves the current version of one secret.
func (s *AzureKeyVaultStore) GetPayload(ctx context.Context, identifier string) (store.Payload, error) {
	resp, err := s.client.GetSecret(ctx, identifier, "", nil)
	if err != nil {
		return store.Payload{}, s.mapError(err, identifier)
	}

	payload := store.Payload{
		Metadata: map[string]string{
			"store": s.name,
			"vault": s.vaultURL,
		},
	}
	if resp.ID != nil {
		payload.Version = resp.ID.Version()
	}
	if resp.Value != nil {
		payload.Data = secure.NewBuffer([]byte(*resp.Value))
	}
	return payload, nil
}

// ListIdentifiers enumerates every secret name in the vault, in pager order.
func (s *AzureKeyVaultStore) ListIdentifiers(ctx context.Context) ([]string, error) {
	if s.listSecretNames == nil {
		return nil, store.NotSupportedError{Store: s.name, Op: "listing secrets"}
	}
	names, err := s.listSecretNames(ctx)
	if err != nil {
		return nil, s.mapError(err, "")
	}
	return names, nil
}

// Validate verifies connectivity by pulling one listing page.
func (s *AzureKeyVaultStore) Validate(ctx context.Context) error {
	if s.listSecretNames == nil {
		return nil
	}
	if _, err := s.listSecretNames(ctx); err != nil {
		return store.AuthError{
			Store:   s.name,
			Message: fmt.Sprintf("Azure Key Vault access failed: %v", err),
		}
	}
	return nil
}

// mapError converts Azure response errors to store errors.
func (s *AzureKeyVaultStore) mapError(err error, identifier string) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case 404:
			return &store.NotFoundError{Store: s.name, Identifier: identifier}
		case 401, 403:
			return store.AuthError{
				Store:   s.name,
				Message: fmt.Sprintf("Azure authentication/authorization failed: %v", err),
			}
		}
	}
	return fmt.Errorf("Azure Key Vault error: %w", err)
}
