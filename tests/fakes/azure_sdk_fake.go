package fakes

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// FakeAzureKeyVaultClient is a mock implementation of the Key Vault client
// surface used by the azure-keyvault store.
type FakeAzureKeyVaultClient struct {
	// Secrets maps secret names to their values
	Secrets map[string]string
	// Errors maps secret names to errors to return
	Errors map[string]error
	// GetSecretFunc allows custom behavior for GetSecret
	GetSecretFunc func(ctx context.Context, name string, version string) (azsecrets.GetSecretResponse, error)
}

// NewFakeAzureKeyVaultClient creates a new mock Azure Key Vault client
func NewFakeAzureKeyVaultClient() *FakeAzureKeyVaultClient {
	return &FakeAzureKeyVaultClient{
		Secrets: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// AddSecretString adds a string secret to the mock client
func (f *FakeAzureKeyVaultClient) AddSecretString(name, value string) {
	f.Secrets[name] = value
}

// AddError configures the mock to return an error for a specific secret
func (f *FakeAzureKeyVaultClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// ListNames returns the configured secret names; inject it as the store's
// secret lister.
func (f *FakeAzureKeyVaultClient) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.Secrets))
	for name := range f.Secrets {
		names = append(names, name)
	}
	return names, nil
}

// GetSecret mocks the GetSecret operation
func (f *FakeAzureKeyVaultClient) GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	if f.GetSecretFunc != nil {
		return f.GetSecretFunc(ctx, name, version)
	}

	if err, exists := f.Errors[name]; exists {
		return azsecrets.GetSecretResponse{}, err
	}

	value, exists := f.Secrets[name]
	if !exists {
		return azsecrets.GetSecretResponse{}, &azcore.ResponseError{
			StatusCode: 404,
			ErrorCode:  "SecretNotFound",
		}
	}

	id := azsecrets.ID(fmt.Sprintf("https://test-vault.vault.azure.net/secrets/%s/v1", name))
	return azsecrets.GetSecretResponse{
		Secret: azsecrets.Secret{
			ID:    &id,
			Value: to.Ptr(value),
		},
	}, nil
}
