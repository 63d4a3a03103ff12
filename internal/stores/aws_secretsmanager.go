// Package stores implements the pkg/store.Client contract for each
// supported secret-store backend and the factory that builds a client from
// configuration.
package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/systmms/secretgrep/internal/secure"
	"github.com/systmms/secretgrep/pkg/store"
)

// SecretsManagerClientAPI defines the interface for AWS Secrets Manager operations
// This allows for mocking in tests
type SecretsManagerClientAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

// SecretsManagerStore implements the store client for AWS Secrets Manager.
type SecretsManagerStore struct {
	name     string
	client   SecretsManagerClientAPI
	region   string
	endpoint string // Optional custom endpoint for LocalStack or testing
}

// SecretsManagerOption is a functional option for configuring the store.
type SecretsManagerOption func(*SecretsManagerStore)

// WithSecretsManagerClient sets a custom Secrets Manager client (for testing)
func WithSecretsManagerClient(client SecretsManagerClientAPI) SecretsManagerOption {
	return func(s *SecretsManagerStore) {
		s.client = client
	}
}

// NewSecretsManagerStore creates an AWS Secrets Manager store client.
func NewSecretsManagerStore(name string, storeConfig map[string]interface{}, opts ...SecretsManagerOption) (*SecretsManagerStore, error) {
	region := "us-east-1"
	if r, ok := storeConfig["region"].(string); ok && r != "" {
		region = r
	}

	var endpoint string
	if e, ok := storeConfig["endpoint"].(string); ok && e != "" {
		endpoint = e
	}

	// Optional static credentials for LocalStack/testing
	var accessKeyID, secretAccessKey string
	if ak, ok := storeConfig["access_key_id"].(string); ok && ak != "" {
		accessKeyID = ak
	}
	if sk, ok := storeConfig["secret_access_key"].(string); ok && sk != "" {
		secretAccessKey = sk
	}

	s := &SecretsManagerStore{
		name:     name,
		region:   region,
		endpoint: endpoint,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		var configOpts []func(*awsconfig.LoadOptions) error
		configOpts = append(configOpts, awsconfig.WithRegion(region))

		if accessKeyID != "" && secretAccessKey != "" {
			configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
			))
		}

		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var clientOpts []func(*secretsmanager.Options)
		if endpoint != "" {
			clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
				o.BaseEndpoint = &endpoint
			})
		}
		s.client = secretsmanager.NewFromConfig(cfg, clientOpts...)
	}

	return s, nil
}

// Name returns the configured store name.
func (s *SecretsManagerStore) Name() string {
	return s.name
}

// GetPayload retrieves one secret's raw payload. Binary-only secrets return
// a payload with nil Data, which the fetcher reports as non-textual.
func (s *SecretsManagerStore) GetPayload(ctx context.Context, identifier string) (store.Payload, error) {
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(identifier),
	})
	if err != nil {
		return store.Payload{}, s.mapError(err, identifier)
	}

	payload := store.Payload{
		Version: secretsManagerVersion(result),
		Metadata: map[string]string{
			"store":  s.name,
			"region": s.region,
		},
	}
	if result.SecretString != nil {
		payload.Data = secure.NewBuffer([]byte(*result.SecretString))
	}
	return payload, nil
}

// ListIdentifiers enumerates every secret name, following NextToken
// pagination in the order AWS returns entries.
func (s *SecretsManagerStore) ListIdentifiers(ctx context.Context) ([]string, error) {
	var identifiers []string
	var nextToken *string

	for {
		result, err := s.client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, s.mapError(err, "")
		}

		for _, entry := range result.SecretList {
			identifiers = append(identifiers, aws.ToString(entry.Name))
		}

		if result.NextToken == nil {
			return identifiers, nil
		}
		nextToken = result.NextToken
	}
}

// Validate verifies credentials by listing with a minimal page size.
func (s *SecretsManagerStore) Validate(ctx context.Context) error {
	_, err := s.client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return store.AuthError{
			Store:   s.name,
			Message: fmt.Sprintf("AWS authentication failed: %v", err),
		}
	}
	return nil
}

// mapError converts AWS errors to store errors.
func (s *SecretsManagerStore) mapError(err error, identifier string) error {
	if isSecretsManagerNotFound(err) {
		return &store.NotFoundError{Store: s.name, Identifier: identifier}
	}
	if isAWSAuthError(err) {
		return store.AuthError{
			Store:   s.name,
			Message: fmt.Sprintf("AWS authentication/authorization failed: %v", err),
		}
	}
	return fmt.Errorf("AWS Secrets Manager error: %w", err)
}

func secretsManagerVersion(result *secretsmanager.GetSecretValueOutput) string {
	if result.VersionId != nil {
		return *result.VersionId
	}
	if len(result.VersionStages) > 0 {
		return result.VersionStages[0]
	}
	return "latest"
}

func isSecretsManagerNotFound(err error) bool {
	var notFound *smtypes.ResourceNotFoundException
	return errors.As(err, &notFound)
}

func isAWSAuthError(err error) bool {
	// Common auth-related failures surface only in the message text
	errStr := err.Error()
	return strings.Contains(errStr, "AccessDenied") ||
		strings.Contains(errStr, "UnauthorizedOperation") ||
		strings.Contains(errStr, "InvalidUserID") ||
		strings.Contains(errStr, "Forbidden")
}
