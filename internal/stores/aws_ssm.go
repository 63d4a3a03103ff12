package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/systmms/secretgrep/internal/secure"
	"github.com/systmms/secretgrep/pkg/store"
)

// SSMClientAPI defines the interface for AWS SSM Parameter Store operations
// This allows for mocking in tests
type SSMClientAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
}

// SSMStore implements the store client for AWS SSM Parameter Store.
// SecureString parameters are decrypted on retrieval.
type SSMStore struct {
	name   string
	client SSMClientAPI
	region string
}

// SSMOption is a functional option for configuring the store.
type SSMOption func(*SSMStore)

// WithSSMClient sets a custom SSM client (for testing)
func WithSSMClient(client SSMClientAPI) SSMOption {
	return func(s *SSMStore) {
		s.client = client
	}
}

// NewSSMStore creates an AWS SSM Parameter Store client.
func NewSSMStore(name string, storeConfig map[string]interface{}, opts ...SSMOption) (*SSMStore, error) {
	region := "us-east-1"
	if r, ok := storeConfig["region"].(string); ok && r != "" {
		region = r
	}

	s := &SSMStore{
		name:   name,
		region: region,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s.client = ssm.NewFromConfig(cfg)
	}

	return s, nil
}

// Name returns the configured store name.
func (s *SSMStore) Name() string {
	return s.name
}

// GetPayload retrieves one parameter's value, decrypting SecureString
// parameters.
func (s *SSMStore) GetPayload(ctx context.Context, identifier string) (store.Payload, error) {
	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(identifier),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		if isParameterNotFound(err) {
			return store.Payload{}, &store.NotFoundError{Store: s.name, Identifier: identifier}
		}
		if isAWSAuthError(err) {
			return store.Payload{}, store.AuthError{
				Store:   s.name,
				Message: fmt.Sprintf("AWS authentication/authorization failed: %v", err),
			}
		}
		return store.Payload{}, fmt.Errorf("AWS SSM error: %w", err)
	}

	payload := store.Payload{
		Metadata: map[string]string{
			"store":  s.name,
			"region": s.region,
		},
	}
	if result.Parameter != nil {
		payload.Version = fmt.Sprintf("%d", result.Parameter.Version)
		if result.Parameter.Value != nil {
			payload.Data = secure.NewBuffer([]byte(*result.Parameter.Value))
		}
	}
	return payload, nil
}

// ListIdentifiers enumerates every parameter name, following NextToken
// pagination in the order AWS returns entries.
func (s *SSMStore) ListIdentifiers(ctx context.Context) ([]string, error) {
	var identifiers []string
	var nextToken *string

	for {
		result, err := s.client.DescribeParameters(ctx, &ssm.DescribeParametersInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("AWS SSM error: %w", err)
		}

		for _, param := range result.Parameters {
			identifiers = append(identifiers, aws.ToString(param.Name))
		}

		if result.NextToken == nil {
			return identifiers, nil
		}
		nextToken = result.NextToken
	}
}

// Validate verifies credentials by describing with a minimal page size.
func (s *SSMStore) Validate(ctx context.Context) error {
	_, err := s.client.DescribeParameters(ctx, &ssm.DescribeParametersInput{
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

func isParameterNotFound(err error) bool {
	var notFound *ssmtypes.ParameterNotFound
	return errors.As(err, &notFound)
}
