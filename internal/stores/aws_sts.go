package stores

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSClientAPI defines the interface for the AWS STS operations used by the
// doctor command. This allows for mocking in tests.
type STSClientAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSIdentity answers "who am I" for AWS-backed stores, so doctor can report
// which principal the configured credentials resolve to.
type STSIdentity struct {
	client STSClientAPI
}

// STSOption is a functional option for configuring STSIdentity.
type STSOption func(*STSIdentity)

// WithSTSClient sets a custom STS client (for testing)
func WithSTSClient(client STSClientAPI) STSOption {
	return func(s *STSIdentity) {
		s.client = client
	}
}

// NewSTSIdentity creates an STS identity checker for a region.
func NewSTSIdentity(region string, opts ...STSOption) (*STSIdentity, error) {
	s := &STSIdentity{}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s.client = sts.NewFromConfig(cfg)
	}
	return s, nil
}

// WhoAmI returns the caller's ARN.
func (s *STSIdentity) WhoAmI(ctx context.Context) (string, error) {
	result, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to resolve AWS caller identity: %w", err)
	}
	return aws.ToString(result.Arn), nil
}
