package fakes

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// FakeSecretsManagerClient is a mock implementation of the Secrets Manager
// client surface used by the aws-secretsmanager store.
type FakeSecretsManagerClient struct {
	// Secrets maps secret names to their data
	Secrets map[string]*SecretData
	// Errors maps secret names to errors to return
	Errors map[string]error
	// ListPageSize splits ListSecrets results into pages of this size
	// (0 means a single page).
	ListPageSize int
	// ListErr makes ListSecrets fail.
	ListErr error
	// GetSecretValueFunc allows custom behavior for GetSecretValue
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
	// ListSecretsFunc allows custom behavior for ListSecrets
	ListSecretsFunc func(ctx context.Context, params *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error)

	// ListCalls counts ListSecrets invocations.
	ListCalls int
}

// SecretData holds the data for a mock secret
type SecretData struct {
	SecretString  *string
	SecretBinary  []byte
	VersionId     *string
	VersionStages []string
	CreatedDate   *time.Time
}

// NewFakeSecretsManagerClient creates a new mock Secrets Manager client
func NewFakeSecretsManagerClient() *FakeSecretsManagerClient {
	return &FakeSecretsManagerClient{
		Secrets: make(map[string]*SecretData),
		Errors:  make(map[string]error),
	}
}

// AddSecretString adds a string secret to the mock client
func (f *FakeSecretsManagerClient) AddSecretString(name, value string) {
	now := time.Now()
	f.Secrets[name] = &SecretData{
		SecretString:  aws.String(value),
		VersionId:     aws.String("v1-abc123"),
		VersionStages: []string{"AWSCURRENT"},
		CreatedDate:   &now,
	}
}

// AddSecretBinary adds a binary secret to the mock client
func (f *FakeSecretsManagerClient) AddSecretBinary(name string, value []byte) {
	now := time.Now()
	f.Secrets[name] = &SecretData{
		SecretBinary:  value,
		VersionId:     aws.String("v1-abc123"),
		VersionStages: []string{"AWSCURRENT"},
		CreatedDate:   &now,
	}
}

// AddError configures the mock to return an error for a specific secret
func (f *FakeSecretsManagerClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// GetSecretValue mocks the GetSecretValue operation
func (f *FakeSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if f.GetSecretValueFunc != nil {
		return f.GetSecretValueFunc(ctx, params)
	}

	secretName := aws.ToString(params.SecretId)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	data, exists := f.Secrets[secretName]
	if !exists {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Secrets Manager can't find the specified secret: %s", secretName)),
		}
	}

	return &secretsmanager.GetSecretValueOutput{
		ARN:           aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", secretName)),
		Name:          params.SecretId,
		SecretString:  data.SecretString,
		SecretBinary:  data.SecretBinary,
		VersionId:     data.VersionId,
		VersionStages: data.VersionStages,
		CreatedDate:   data.CreatedDate,
	}, nil
}

// ListSecrets mocks the ListSecrets operation. Secret names are returned in
// sorted order, split into pages when ListPageSize is set.
func (f *FakeSecretsManagerClient) ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error) {
	f.ListCalls++

	if f.ListSecretsFunc != nil {
		return f.ListSecretsFunc(ctx, params)
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	names := make([]string, 0, len(f.Secrets))
	for name := range f.Secrets {
		names = append(names, name)
	}
	sort.Strings(names)

	start := 0
	if params.NextToken != nil {
		if _, err := fmt.Sscanf(aws.ToString(params.NextToken), "offset-%d", &start); err != nil {
			return nil, fmt.Errorf("bad next token %q", aws.ToString(params.NextToken))
		}
	}

	end := len(names)
	if f.ListPageSize > 0 && start+f.ListPageSize < end {
		end = start + f.ListPageSize
	}

	output := &secretsmanager.ListSecretsOutput{}
	for _, name := range names[start:end] {
		output.SecretList = append(output.SecretList, types.SecretListEntry{
			Name: aws.String(name),
		})
	}
	if end < len(names) {
		output.NextToken = aws.String(fmt.Sprintf("offset-%d", end))
	}
	return output, nil
}

// FakeSSMClient is a mock implementation of the SSM Parameter Store client
// surface used by the aws-ssm store.
type FakeSSMClient struct {
	// Parameters maps parameter names to their data
	Parameters map[string]*ParameterData
	// Errors maps parameter names to errors to return
	Errors map[string]error
	// DescribeErr makes DescribeParameters fail.
	DescribeErr error
	// GetParameterFunc allows custom behavior for GetParameter
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
	// DescribeParametersFunc allows custom behavior for DescribeParameters
	DescribeParametersFunc func(ctx context.Context, params *ssm.DescribeParametersInput) (*ssm.DescribeParametersOutput, error)
}

// ParameterData holds the data for a mock SSM parameter
type ParameterData struct {
	Name             *string
	Type             ssmtypes.ParameterType
	Value            *string
	Version          int64
	LastModifiedDate *time.Time
	ARN              *string
}

// NewFakeSSMClient creates a new mock SSM client
func NewFakeSSMClient() *FakeSSMClient {
	return &FakeSSMClient{
		Parameters: make(map[string]*ParameterData),
		Errors:     make(map[string]error),
	}
}

// AddSecureStringParameter adds a SecureString parameter to the mock client
func (f *FakeSSMClient) AddSecureStringParameter(name, value string) {
	now := time.Now()
	f.Parameters[name] = &ParameterData{
		Name:             aws.String(name),
		Type:             ssmtypes.ParameterTypeSecureString,
		Value:            aws.String(value),
		Version:          1,
		LastModifiedDate: &now,
		ARN:              aws.String(fmt.Sprintf("arn:aws:ssm:us-east-1:123456789012:parameter%s", name)),
	}
}

// AddError configures the mock to return an error for a specific parameter
func (f *FakeSSMClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// GetParameter mocks the GetParameter operation
func (f *FakeSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	if f.GetParameterFunc != nil {
		return f.GetParameterFunc(ctx, params)
	}

	paramName := aws.ToString(params.Name)

	if err, exists := f.Errors[paramName]; exists {
		return nil, err
	}

	data, exists := f.Parameters[paramName]
	if !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", paramName)),
		}
	}

	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:             data.Name,
			Type:             data.Type,
			Value:            data.Value,
			Version:          data.Version,
			LastModifiedDate: data.LastModifiedDate,
			ARN:              data.ARN,
		},
	}, nil
}

// DescribeParameters mocks the DescribeParameters operation, returning all
// parameters sorted by name in a single page.
func (f *FakeSSMClient) DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error) {
	if f.DescribeParametersFunc != nil {
		return f.DescribeParametersFunc(ctx, params)
	}
	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}

	names := make([]string, 0, len(f.Parameters))
	for name := range f.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	output := &ssm.DescribeParametersOutput{}
	for _, name := range names {
		data := f.Parameters[name]
		output.Parameters = append(output.Parameters, ssmtypes.ParameterMetadata{
			Name:             data.Name,
			Type:             data.Type,
			Version:          data.Version,
			LastModifiedDate: data.LastModifiedDate,
		})
	}
	return output, nil
}

// FakeSTSClient is a mock implementation of the STS client surface used by
// the doctor command's identity check.
type FakeSTSClient struct {
	// Arn is the caller identity ARN to report.
	Arn string
	// Err makes GetCallerIdentity fail.
	Err error
}

// GetCallerIdentity mocks the GetCallerIdentity operation
func (f *FakeSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String(f.Arn),
		UserId:  aws.String("AIDAEXAMPLE"),
	}, nil
}
