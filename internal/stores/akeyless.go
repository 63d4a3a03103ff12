package stores

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	akeyless "github.com/akeylesslabs/akeyless-go/v3"

	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/secure"
	"github.com/systmms/secretgrep/pkg/store"
)

// ErrAkeylessNotFound reports a path missing from a GetSecretValue response.
var ErrAkeylessNotFound = errors.New("secret not found")

// AkeylessAPI abstracts the Akeyless SDK operations used by the store. This
// allows for mocking in tests.
type AkeylessAPI interface {
	Authenticate(ctx context.Context) (token string, err error)
	GetSecretValue(ctx context.Context, token, path string) (string, error)
	ListItems(ctx context.Context, token, path string) ([]string, error)
}

// AkeylessStore implements the store client for Akeyless. Tokens are cached
// until shortly before they expire and refreshed under a lock, so concurrent
// fetches share one authentication.
type AkeylessStore struct {
	name string
	api  AkeylessAPI
	path string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// akeylessTokenTTL is conservative: Akeyless tokens last about 30 minutes.
const akeylessTokenTTL = 25 * time.Minute

// AkeylessOption is a functional option for configuring the store.
type AkeylessOption func(*AkeylessStore)

// WithAkeylessAPI sets a custom Akeyless API implementation (for testing)
func WithAkeylessAPI(api AkeylessAPI) AkeylessOption {
	return func(s *AkeylessStore) {
		s.api = api
	}
}

// NewAkeylessStore creates an Akeyless store client.
func NewAkeylessStore(name string, storeConfig map[string]interface{}, opts ...AkeylessOption) (*AkeylessStore, error) {
	path, _ := storeConfig["path"].(string)
	if path == "" {
		path = "/"
	}

	s := &AkeylessStore{
		name: name,
		path: path,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.api == nil {
		gatewayURL, _ := storeConfig["gateway_url"].(string)
		if gatewayURL == "" {
			gatewayURL = "https://api.akeyless.io"
		}
		accessID, _ := storeConfig["access_id"].(string)
		accessKey, _ := storeConfig["access_key"].(string)
		if accessID == "" || accessKey == "" {
			return nil, dserrors.ConfigError{
				Field:      "access_id",
				Message:    "access_id and access_key are required for Akeyless",
				Suggestion: "Set access_id and access_key in the store config",
			}
		}
		s.api = newAkeylessSDKClient(gatewayURL, accessID, accessKey)
	}

	return s, nil
}

// Name returns the configured store name.
func (s *AkeylessStore) Name() string {
	return s.name
}

// getToken returns the cached token, re-authenticating when it is stale.
func (s *AkeylessStore) getToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	token, err := s.api.Authenticate(ctx)
	if err != nil {
		return "", store.AuthError{
			Store:   s.name,
			Message: fmt.Sprintf("Akeyless authentication failed: %v", err),
		}
	}

	s.token = token
	s.tokenExpiry = time.Now().Add(akeylessTokenTTL)
	return token, nil
}

// GetPayload retrieves one secret by path.
func (s *AkeylessStore) GetPayload(ctx context.Context, identifier string) (store.Payload, error) {
	token, err := s.getToken(ctx)
	if err != nil {
		return store.Payload{}, err
	}

	value, err := s.api.GetSecretValue(ctx, token, identifier)
	if err != nil {
		if errors.Is(err, ErrAkeylessNotFound) {
			return store.Payload{}, &store.NotFoundError{Store: s.name, Identifier: identifier}
		}
		return store.Payload{}, fmt.Errorf("Akeyless error: %w", err)
	}

	return store.Payload{
		Data: secure.NewBuffer([]byte(value)),
		Metadata: map[string]string{
			"store": s.name,
		},
	}, nil
}

// ListIdentifiers enumerates every item under the configured path.
func (s *AkeylessStore) ListIdentifiers(ctx context.Context) ([]string, error) {
	token, err := s.getToken(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.api.ListItems(ctx, token, s.path)
	if err != nil {
		return nil, fmt.Errorf("Akeyless error: %w", err)
	}
	return items, nil
}

// Validate verifies credentials by authenticating.
func (s *AkeylessStore) Validate(ctx context.Context) error {
	_, err := s.getToken(ctx)
	return err
}

// akeylessSDKClient implements AkeylessAPI using the official SDK with
// API-key authentication.
type akeylessSDKClient struct {
	apiClient *akeyless.APIClient
	accessID  string
	accessKey string
}

func newAkeylessSDKClient(gatewayURL, accessID, accessKey string) *akeylessSDKClient {
	configuration := akeyless.NewConfiguration()
	configuration.Servers = []akeyless.ServerConfiguration{
		{URL: gatewayURL},
	}

	return &akeylessSDKClient{
		apiClient: akeyless.NewAPIClient(configuration),
		accessID:  accessID,
		accessKey: accessKey,
	}
}

func (c *akeylessSDKClient) Authenticate(ctx context.Context) (string, error) {
	authBody := akeyless.NewAuthWithDefaults()
	authBody.SetAccessId(c.accessID)
	authBody.SetAccessKey(c.accessKey)

	authRes, _, err := c.apiClient.V2Api.Auth(ctx).Body(*authBody).Execute()
	if err != nil {
		return "", fmt.Errorf("api key authentication failed: %w", err)
	}
	return authRes.GetToken(), nil
}

func (c *akeylessSDKClient) GetSecretValue(ctx context.Context, token, path string) (string, error) {
	body := akeyless.NewGetSecretValue([]string{path})
	body.SetToken(token)

	res, _, err := c.apiClient.V2Api.GetSecretValue(ctx).Body(*body).Execute()
	if err != nil {
		return "", err
	}

	// GetSecretValue returns a map of path -> value
	value, ok := res[path]
	if !ok {
		return "", ErrAkeylessNotFound
	}
	return value, nil
}

func (c *akeylessSDKClient) ListItems(ctx context.Context, token, path string) ([]string, error) {
	body := akeyless.NewListItems()
	body.SetPath(path)
	body.SetToken(token)

	res, _, err := c.apiClient.V2Api.ListItems(ctx).Body(*body).Execute()
	if err != nil {
		return nil, err
	}

	items := res.GetItems()
	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.GetItemName()
	}
	return paths, nil
}

var _ AkeylessAPI = (*akeylessSDKClient)(nil)
