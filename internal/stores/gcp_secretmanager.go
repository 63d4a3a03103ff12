package stores

import (
	"context"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/secure"
	"github.com/systmms/secretgrep/pkg/store"
)

// GCPSecretManagerStore implements the store client for Google Cloud Secret
// Manager. Identifiers are plain secret names resolved against the
// configured project; a full "projects/.../secrets/..." resource name is
// passed through untouched.
type GCPSecretManagerStore struct {
	name      string
	client    *secretmanager.Client
	projectID string
}

// NewGCPSecretManagerStore creates a GCP Secret Manager store client.
func NewGCPSecretManagerStore(name string, storeConfig map[string]interface{}) (*GCPSecretManagerStore, error) {
	projectID, _ := storeConfig["project_id"].(string)
	if projectID == "" {
		projectID = gcpProjectFromEnv()
	}
	if projectID == "" {
		return nil, dserrors.ConfigError{
			Field:      "project_id",
			Message:    "project_id is required for GCP Secret Manager",
			Suggestion: "Set project_id in the store config or the GOOGLE_CLOUD_PROJECT environment variable",
		}
	}

	var clientOptions []option.ClientOption
	if keyPath, ok := storeConfig["credentials_file"].(string); ok && keyPath != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(keyPath))
	}

	client, err := secretmanager.NewClient(context.Background(), clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	return &GCPSecretManagerStore{
		name:      name,
		client:    client,
		projectID: projectID,
	}, nil
}

func gcpProjectFromEnv() string {
	for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT", "GCP_PROJECT"} {
		if projectID := os.Getenv(key); projectID != "" {
			return projectID
		}
	}
	return ""
}

// Name returns the configured store name.
func (s *GCPSecretManagerStore) Name() string {
	return s.name
}

// GetPayload accesses the latest version of one secret.
func (s *GCPSecretManagerStore) GetPayload(ctx context.Context, identifier string) (store.Payload, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: gcpVersionName(s.projectID, identifier),
	})
	if err != nil {
		return store.Payload{}, mapGCPError(s.name, identifier, err)
	}

	payload := store.Payload{
		Version: result.GetName(),
		Metadata: map[string]string{
			"store":   s.name,
			"project": s.projectID,
		},
	}
	if data := result.GetPayload().GetData(); len(data) > 0 {
		payload.Data = secure.NewBuffer(data)
	}
	return payload, nil
}

// ListIdentifiers enumerates every secret in the project, in iterator order.
func (s *GCPSecretManagerStore) ListIdentifiers(ctx context.Context) ([]string, error) {
	it := s.client.ListSecrets(ctx, &secretmanagerpb.ListSecretsRequest{
		Parent: "projects/" + s.projectID,
	})

	var identifiers []string
	for {
		secret, err := it.Next()
		if err == iterator.Done {
			return identifiers, nil
		}
		if err != nil {
			return nil, mapGCPError(s.name, "", err)
		}
		identifiers = append(identifiers, gcpSecretShortName(secret.GetName()))
	}
}

// Validate verifies credentials by pulling a single listing page.
func (s *GCPSecretManagerStore) Validate(ctx context.Context) error {
	it := s.client.ListSecrets(ctx, &secretmanagerpb.ListSecretsRequest{
		Parent:   "projects/" + s.projectID,
		PageSize: 1,
	})
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return store.AuthError{
			Store:   s.name,
			Message: fmt.Sprintf("GCP authentication failed: %v", err),
		}
	}
	return nil
}

// gcpVersionName builds the AccessSecretVersion resource name for an
// identifier. Plain names resolve to the latest version in the project.
func gcpVersionName(projectID, identifier string) string {
	if strings.HasPrefix(identifier, "projects/") {
		if strings.Contains(identifier, "/versions/") {
			return identifier
		}
		return identifier + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, identifier)
}

// gcpSecretShortName strips the "projects/<p>/secrets/" prefix from a
// listing entry.
func gcpSecretShortName(resourceName string) string {
	if idx := strings.LastIndex(resourceName, "/"); idx != -1 {
		return resourceName[idx+1:]
	}
	return resourceName
}

// mapGCPError converts gRPC status codes to store errors.
func mapGCPError(storeName, identifier string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return &store.NotFoundError{Store: storeName, Identifier: identifier}
	case codes.PermissionDenied, codes.Unauthenticated:
		return store.AuthError{
			Store:   storeName,
			Message: fmt.Sprintf("GCP authentication/authorization failed: %v", err),
		}
	default:
		return fmt.Errorf("GCP Secret Manager error: %w", err)
	}
}
