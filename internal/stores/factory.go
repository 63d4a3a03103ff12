package stores

import (
	"strings"

	"github.com/systmms/secretgrep/internal/config"
	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/logging"
	"github.com/systmms/secretgrep/pkg/store"
)

// SupportedTypes lists every backend type the factory can build.
var SupportedTypes = []string{
	"aws-secretsmanager",
	"aws-ssm",
	"gcp-secretmanager",
	"azure-keyvault",
	"akeyless",
	"keychain",
}

// New builds a store client from its configuration.
func New(name string, cfg config.StoreConfig, logger *logging.Logger) (store.Client, error) {
	logger.Debug("building store client %s (type %s)", name, cfg.Type)

	switch cfg.Type {
	case "aws-secretsmanager":
		return NewSecretsManagerStore(name, cfg.Config)
	case "aws-ssm":
		return NewSSMStore(name, cfg.Config)
	case "gcp-secretmanager":
		return NewGCPSecretManagerStore(name, cfg.Config)
	case "azure-keyvault":
		return NewAzureKeyVaultStore(name, cfg.Config)
	case "akeyless":
		return NewAkeylessStore(name, cfg.Config)
	case "keychain":
		return NewKeychainStore(name, cfg.Config)
	default:
		return nil, dserrors.ConfigError{
			Field:      "type",
			Value:      cfg.Type,
			Message:    "unknown store type",
			Suggestion: "Supported types: " + strings.Join(SupportedTypes, ", "),
		}
	}
}

// IsAWSType reports whether a store type is AWS-backed; doctor uses this to
// decide whether an STS identity check applies.
func IsAWSType(storeType string) bool {
	return strings.HasPrefix(storeType, "aws-")
}

// Region extracts the configured AWS region, falling back to the SDK
// default.
func Region(cfg config.StoreConfig) string {
	if r, ok := cfg.Config["region"].(string); ok && r != "" {
		return r
	}
	return "us-east-1"
}
