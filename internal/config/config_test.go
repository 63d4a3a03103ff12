package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/secretgrep/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secretgrep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loadConfig(t *testing.T, content string) *Config {
	t.Helper()
	cfg := &Config{
		Path:   writeConfig(t, content),
		Logger: logging.New(false, true),
	}
	require.NoError(t, cfg.Load())
	return cfg
}

const validConfig = `
version: 0
stores:
  prod:
    type: aws-secretsmanager
    region: eu-central-1
    timeout_ms: 5000
  local:
    type: keychain
    service: myapp
defaults:
  store: prod
  format: json
`

// TestLoad tests reading and validating a well-formed configuration
func TestLoad(t *testing.T) {
	cfg := loadConfig(t, validConfig)

	require.NotNil(t, cfg.Definition)
	assert.Equal(t, 0, cfg.Definition.Version)
	assert.Len(t, cfg.Definition.Stores, 2)

	prod := cfg.Definition.Stores["prod"]
	assert.Equal(t, "aws-secretsmanager", prod.Type)
	assert.Equal(t, "eu-central-1", prod.Config["region"])
	assert.Equal(t, 5*time.Second, prod.Timeout())

	local := cfg.Definition.Stores["local"]
	assert.Equal(t, time.Duration(0), local.Timeout())

	assert.Equal(t, "prod", cfg.Definition.Defaults.Store)
	assert.Equal(t, "json", cfg.Definition.Defaults.Format)
}

// TestLoadFileNotFound tests the missing-file error
func TestLoadFileNotFound(t *testing.T) {
	cfg := &Config{
		Path:   filepath.Join(t.TempDir(), "absent.yaml"),
		Logger: logging.New(false, true),
	}
	err := cfg.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

// TestLoadInvalidYAML tests the syntax error path
func TestLoadInvalidYAML(t *testing.T) {
	cfg := &Config{
		Path:   writeConfig(t, "stores: [unclosed"),
		Logger: logging.New(false, true),
	}
	err := cfg.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML syntax")
}

// TestLoadSchemaViolations tests structurally invalid documents
func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing stores section",
			content: "version: 0\n",
		},
		{
			name: "empty stores section",
			content: `
version: 0
stores: {}
`,
		},
		{
			name: "unsupported version",
			content: `
version: 7
stores:
  prod:
    type: aws-secretsmanager
`,
		},
		{
			name: "store without type",
			content: `
version: 0
stores:
  prod:
    region: us-east-1
`,
		},
		{
			name: "bad defaults format",
			content: `
version: 0
stores:
  prod:
    type: keychain
    service: x
defaults:
  format: xml
`,
		},
		{
			name: "unknown top-level key",
			content: `
version: 0
stores:
  prod:
    type: keychain
    service: x
extras: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Path:   writeConfig(t, tt.content),
				Logger: logging.New(false, true),
			}
			err := cfg.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Configuration error")
		})
	}
}

// TestSelectStore tests the flag > environment > defaults precedence
func TestSelectStore(t *testing.T) {
	t.Run("flag wins over environment and defaults", func(t *testing.T) {
		cfg := loadConfig(t, validConfig)
		cfg.StoreName = "local"
		t.Setenv(EnvStore, "prod")

		name, storeCfg, err := cfg.SelectStore()
		require.NoError(t, err)
		assert.Equal(t, "local", name)
		assert.Equal(t, "keychain", storeCfg.Type)
	})

	t.Run("environment wins over defaults", func(t *testing.T) {
		cfg := loadConfig(t, validConfig)
		t.Setenv(EnvStore, "local")

		name, _, err := cfg.SelectStore()
		require.NoError(t, err)
		assert.Equal(t, "local", name)
	})

	t.Run("defaults apply last", func(t *testing.T) {
		cfg := loadConfig(t, validConfig)
		t.Setenv(EnvStore, "")

		name, _, err := cfg.SelectStore()
		require.NoError(t, err)
		assert.Equal(t, "prod", name)
	})

	t.Run("no selection anywhere is an error", func(t *testing.T) {
		cfg := loadConfig(t, `
version: 0
stores:
  prod:
    type: keychain
    service: x
`)
		t.Setenv(EnvStore, "")

		_, _, err := cfg.SelectStore()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no store selected")
	})

	t.Run("unknown store lists the configured ones", func(t *testing.T) {
		cfg := loadConfig(t, validConfig)
		cfg.StoreName = "staging"

		_, _, err := cfg.SelectStore()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store not found")
		assert.Contains(t, err.Error(), "local, prod")
	})
}

// TestOutputFormat tests the flag > defaults > plain precedence
func TestOutputFormat(t *testing.T) {
	cfg := loadConfig(t, validConfig)

	assert.Equal(t, "json", cfg.OutputFormat(), "defaults.format applies")

	cfg.Format = "plain"
	assert.Equal(t, "plain", cfg.OutputFormat(), "flag wins")

	bare := &Config{Logger: logging.New(false, true)}
	assert.Equal(t, "plain", bare.OutputFormat(), "plain is the final fallback")
}
