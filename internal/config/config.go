package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/logging"
	"github.com/systmms/secretgrep/pkg/store"
)

// EnvStore is the environment variable consulted for store selection when
// --store is not given.
const EnvStore = "SECRETGREP_STORE"

// Config holds the runtime configuration assembled from flags and
// secretgrep.yaml.
type Config struct {
	Path      string
	Logger    *logging.Logger
	StoreName string // --store flag, may be empty
	Format    string // --format flag, may be empty

	Definition *Definition

	// NewClient overrides store client construction. Tests inject fake
	// clients here; when nil, commands build real backends from the store
	// configuration.
	NewClient func(name string, cfg StoreConfig, logger *logging.Logger) (store.Client, error)
}

// Definition represents the secretgrep.yaml structure.
type Definition struct {
	Version  int                    `yaml:"version"`
	Stores   map[string]StoreConfig `yaml:"stores"`
	Defaults Defaults               `yaml:"defaults,omitempty"`
}

// StoreConfig holds one store's configuration: its backend type plus
// backend-specific settings kept inline.
type StoreConfig struct {
	Type      string                 `yaml:"type"`
	TimeoutMs int                    `yaml:"timeout_ms,omitempty"`
	Config    map[string]interface{} `yaml:",inline"`
}

// Timeout returns the per-fetch timeout, zero when unset (no timeout).
func (c StoreConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Defaults holds fallbacks applied when flags and environment are silent.
type Defaults struct {
	Store  string `yaml:"store,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// definitionSchema is the JSON Schema every loaded secretgrep.yaml must
// satisfy. Backend-specific keys are intentionally open: each backend
// validates its own settings at construction time.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "stores"],
  "properties": {
    "version": {"type": "integer", "enum": [0]},
    "stores": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "timeout_ms": {"type": "integer", "minimum": 1}
        }
      }
    },
    "defaults": {
      "type": "object",
      "properties": {
        "store": {"type": "string"},
        "format": {"type": "string", "enum": ["plain", "json"]}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// Load reads, parses, and schema-validates the secretgrep.yaml file.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return dserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Create a secretgrep.yaml with a 'stores:' section, or point --config at one",
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}

	if err := validateDefinition(data); err != nil {
		return err
	}

	c.Definition = &def
	return nil
}

// validateDefinition checks the raw document against the embedded schema.
// The YAML is re-marshalled to JSON because gojsonschema only understands
// JSON documents.
func validateDefinition(data []byte) error {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert configuration to JSON for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(definitionSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return dserrors.ConfigError{
			Message:    "configuration does not match the expected structure: " + strings.Join(problems, "; "),
			Suggestion: "Check the stores: and defaults: sections of your secretgrep.yaml",
		}
	}
	return nil
}

// SelectStore resolves which configured store to use: the --store flag wins,
// then SECRETGREP_STORE, then defaults.store.
func (c *Config) SelectStore() (string, StoreConfig, error) {
	name := c.StoreName
	if name == "" {
		name = os.Getenv(EnvStore)
	}
	if name == "" && c.Definition != nil {
		name = c.Definition.Defaults.Store
	}
	if name == "" {
		return "", StoreConfig{}, dserrors.ConfigError{
			Field:      "store",
			Message:    "no store selected",
			Suggestion: fmt.Sprintf("Use --store <name>, set %s, or set defaults.store in secretgrep.yaml", EnvStore),
		}
	}

	cfg, err := c.GetStore(name)
	if err != nil {
		return "", StoreConfig{}, err
	}
	return name, cfg, nil
}

// GetStore returns the configuration for a named store.
func (c *Config) GetStore(name string) (StoreConfig, error) {
	if c.Definition == nil || len(c.Definition.Stores) == 0 {
		return StoreConfig{}, dserrors.ConfigError{
			Field:      "stores",
			Message:    "no stores configured",
			Suggestion: "Add a 'stores:' section to your secretgrep.yaml",
		}
	}

	cfg, ok := c.Definition.Stores[name]
	if !ok {
		available := make([]string, 0, len(c.Definition.Stores))
		for n := range c.Definition.Stores {
			available = append(available, n)
		}
		sort.Strings(available)
		return StoreConfig{}, dserrors.ConfigError{
			Field:      "store",
			Value:      name,
			Message:    "store not found in configuration",
			Suggestion: fmt.Sprintf("Configured stores: %s", strings.Join(available, ", ")),
		}
	}
	return cfg, nil
}

// OutputFormat resolves the rendering format: the --format flag wins, then
// defaults.format, then plain.
func (c *Config) OutputFormat() string {
	if c.Format != "" {
		return c.Format
	}
	if c.Definition != nil && c.Definition.Defaults.Format != "" {
		return c.Definition.Defaults.Format
	}
	return "plain"
}
