package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/secretgrep/tests/fakes"
)

func TestGetCommand_SingleSecret(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"db_password": "secret123", "api_key": "abc123"}`)

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"app-config"})

	assert.Equal(t, "api_key = abc123\ndb_password = secret123\n", output)
}

func TestGetCommand_SingleSecretJSON(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"port": 5432, "tags": ["prod", "important"]}`)

	cfg := newTestConfig(t, fake)
	cfg.Format = "json"

	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"app-config"})

	assert.JSONEq(t, `{"port": 5432, "tags": ["prod", "important"]}`, output)
}

func TestGetCommand_MultipleSecrets(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"db_host": "localhost"}`)
	fake.AddPayload("app-urls", `{"api": "https://api.example.com"}`)

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"app-urls", "app-config"})

	// Plain output is ordered by identifier, keys qualified.
	expected := "app-config/db_host = localhost\n" +
		"app-urls/api = https://api.example.com\n"
	assert.Equal(t, expected, output)
}

func TestGetCommand_MultipleSecretsJSON(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"db_host": "localhost"}`)
	fake.AddPayload("app-urls", `{"api": "https://api.example.com"}`)

	cfg := newTestConfig(t, fake)
	cfg.Format = "json"

	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"app-config", "app-urls"})

	assert.JSONEq(t, `{
		"app-config": {"db_host": "localhost"},
		"app-urls": {"api": "https://api.example.com"}
	}`, output)
}

func TestGetCommand_GrepSingleSecret(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"db_host": "localhost", "db_port": 5432, "other": "x"}`)

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"app-config", "--grep", "db"})

	// Single-secret search uses bare key labels.
	assert.Equal(t, "db_host = localhost\ndb_port = 5432\n", output)
}

func TestGetCommand_GrepMultipleSecrets(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("my-app-config", `{"db_host": "localhost", "port": 5432}`)
	fake.AddPayload("my-app-urls", `{"api": "https://x", "web": "https://y"}`)

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"my-app-config", "my-app-urls", "--grep", "app"})

	// Both identifiers contain "app"; no key does.
	expected := "[Secret] my-app-config = 2 keys\n" +
		"[Secret] my-app-urls = 2 keys\n"
	assert.Equal(t, expected, output)
}

func TestGetCommand_GrepJSON(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"db_password": "secret123"}`)

	cfg := newTestConfig(t, fake)
	cfg.Format = "json"

	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"app-config", "--grep", "db"})

	var entries []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "db_password", entries[0].Label)
	assert.Equal(t, "secret123", entries[0].Value)
}

func TestGetCommand_GrepNoMatches(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"port": 5432}`)

	cfg := newTestConfig(t, fake)

	t.Run("single secret uses the keys-only message", func(t *testing.T) {
		cmd := NewGetCommand(cfg)
		cmd.SetArgs([]string{"app-config", "--grep", "xyz"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Equal(t, "No keys found matching pattern 'xyz'", err.Error())
	})

	t.Run("multiple secrets use the combined message", func(t *testing.T) {
		fake.AddPayload("app-urls", `{"api": "https://x"}`)
		cmd := NewGetCommand(cfg)
		cmd.SetArgs([]string{"app-config", "app-urls", "--grep", "xyz"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Equal(t, "No secrets or keys found matching pattern 'xyz'", err.Error())
	})
}

func TestGetCommand_IdentifiersFromEnvironment(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", `{"db_host": "localhost"}`)
	fake.AddPayload("app-urls", `{"api": "https://x"}`)

	t.Setenv(EnvSecrets, "app-config, app-urls")

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{})

	expected := "app-config/db_host = localhost\n" +
		"app-urls/api = https://x\n"
	assert.Equal(t, expected, output)
}

func TestGetCommand_NoIdentifiers(t *testing.T) {
	t.Setenv(EnvSecrets, "")

	cfg := newTestConfig(t, fakes.NewFakeStoreClient())
	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No secret identifiers given")
	assert.Contains(t, err.Error(), EnvSecrets)
}

func TestGetCommand_FetchFailureIsAllOrNothing(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("s1", `{"k": "v"}`)
	// s2 is not registered, so its fetch fails.

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"s1", "s2"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch secret 's2'")
}

func TestGetCommand_PayloadNotAnObject(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("scalar", `"just a string"`)

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"scalar"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a JSON object of key-value pairs")
}

func TestGetCommand_SpecialCharacterValues(t *testing.T) {
	payload, err := json.Marshal(map[string]string{
		"password":  "p@ss=word!#$%^&*()",
		"multiline": "line1\nline2",
	})
	require.NoError(t, err)

	fake := fakes.NewFakeStoreClient()
	fake.AddPayload("app-config", string(payload))

	cfg := newTestConfig(t, fake)
	cmd := NewGetCommand(cfg)
	output := captureOutput(t, cmd, []string{"app-config"})

	assert.Contains(t, output, "password = p@ss=word!#$%^&*()\n")
	assert.Contains(t, output, "multiline = line1\nline2\n")
}
