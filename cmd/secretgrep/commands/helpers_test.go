package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/systmms/secretgrep/internal/config"
	"github.com/systmms/secretgrep/internal/logging"
	"github.com/systmms/secretgrep/pkg/store"
)

const testConfigYAML = `version: 0
stores:
  test:
    type: aws-secretsmanager
    region: us-east-1
defaults:
  store: test
`

// newTestConfig writes a minimal secretgrep.yaml and wires a fake store
// client into the command configuration.
func newTestConfig(t *testing.T, client store.Client) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "secretgrep.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfigYAML), 0o600))

	return &config.Config{
		Path:   configPath,
		Logger: logging.New(false, true),
		NewClient: func(name string, cfg config.StoreConfig, logger *logging.Logger) (store.Client, error) {
			return client, nil
		},
	}
}

// captureOutput captures stdout produced by a command run that must succeed
func captureOutput(t *testing.T, cmd *cobra.Command, args []string) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	if args != nil {
		cmd.SetArgs(args)
	}

	err := cmd.Execute()
	if err != nil {
		_ = w.Close()
		os.Stdout = old
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		t.Logf("Command output before error: %s", buf.String())
		require.NoError(t, err)
	}

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	return buf.String()
}
