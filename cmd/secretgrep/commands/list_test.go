package commands

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/secretgrep/tests/fakes"
)

func TestListCommand_Plain(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.ListResult = []string{"app-config", "app-urls", "billing"}

	cfg := newTestConfig(t, fake)
	cmd := NewListCommand(cfg)
	output := captureOutput(t, cmd, []string{})

	assert.Equal(t, "app-config\napp-urls\nbilling\n", output)
}

func TestListCommand_JSON(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.ListResult = []string{"app-config", "app-urls"}

	cfg := newTestConfig(t, fake)
	cfg.Format = "json"

	cmd := NewListCommand(cfg)
	output := captureOutput(t, cmd, []string{})

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(output), &ids))
	assert.Equal(t, []string{"app-config", "app-urls"}, ids)
}

func TestListCommand_EmptyStore(t *testing.T) {
	fake := fakes.NewFakeStoreClient()

	cfg := newTestConfig(t, fake)
	cfg.Format = "json"

	cmd := NewListCommand(cfg)
	output := captureOutput(t, cmd, []string{})
	assert.JSONEq(t, `[]`, output)
}

func TestListCommand_ListingFailure(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.ListErr = errors.New("connection refused")

	cfg := newTestConfig(t, fake)
	cmd := NewListCommand(cfg)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list secrets")
}

func TestListCommand_RejectsArguments(t *testing.T) {
	fake := fakes.NewFakeStoreClient()

	cfg := newTestConfig(t, fake)
	cmd := NewListCommand(cfg)
	cmd.SetArgs([]string{"unexpected"})

	assert.Error(t, cmd.Execute())
}
