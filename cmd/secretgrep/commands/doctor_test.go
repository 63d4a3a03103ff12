package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/secretgrep/tests/fakes"
)

func TestDoctorCommand_Healthy(t *testing.T) {
	cfg := newTestConfig(t, fakes.NewFakeStoreClient())
	cmd := NewDoctorCommand(cfg)
	cmd.SetArgs([]string{})

	assert.NoError(t, cmd.Execute())
}

func TestDoctorCommand_ValidationFailure(t *testing.T) {
	fake := fakes.NewFakeStoreClient()
	fake.ValidateErr = errors.New("credentials expired")

	cfg := newTestConfig(t, fake)
	cmd := NewDoctorCommand(cfg)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials expired")
}

func TestDoctorCommand_MissingConfig(t *testing.T) {
	cfg := newTestConfig(t, fakes.NewFakeStoreClient())
	cfg.Path = cfg.Path + ".absent"

	cmd := NewDoctorCommand(cfg)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestDoctorCommand_UnknownStore(t *testing.T) {
	cfg := newTestConfig(t, fakes.NewFakeStoreClient())
	cfg.StoreName = "staging"

	cmd := NewDoctorCommand(cfg)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store not found")
}
