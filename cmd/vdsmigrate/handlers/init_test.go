package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtstack/vdsmigrate/internal/config"
	"github.com/virtstack/vdsmigrate/internal/config/wizard"
)

// saveAndRestoreInitFactories saves and restores the init factory
// functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origFileExists := fileExists
	origConfirmOverwrite := confirmOverwrite
	origRunWizard := runWizard
	origWriteConfig := writeConfig

	t.Cleanup(func() {
		fileExists = origFileExists
		confirmOverwrite = origConfirmOverwrite
		runWizard = origRunWizard
		writeConfig = origWriteConfig
	})
}

func wizardResult() *wizard.Result {
	return &wizard.Result{
		Endpoint: "vcenter.example.com",
		Username: "admin",
		Hosts:    []string{"esx-01"},
	}
}

func TestInitWritesConfig(t *testing.T) {
	saveAndRestoreInitFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*wizard.Result, error) { return wizardResult(), nil }

	var written *config.Config
	var writtenPath string
	writeConfig = func(cfg *config.Config, path string) error {
		written = cfg
		writtenPath = path
		return nil
	}

	require.NoError(t, Init(context.Background(), "out.yaml"))

	require.NotNil(t, written)
	assert.Equal(t, "out.yaml", writtenPath)
	assert.Equal(t, "vcenter.example.com", written.VCenter.Endpoint)
	assert.Equal(t, config.DefaultSwitchName, written.SwitchName)
}

func TestInitAbortsWhenOverwriteDeclined(t *testing.T) {
	saveAndRestoreInitFactories(t)

	fileExists = func(string) bool { return true }
	confirmOverwrite = func(string) (bool, error) { return false, nil }

	wizardRan := false
	runWizard = func(context.Context) (*wizard.Result, error) {
		wizardRan = true
		return wizardResult(), nil
	}

	require.NoError(t, Init(context.Background(), "out.yaml"))
	assert.False(t, wizardRan)
}

func TestInitPropagatesWizardCancel(t *testing.T) {
	saveAndRestoreInitFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*wizard.Result, error) {
		return nil, errors.New("user aborted")
	}

	err := Init(context.Background(), "out.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInitPropagatesWriteFailure(t *testing.T) {
	saveAndRestoreInitFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*wizard.Result, error) { return wizardResult(), nil }
	writeConfig = func(*config.Config, string) error { return errors.New("read-only filesystem") }

	err := Init(context.Background(), "out.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config")
}
