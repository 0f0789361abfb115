package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rswatch/internal/config"
	"github.com/imamik/rswatch/internal/config/wizard"
)

// stubInit replaces the init factories and restores them after the test.
func stubInit(t *testing.T, exists bool, result *wizard.WizardResult, wizardErr error) *[]*config.Config {
	t.Helper()
	origExists, origConfirm, origWizard, origWrite := fileExists, confirmOverwrite, runWizard, writeConfig
	t.Cleanup(func() {
		fileExists, confirmOverwrite, runWizard, writeConfig = origExists, origConfirm, origWizard, origWrite
	})

	var written []*config.Config
	fileExists = func(string) bool { return exists }
	confirmOverwrite = func(string) (bool, error) { return true, nil }
	runWizard = func(context.Context) (*wizard.WizardResult, error) { return result, wizardErr }
	writeConfig = func(cfg *config.Config, _ string, _ bool) error {
		written = append(written, cfg)
		return nil
	}
	return &written
}

func TestInit_Success(t *testing.T) {
	written := stubInit(t, false, &wizard.WizardResult{
		Project:       "airline",
		Region:        "us-west-2",
		ConsumerCount: 3,
	}, nil)

	output := captureOutput(func() {
		require.NoError(t, Init(context.Background(), "rswatch.yaml", false))
	})

	require.Len(t, *written, 1)
	assert.Equal(t, "airline", (*written)[0].Project)
	assert.Equal(t, 3, (*written)[0].ConsumerCount)
	assert.Contains(t, output, "Configuration saved to: rswatch.yaml")
	assert.Contains(t, output, "Consumers: 3")
	assert.Contains(t, output, "rswatch watch -c rswatch.yaml")
}

func TestInit_OverwriteDeclined(t *testing.T) {
	written := stubInit(t, true, &wizard.WizardResult{Project: "airline"}, nil)
	confirmOverwrite = func(string) (bool, error) { return false, nil }

	output := captureOutput(func() {
		require.NoError(t, Init(context.Background(), "rswatch.yaml", false))
	})

	assert.Empty(t, *written)
	assert.Contains(t, output, "Aborted.")
}

func TestInit_WizardCanceled(t *testing.T) {
	written := stubInit(t, false, nil, errors.New("user aborted"))

	var err error
	captureOutput(func() {
		err = Init(context.Background(), "rswatch.yaml", false)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
	assert.Empty(t, *written)
}

func TestPrintInitSuccess_DetectConsumers(t *testing.T) {
	cfg := config.Default()
	output := captureOutput(func() {
		printInitSuccess("out.yaml", cfg)
	})
	assert.Contains(t, output, "Consumers: detect at startup")
}
