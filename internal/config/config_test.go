package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseagent/pulseagent/internal/config"
)

func TestLoad_DefaultsWithNoFileOrFlags(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Capture.FPS)
	assert.Equal(t, "http", cfg.Predictor.Backend)
	assert.Equal(t, 0.80, cfg.Predictor.MinConfidence)
	assert.True(t, cfg.Replay.Enabled)
	assert.True(t, cfg.Ledger.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pulseagent.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("capture:\n  fps: 7\npredictor:\n  backend: claude\n"), 0o644))

	cfg, err := config.Load(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Capture.FPS)
	assert.Equal(t, "claude", cfg.Predictor.Backend)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pulseagent.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("capture:\n  fps: 7\n"), 0o644))

	t.Setenv("PULSEAGENT_CAPTURE_FPS", "9")

	cfg, err := config.Load(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Capture.FPS)
}

func TestLoad_FlagOverridesEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pulseagent.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("capture:\n  fps: 7\n"), 0o644))
	t.Setenv("PULSEAGENT_CAPTURE_FPS", "9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("capture.fps", 3, "")
	require.NoError(t, flags.Set("capture.fps", "15"))

	cfg, err := config.Load(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Capture.FPS)
}

func TestLoad_MissingExplicitConfigFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
