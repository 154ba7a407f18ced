package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "leadgen_runs.db", cfg.Store.RunDB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "https://api.clay.com/v1", cfg.Clay.BaseURL)
	assert.InDelta(t, 1.0, cfg.Clay.RateLimit, 0.001)
	assert.Equal(t, 10, cfg.Clay.SearchLimit)
	assert.Contains(t, cfg.Clay.TargetTitles, "Superintendent")
	assert.Contains(t, cfg.Clay.TargetTitles, "Chief of Police")
	assert.Equal(t, "https://api.instantly.ai/api/v1", cfg.Instantly.BaseURL)
	assert.Equal(t, "camp_tx_superintendents_q1_2026", cfg.Instantly.Campaigns["superintendent"])
	assert.Equal(t, "camp_tx_safety_directors_q1_2026", cfg.Instantly.Campaigns["safety_director"])
	assert.Equal(t, "https://schools.texastribune.org", cfg.Discover.TribuneBaseURL)
	assert.Equal(t, 3, cfg.Resolver.ProbeTimeoutSecs)
	assert.InDelta(t, 2.0, cfg.Resolver.ProbeRate, 0.001)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
  format: console
clay:
  key: test-key
  rate_limit: 5
resolver:
  overrides:
    Frisco ISD: friscoisd.org
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "test-key", cfg.Clay.Key)
	assert.InDelta(t, 5.0, cfg.Clay.RateLimit, 0.001)
	assert.Equal(t, "friscoisd.org", cfg.Resolver.Overrides["Frisco ISD"])
	// Defaults still apply for unset values
	assert.Equal(t, 10, cfg.Clay.SearchLimit)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("LEADGEN_INSTANTLY_KEY", "env-key")
	t.Setenv("LEADGEN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Instantly.Key)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
}

func TestInitLoggerBadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
