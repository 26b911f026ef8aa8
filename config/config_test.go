// ABOUTME: Tests for layered configuration loading
// ABOUTME: Verifies defaults, file values, env overrides, and save round-trips
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("RIWORA_API_URL", "")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFromFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_url":"http://file.example/api/","log_level":"info","data_dir":"/tmp/riwora-data"}`), 0600))

	t.Setenv("RIWORA_API_URL", "")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file.example/api", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join("/tmp/riwora-data", "sandbox.db"), cfg.SandboxDB)
	assert.Equal(t, filepath.Join("/tmp/riwora-data", "session"), cfg.SessionDir())

	t.Setenv("RIWORA_API_URL", "http://env.example/api")
	t.Setenv("RIWORA_REQUEST_TIMEOUT", "3s")
	cfg, err = LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/api", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestDataDirFromEnvMovesSessionAndSandbox(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RIWORA_API_URL", "")
	t.Setenv("RIWORA_DATA_DIR", dir)
	t.Setenv("RIWORA_SANDBOX_DB", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "session"), cfg.SessionDir())
	assert.Equal(t, filepath.Join(dir, "sandbox.db"), cfg.SandboxDB)

	t.Setenv("RIWORA_SANDBOX_DB", "/tmp/elsewhere.db")
	cfg, err = LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.db", cfg.SandboxDB)
}

func TestLoadFromRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("RIWORA_API_URL", "")
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.NoError(t, cfg.SetAPIURL("http://saved.example/api/"))

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.example/api", reloaded.APIURL)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer

	cfg := &Config{LogLevel: "debug"}
	assert.Equal(t, log.DebugLevel, cfg.NewLogger(&buf).GetLevel())

	cfg.LogLevel = "nonsense"
	logger := cfg.NewLogger(&buf)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown", "op", "test")
	assert.Contains(t, buf.String(), "shown")
}
