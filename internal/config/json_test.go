package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Durations in JSON must be either duration strings ("30s") or
	// nanosecond numbers; the Duration wrapper accepts both.
	jsonBody := `{
		"vault": {
			"kdf_time": 2,
			"kdf_memory_kib": 131072,
			"kdf_threads": 8,
			"device_name": "work laptop"
		},
		"storage": {
			"dsn": "/home/user/.config/vaultcore/vault.db"
		},
		"registry": {
			"base_url": "https://vault.example.com",
			"request_timeout": "30s"
		},
		"workers": {
			"auto_lock_after": "5m",
			"approval_poll": "10s"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, uint32(2), cfg.Vault.KDFTime)
	assert.Equal(t, uint32(131072), cfg.Vault.KDFMemoryKiB)
	assert.Equal(t, uint8(8), cfg.Vault.KDFThreads)
	assert.Equal(t, "work laptop", cfg.Vault.DeviceName)

	assert.Equal(t, "/home/user/.config/vaultcore/vault.db", cfg.Storage.DSN)

	assert.Equal(t, "https://vault.example.com", cfg.Registry.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Registry.RequestTimeout)

	assert.Equal(t, 5*time.Minute, cfg.Workers.AutoLockAfter)
	assert.Equal(t, 10*time.Second, cfg.Workers.ApprovalPoll)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad_duration.json")

	// request_timeout should be a duration string; make it invalid.
	jsonBody := `{
		"registry": { "request_timeout": "not-a-duration" }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_EmptyObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// With non-pointer nested structs, all fields are zero values.
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseJSON_PartialObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "partial.json")

	jsonBody := `{
		"registry": { "base_url": "http://127.0.0.1:8000" }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Registry.BaseURL)
	assert.Zero(t, cfg.Registry.RequestTimeout)

	// Others remain zero
	assert.Equal(t, Vault{}, cfg.Vault)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Workers{}, cfg.Workers)
}
