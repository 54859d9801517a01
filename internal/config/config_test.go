// filepath: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		hasError bool
	}{
		{"10MB", 10 * 1024 * 1024, false},
		{"512KB", 512 * 1024, false},
		{"1GB", 1 << 30, false},
		{"100", 100, false},
		{"1024B", 1024, false},
		{" 4 MB ", 4194304, false},
		{"8mb", 8388608, false},
		{"invalid", 0, true},
		{"10XB", 0, true},
		{"-10MB", 0, true},
	}

	for _, tc := range tests {
		val, err := parseSize(tc.input)
		if tc.hasError {
			assert.Error(t, err, "Expected error for input: %s", tc.input)
		} else {
			assert.NoError(t, err, "Unexpected error for input: %s", tc.input)
			assert.Equal(t, tc.expected, val, "Mismatch for input: %s", tc.input)
		}
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("2d")
	assert.NoError(t, err)
	assert.Equal(t, 48*time.Hour, d)

	d, err = ParseDuration("90m")
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	d, err = ParseDuration("0")
	assert.NoError(t, err)
	assert.Zero(t, d)

	_, err = ParseDuration("xd")
	assert.Error(t, err)
	_, err = ParseDuration("-5m")
	assert.Error(t, err)
}

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, "10MB", cfg.Storage.MinFreeSpace)
		assert.Equal(t, int64(10*1024*1024), cfg.MinFreeSpaceBytes)
		assert.Equal(t, "wav", cfg.Storage.Extension)
		assert.Equal(t, time.Hour, cfg.HousekeepingInterval)
		assert.Equal(t, 60*time.Second, cfg.EnrichmentTimeout)
		assert.Equal(t, 44100, cfg.Audio.SampleRate)
		assert.Equal(t, 1, cfg.Audio.Channels)
		assert.True(t, cfg.Enrichment.AutoEnrichEnabled())
	})

	t.Run("Extension is normalized", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Extension: ".M4A"}}
		assert.NoError(t, cfg.ParseAndValidate())
		assert.Equal(t, "m4a", cfg.Storage.Extension)
	})

	t.Run("Housekeeping disabled", func(t *testing.T) {
		cfg := &Config{Housekeeping: HousekeepingConfig{Interval: "0"}}
		assert.NoError(t, cfg.ParseAndValidate())
		assert.Zero(t, cfg.HousekeepingInterval)
	})

	t.Run("Invalid size", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{MinFreeSpace: "NotASize"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid min_free_space")
	})

	t.Run("Invalid timeout", func(t *testing.T) {
		cfg := &Config{Enrichment: EnrichmentConfig{Timeout: "soon"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid enrichment timeout")
	})

	t.Run("Invalid port", func(t *testing.T) {
		cfg := &Config{Server: ServerConfig{Port: 70000}}
		assert.Error(t, cfg.ParseAndValidate())
	})

	t.Run("Auto enrich can be disabled", func(t *testing.T) {
		off := false
		cfg := &Config{Enrichment: EnrichmentConfig{AutoEnrich: &off}}
		assert.NoError(t, cfg.ParseAndValidate())
		assert.False(t, cfg.Enrichment.AutoEnrichEnabled())
	})
}

func TestLoadAndSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := []byte(`
[server]
port = 9191
password_hash = "$2a$10$abc"

[storage]
media_root = "/tmp/voice"
min_free_space = "50MB"

[enrichment]
api_key = "sk-test"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "/tmp/voice", cfg.Storage.MediaRoot)
	assert.Equal(t, "sk-test", cfg.Enrichment.APIKey)

	cfg.Server.Port = 9292
	require.NoError(t, SaveConfig(path, cfg))

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9292, reloaded.Server.Port)
	assert.Equal(t, "$2a$10$abc", reloaded.Server.PasswordHash)
	assert.Equal(t, "50MB", reloaded.Storage.MinFreeSpace)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, os.IsNotExist(err))
}
