// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Storage      StorageConfig      `toml:"storage"`
	Audio        AudioConfig        `toml:"audio"`
	Enrichment   EnrichmentConfig   `toml:"enrichment"`
	Housekeeping HousekeepingConfig `toml:"housekeeping"`
	Logging      LoggingConfig      `toml:"logging"`

	Password string `toml:"-"` // Plain API password, set by CLI/env and hashed before use

	MinFreeSpaceBytes    int64         `toml:"-"` // Runtime computed value
	HousekeepingInterval time.Duration `toml:"-"` // Runtime computed value
	EnrichmentTimeout    time.Duration `toml:"-"` // Runtime computed value
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"` // bcrypt; empty disables API auth
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// StorageConfig describes where recordings live.
type StorageConfig struct {
	MediaRoot    string `toml:"media_root"`
	Extension    string `toml:"extension"`      // e.g. "wav"
	MinFreeSpace string `toml:"min_free_space"` // e.g. "10MB"
}

// AudioConfig holds capture and playback settings.
type AudioConfig struct {
	FFmpegPath     string `toml:"ffmpeg_path"`
	PlayerPath     string `toml:"player_path"`
	InputFormat    string `toml:"input_format"` // ffmpeg -f value, e.g. "pulse", "alsa", "avfoundation"
	Device         string `toml:"device"`
	SampleRate     int    `toml:"sample_rate"`
	Channels       int    `toml:"channels"`
	PermissionFile string `toml:"permission_file"`
}

// EnrichmentConfig holds the transcription/summarization client settings.
type EnrichmentConfig struct {
	APIKey             string `toml:"api_key"`
	BaseURL            string `toml:"base_url"`
	TranscriptionModel string `toml:"transcription_model"`
	SummaryModel       string `toml:"summary_model"`
	Language           string `toml:"language"` // empty lets the service detect it
	Timeout            string `toml:"timeout"`  // e.g. "60s"
	MaxRetries         int    `toml:"max_retries"`
	AutoEnrich         *bool  `toml:"auto_enrich"`
}

// HousekeepingConfig controls the background orphan cleanup.
type HousekeepingConfig struct {
	Interval string `toml:"interval"` // e.g. "1h", "1d"; "0" disables
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// AutoEnrichEnabled reports whether new recordings are enriched in the background.
func (e EnrichmentConfig) AutoEnrichEnabled() bool {
	return e.AutoEnrich == nil || *e.AutoEnrich
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist the generated API password hash.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes and durations.
func (c *Config) ParseAndValidate() error {
	if c.Storage.MinFreeSpace == "" {
		c.Storage.MinFreeSpace = "10MB"
	}
	sizeBytes, err := parseSize(c.Storage.MinFreeSpace)
	if err != nil {
		return fmt.Errorf("invalid min_free_space: %w", err)
	}
	c.MinFreeSpaceBytes = sizeBytes

	if c.Storage.Extension == "" {
		c.Storage.Extension = "wav"
	}
	c.Storage.Extension = strings.TrimPrefix(strings.ToLower(c.Storage.Extension), ".")

	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = "1h"
	}
	interval, err := ParseDuration(c.Housekeeping.Interval)
	if err != nil {
		return fmt.Errorf("invalid housekeeping interval: %w", err)
	}
	c.HousekeepingInterval = interval

	if c.Enrichment.Timeout == "" {
		c.Enrichment.Timeout = "60s"
	}
	timeout, err := ParseDuration(c.Enrichment.Timeout)
	if err != nil {
		return fmt.Errorf("invalid enrichment timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("invalid enrichment timeout: must be positive")
	}
	c.EnrichmentTimeout = timeout

	if c.Enrichment.MaxRetries < 0 {
		return fmt.Errorf("invalid max_retries: %d", c.Enrichment.MaxRetries)
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	return nil
}

// ParseDuration extends time.ParseDuration with a day unit ("7d").
// A bare "0" is accepted and means disabled.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid day duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration: %s", s)
	}
	return d, nil
}

var sizePattern = regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	matches := sizePattern.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
