// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"
	"strconv"

	"voicejournal/internal/config"
	"voicejournal/internal/logging"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags variables
	cfgFile      string
	logLevel     string
	dbPath       string
	mediaRoot    string
	ffmpegPath   string
	playerPath   string
	apiKey       string
	host         string
	port         int
	password     string
	initConfig   string
	auditEnabled bool
)

func registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config_path", defaultConfigPath, "Path to the base configuration file. (Env: VJ_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: VJ_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the journal database. (Env: VJ_DATABASE_PATH)")
	cmd.PersistentFlags().StringVar(&mediaRoot, "media-root", "", "Directory holding the recordings. (Env: VJ_MEDIA_ROOT)")
	cmd.PersistentFlags().StringVar(&ffmpegPath, "ffmpeg-path", "", "Path to ffmpeg executable. (Env: VJ_FFMPEG_PATH)")
	cmd.PersistentFlags().StringVar(&playerPath, "player-path", "", "Path to the audio player executable. (Env: VJ_PLAYER_PATH)")
	cmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key of the transcription service. (Env: VJ_API_KEY)")
	cmd.PersistentFlags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: VJ_AUDIT_ENABLED=true)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("VJ_CONFIG_PATH"); envPath != "" && cfgFile == defaultConfigPath {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg, cmd)

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)
	goose.SetLogger(logging.Log)

	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command) {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment Variables ---
	if v := getEnv("VJ_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getEnv("VJ_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("VJ_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := getEnv("VJ_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("VJ_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}
	if v := getEnv("VJ_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getEnv("VJ_MEDIA_ROOT"); v != "" {
		c.Storage.MediaRoot = v
	}
	if v := getEnv("VJ_FFMPEG_PATH"); v != "" {
		c.Audio.FFmpegPath = v
	}
	if v := getEnv("VJ_PLAYER_PATH"); v != "" {
		c.Audio.PlayerPath = v
	}
	if v := getEnv("VJ_API_KEY"); v != "" {
		c.Enrichment.APIKey = v
	}
	if v := getEnv("VJ_HOUSEKEEPING_INTERVAL"); v != "" {
		c.Housekeeping.Interval = v
	}
	if initConfig == "" {
		if v := getEnv("VJ_INIT_CONFIG"); v != "" {
			initConfig = v
		}
	}

	// --- CLI Flags (Take precedence) ---
	if host != "" {
		c.Server.Host = host
	}
	if port != 0 {
		c.Server.Port = port
	}
	if password != "" {
		c.Password = password
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	// Check if flag was explicitly set
	if f := cmd.Flag("audit-enabled"); f != nil && f.Changed {
		c.Logging.AuditEnabled = auditEnabled
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if mediaRoot != "" {
		c.Storage.MediaRoot = mediaRoot
	}
	if ffmpegPath != "" {
		c.Audio.FFmpegPath = ffmpegPath
	}
	if playerPath != "" {
		c.Audio.PlayerPath = playerPath
	}
	if apiKey != "" {
		c.Enrichment.APIKey = apiKey
	}

	// --- Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Username == "" {
		c.Server.Username = "admin"
	}
	if c.Database.Path == "" {
		c.Database.Path = "voicejournal.db"
	}
	if c.Storage.MediaRoot == "" {
		c.Storage.MediaRoot = "recordings"
	}
	if c.Audio.PermissionFile == "" {
		c.Audio.PermissionFile = "permission.toml"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
