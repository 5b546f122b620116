package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	MinecraftVersion   string `mapstructure:"MINECRAFT_VERSION"`
	MinecraftLoader    string `mapstructure:"MINECRAFT_LOADER"`
	ModrinthAPIKey     string `mapstructure:"MODRINTH_API_KEY"`
	UserAgent          string `mapstructure:"USERAGENT"`
	DataDir            string `mapstructure:"MODLIST_DIR"`
	ShareBackend       string `mapstructure:"SHARE_BACKEND"` // sqlite, redis or file
	RedisURL           string `mapstructure:"REDIS_URL"`
	ShareBaseURL       string `mapstructure:"SHARE_BASE_URL"`
	ResolveConcurrency int    `mapstructure:"RESOLVE_CONCURRENCY"`
	DatabasePath       string `mapstructure:"-"` // Not from env, derived
	ListPath           string `mapstructure:"-"` // Not from env, derived
}

// Share backend identifiers accepted in SHARE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	// Bind environment variables automatically.
	// Viper will check for an environment variable matching the key name (e.g., MODRINTH_API_KEY)
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"minecraft_version":   "MINECRAFT_VERSION",
		"minecraft_loader":    "MINECRAFT_LOADER",
		"modrinth_api_key":    "MODRINTH_API_KEY",
		"useragent":           "USERAGENT",
		"modlist_dir":         "MODLIST_DIR",
		"share_backend":       "SHARE_BACKEND",
		"redis_url":           "REDIS_URL",
		"share_base_url":      "SHARE_BASE_URL",
		"resolve_concurrency": "RESOLVE_CONCURRENCY",
	} {
		if bindErr := viper.BindEnv(key, env); bindErr != nil {
			slog.Warn("Unable to bind env var", "var", env, "error", bindErr)
		}
	}

	// Unmarshal the config
	if vipErr = viper.Unmarshal(&config); vipErr != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vipErr)
	}

	processConfigDefaults(&config)

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// processConfigDefaults fills in defaults for values that were not provided.
func processConfigDefaults(config *Config) {
	if config.MinecraftLoader == "" {
		config.MinecraftLoader = "fabric" // Default loader
	}
	if config.ShareBackend == "" {
		config.ShareBackend = BackendSQLite
	}

	// Viper doesn't handle int defaults from env well without explicit SetDefault,
	// so check the raw string value before trusting the unmarshalled zero.
	if config.ResolveConcurrency <= 0 {
		raw := viper.GetString("RESOLVE_CONCURRENCY")
		if raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				config.ResolveConcurrency = n
			} else {
				slog.Warn("Invalid value for RESOLVE_CONCURRENCY ('"+raw+"'), defaulting to 10", "error", err)
			}
		}
	}
	if config.ResolveConcurrency <= 0 {
		config.ResolveConcurrency = 10
	}

	if config.UserAgent == "" {
		config.UserAgent = "minecraft-mod-converter/dev (unknown-user)"
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
}

// validateAndEnsureDirectories checks required paths, creates the data
// directory and derives the file paths that live inside it.
func validateAndEnsureDirectories(config *Config) error {
	if config.DataDir == "" {
		slog.Error("MODLIST_DIR is not set")
		return fmt.Errorf("MODLIST_DIR is required")
	}

	if _, err := os.Stat(config.DataDir); os.IsNotExist(err) {
		slog.Info("Data directory does not exist, creating it", "path", config.DataDir)
		if err := os.MkdirAll(config.DataDir, 0755); err != nil {
			slog.Error("Failed to create data directory", "path", config.DataDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check data directory", "path", config.DataDir, "error", err)
		return err
	}

	// The file share backend stores one JSON file per code under shares/
	sharesDir := filepath.Join(config.DataDir, "shares")
	if _, err := os.Stat(sharesDir); os.IsNotExist(err) {
		if err := os.MkdirAll(sharesDir, 0755); err != nil {
			slog.Error("Failed to create shares directory", "path", sharesDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check shares directory", "path", sharesDir, "error", err)
		return err
	}

	config.DatabasePath = filepath.Join(config.DataDir, "shares.db")
	config.ListPath = filepath.Join(config.DataDir, "list.json")

	return nil
}

// SharesDir returns the directory used by the file share backend.
func (c Config) SharesDir() string {
	return filepath.Join(c.DataDir, "shares")
}
