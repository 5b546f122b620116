package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestProcessConfigDefaults(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.MinecraftLoader != "fabric" {
			t.Errorf("Expected MinecraftLoader to be fabric, got %s", cfg.MinecraftLoader)
		}
		if cfg.ShareBackend != BackendSQLite {
			t.Errorf("Expected ShareBackend to be sqlite, got %s", cfg.ShareBackend)
		}
		if cfg.ResolveConcurrency != 10 {
			t.Errorf("Expected ResolveConcurrency to be 10, got %d", cfg.ResolveConcurrency)
		}
		if cfg.UserAgent == "" {
			t.Error("Expected UserAgent to have a default value")
		}
	})

	t.Run("respects existing values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{
			MinecraftLoader:    "forge",
			ShareBackend:       BackendRedis,
			ResolveConcurrency: 4,
			UserAgent:          "custom-agent",
		}
		processConfigDefaults(&cfg)

		if cfg.MinecraftLoader != "forge" {
			t.Errorf("Expected MinecraftLoader to stay forge, got %s", cfg.MinecraftLoader)
		}
		if cfg.ShareBackend != BackendRedis {
			t.Errorf("Expected ShareBackend to stay redis, got %s", cfg.ShareBackend)
		}
		if cfg.ResolveConcurrency != 4 {
			t.Errorf("Expected ResolveConcurrency to stay 4, got %d", cfg.ResolveConcurrency)
		}
		if cfg.UserAgent != "custom-agent" {
			t.Errorf("Expected UserAgent to stay custom-agent, got %s", cfg.UserAgent)
		}
	})
}

func TestValidateAndEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing data dir", func(t *testing.T) {
		cfg := Config{DataDir: ""}
		err := validateAndEnsureDirectories(&cfg)
		if err == nil {
			t.Error("Expected error for missing DataDir")
		}
	})

	t.Run("creates directories and derives paths", func(t *testing.T) {
		dataDir := filepath.Join(tmpDir, "modlist")
		cfg := Config{DataDir: dataDir}
		err := validateAndEnsureDirectories(&cfg)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dataDir, "shares")); os.IsNotExist(err) {
			t.Error("shares directory was not created")
		}
		if cfg.DatabasePath != filepath.Join(dataDir, "shares.db") {
			t.Errorf("DatabasePath not derived correctly: %s", cfg.DatabasePath)
		}
		if cfg.ListPath != filepath.Join(dataDir, "list.json") {
			t.Errorf("ListPath not derived correctly: %s", cfg.ListPath)
		}
	})
}
