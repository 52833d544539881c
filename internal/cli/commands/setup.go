// Package commands implements the modyard subcommands.
package commands

import (
	"os"

	"github.com/farmhand-tools/modyard/internal/cli/config"
	"github.com/farmhand-tools/modyard/internal/host"
)

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	snapshot := getEnvOrDefault("MODYARD_SNAPSHOT", config.DefaultSnapshotFile)
	homeDir := os.Getenv("MODYARD_HOME_DIR")
	if homeDir == "" {
		homeDir, _ = os.UserHomeDir()
	}

	return &config.Config{
		SnapshotPath: snapshot,
		HomeDir:      homeDir,
		Verbose:      os.Getenv("MODYARD_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("MODYARD_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadSnapshot validates and reads the configured snapshot file.
func loadSnapshot(cfg *config.Config) (*host.Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateSnapshot(); err != nil {
		return nil, err
	}
	return host.ReadSnapshot(cfg.SnapshotPath)
}
