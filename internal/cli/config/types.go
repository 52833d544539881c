// Package config provides configuration management for the modyard CLI.
//
// Configuration is layered: built-in defaults, then modyard.yaml, then
// MODYARD_* environment variables, then command-line flags.
package config

// UIConfig holds configuration for the window server.
type UIConfig struct {
	Port     int    `koanf:"port"`
	AutoOpen bool   `koanf:"auto_open"`
	Watch    bool   `koanf:"watch"`
	Theme    string `koanf:"theme"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     8765,
		AutoOpen: true,
		Watch:    true,
		Theme:    "default",
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset
// values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = 8765
	}
	if ui.Theme == "" {
		ui.Theme = "default"
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	// SnapshotPath points at the pre-computed data file the host serves.
	SnapshotPath string `koanf:"snapshot"`

	// HomeDir is the prefix the confirm window shortens to "~". Empty
	// means the current user's home directory.
	HomeDir string `koanf:"home_dir"`

	Verbose      bool      `koanf:"verbose"`
	OutputFormat string    `koanf:"output"`
	UI           *UIConfig `koanf:"ui"`
}

// Default configuration values.
const (
	DefaultSnapshotFile = "modyard.snapshot.yaml"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
