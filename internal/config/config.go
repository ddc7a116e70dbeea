package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// UserConfigFileName is the TOML config file for user preferences
const UserConfigFileName = "config.toml"

// UserConfig represents user-facing configuration in TOML format
type UserConfig struct {
	// Agent configures how the tailscale CLI is invoked
	Agent AgentSettings `toml:"agent"`

	// Pause configures the pause duration ladder and state location
	Pause PauseSettings `toml:"pause"`

	// Output configures the Waybar record
	Output OutputSettings `toml:"output"`

	// Logs configures debug logging
	Logs LogSettings `toml:"logs"`
}

// AgentSettings defines how the external tailscale command is run
type AgentSettings struct {
	// Command is the agent binary name or path (default: "tailscale")
	Command string `toml:"command"`

	// UseSudo prefixes connect/disconnect actions with sudo (default: true).
	// Status queries never need it.
	UseSudo bool `toml:"use_sudo"`

	// StatusTimeoutSecs bounds status queries (default: 5)
	StatusTimeoutSecs int `toml:"status_timeout_secs"`

	// ActionTimeoutSecs bounds up/down actions (default: 10)
	ActionTimeoutSecs int `toml:"action_timeout_secs"`
}

// PauseSettings defines the pause duration preference ladder
type PauseSettings struct {
	// Durations is the ordered list of allowed pause lengths in minutes.
	// Scroll moves through this list. Default: [1, 5, 10, 15, 30, 60, 120]
	Durations []int `toml:"durations"`

	// DefaultIndex is the index used before the user ever scrolls (default: 1,
	// i.e. 5 minutes with the default ladder)
	DefaultIndex int `toml:"default_index"`

	// StateDir overrides where the pause/duration files live
	// (default: the system temp directory)
	StateDir string `toml:"state_dir"`
}

// OutputSettings defines Waybar record presentation
type OutputSettings struct {
	// Label is the short text shown next to the state glyph (default: "TS")
	Label string `toml:"label"`
}

// LogSettings defines debug logging behavior
type LogSettings struct {
	// Debug enables file logging (default: false — status ticks stay silent)
	Debug bool `toml:"debug"`

	// Dir is the log directory (default: ~/.tailbar)
	Dir string `toml:"dir"`

	// Level is "debug", "info", "warn", or "error" (default: "info")
	Level string `toml:"level"`

	// Format is "json" (default) or "text"
	Format string `toml:"format"`
}

// DefaultDurations is the pause ladder used when the config does not set one.
var DefaultDurations = []int{1, 5, 10, 15, 30, 60, 120}

var defaultUserConfig = UserConfig{
	Agent: AgentSettings{
		Command:           "tailscale",
		UseSudo:           true,
		StatusTimeoutSecs: 5,
		ActionTimeoutSecs: 10,
	},
	Pause: PauseSettings{
		Durations:    DefaultDurations,
		DefaultIndex: 1,
	},
	Output: OutputSettings{
		Label: "TS",
	},
	Logs: LogSettings{
		Level:  "info",
		Format: "json",
	},
}

var (
	userConfigCache   *UserConfig
	userConfigCacheMu sync.RWMutex
)

// GetTailbarDir returns the base tailbar directory (~/.tailbar)
func GetTailbarDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tailbar"), nil
}

// GetUserConfigPath returns the full path to config.toml
func GetUserConfigPath() (string, error) {
	dir, err := GetTailbarDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, UserConfigFileName), nil
}

// LoadUserConfig loads the user configuration from TOML file.
// Returns cached config after first load. A missing file yields defaults;
// a malformed file yields defaults plus the parse error so the caller can
// report it without losing the status output.
func LoadUserConfig() (*UserConfig, error) {
	userConfigCacheMu.RLock()
	if userConfigCache != nil {
		defer userConfigCacheMu.RUnlock()
		return userConfigCache, nil
	}
	userConfigCacheMu.RUnlock()

	userConfigCacheMu.Lock()
	defer userConfigCacheMu.Unlock()

	// Double-check after acquiring write lock
	if userConfigCache != nil {
		return userConfigCache, nil
	}

	configPath, err := GetUserConfigPath()
	if err != nil {
		userConfigCache = cloneDefaults()
		return userConfigCache, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		userConfigCache = cloneDefaults()
		return userConfigCache, nil
	}

	config := *cloneDefaults()
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		// Cache defaults to prevent repeated parse attempts
		userConfigCache = cloneDefaults()
		return userConfigCache, fmt.Errorf("config.toml parse error: %w", err)
	}

	normalize(&config)
	userConfigCache = &config
	return userConfigCache, nil
}

// ReloadUserConfig forces a reload of the user config
func ReloadUserConfig() (*UserConfig, error) {
	userConfigCacheMu.Lock()
	userConfigCache = nil
	userConfigCacheMu.Unlock()
	return LoadUserConfig()
}

// ClearUserConfigCache drops the cached config
func ClearUserConfigCache() {
	userConfigCacheMu.Lock()
	userConfigCache = nil
	userConfigCacheMu.Unlock()
}

func cloneDefaults() *UserConfig {
	cfg := defaultUserConfig
	cfg.Pause.Durations = append([]int(nil), defaultUserConfig.Pause.Durations...)
	return &cfg
}

// normalize repairs values a hand-edited config may have broken. Readers
// clamp rather than reject, matching how the state files are handled.
func normalize(cfg *UserConfig) {
	if cfg.Agent.Command == "" {
		cfg.Agent.Command = "tailscale"
	}
	if cfg.Agent.StatusTimeoutSecs <= 0 {
		cfg.Agent.StatusTimeoutSecs = 5
	}
	if cfg.Agent.ActionTimeoutSecs <= 0 {
		cfg.Agent.ActionTimeoutSecs = 10
	}
	if len(cfg.Pause.Durations) == 0 {
		cfg.Pause.Durations = append([]int(nil), DefaultDurations...)
	}
	if cfg.Pause.DefaultIndex < 0 {
		cfg.Pause.DefaultIndex = 0
	}
	if cfg.Pause.DefaultIndex >= len(cfg.Pause.Durations) {
		cfg.Pause.DefaultIndex = len(cfg.Pause.Durations) - 1
	}
	if cfg.Output.Label == "" {
		cfg.Output.Label = "TS"
	}
}

// SaveUserConfig writes the config to config.toml using the atomic
// temp-file + rename pattern, then clears the cache so the next
// LoadUserConfig() reads fresh values.
func SaveUserConfig(config *UserConfig) error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# tailbar configuration\n\n")
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize config save: %w", err)
	}

	ClearUserConfigCache()
	return nil
}

const exampleConfig = `# tailbar configuration
# All keys are optional; the values shown are the defaults.

[agent]
# command = "tailscale"
# use_sudo = true
# status_timeout_secs = 5
# action_timeout_secs = 10

[pause]
# Ordered pause lengths in minutes; scroll moves through this list.
# durations = [1, 5, 10, 15, 30, 60, 120]
# default_index = 1
# state_dir = ""

[output]
# label = "TS"

[logs]
# debug = false
# dir = ""
# level = "info"
# format = "json"
`

// WriteExampleConfig creates a commented config.toml if none exists.
func WriteExampleConfig() (string, error) {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath, fmt.Errorf("config already exists: %s", configPath)
	}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return "", err
	}
	return configPath, nil
}
