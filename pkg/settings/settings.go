// Package settings manages persistent user settings for the roadmctl CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Default values applied when a setting is absent
const (
	DefaultConfigDir      = "config"
	DefaultWorkspaceDir   = "."
	DefaultPort           = 830
	DefaultTimeoutSeconds = 10
)

// Settings holds persistent user preferences
type Settings struct {
	// ConfigDir is the device/channel configuration directory (-C default)
	ConfigDir string `json:"config_dir,omitempty"`

	// WorkspaceDir is where data/, backup/ and checkup/ are written (-w default)
	WorkspaceDir string `json:"workspace_dir,omitempty"`

	// Port is the NETCONF port used when a device does not specify one
	Port int `json:"port,omitempty"`

	// TimeoutSeconds bounds NETCONF session establishment
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "roadmctl_settings.json"
	}
	return filepath.Join(home, ".roadmctl", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetConfigDir returns the configuration directory (with fallback)
func (s *Settings) GetConfigDir() string {
	if s.ConfigDir != "" {
		return s.ConfigDir
	}
	return DefaultConfigDir
}

// GetWorkspaceDir returns the workspace directory (with fallback)
func (s *Settings) GetWorkspaceDir() string {
	if s.WorkspaceDir != "" {
		return s.WorkspaceDir
	}
	return DefaultWorkspaceDir
}

// GetPort returns the default NETCONF port (with fallback)
func (s *Settings) GetPort() int {
	if s.Port > 0 {
		return s.Port
	}
	return DefaultPort
}

// GetTimeout returns the NETCONF dial timeout (with fallback)
func (s *Settings) GetTimeout() time.Duration {
	secs := s.TimeoutSeconds
	if secs <= 0 {
		secs = DefaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// SetConfigDir sets the configuration directory
func (s *Settings) SetConfigDir(dir string) {
	s.ConfigDir = dir
}

// SetWorkspaceDir sets the workspace directory
func (s *Settings) SetWorkspaceDir(dir string) {
	s.WorkspaceDir = dir
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
