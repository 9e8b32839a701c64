package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigFileName  = "config.toml"
	GlobalConfigDir = ".config/swatch"
	LogDirName      = "logs"

	// ConfigEnvVar overrides the config file location.
	ConfigEnvVar = "SWATCH_CONFIG"
)

// Paths provides path resolution for swatch's files.
type Paths struct {
	configFile string
}

// NewPaths creates a Paths resolver. An empty configFile resolves to
// $SWATCH_CONFIG, then ~/.config/swatch/config.toml.
func NewPaths(configFile string) *Paths {
	if configFile == "" {
		configFile = os.Getenv(ConfigEnvVar)
	}
	if configFile == "" {
		configFile = DefaultConfigPath()
	}
	return &Paths{configFile: configFile}
}

// ConfigFile returns the config file path.
func (p *Paths) ConfigFile() string {
	return p.configFile
}

// ConfigDir returns the directory containing the config file.
func (p *Paths) ConfigDir() string {
	return filepath.Dir(p.configFile)
}

// LogDir returns the directory for log files written by the terminal UI.
func (p *Paths) LogDir() string {
	return filepath.Join(p.ConfigDir(), LogDirName)
}

// DefaultConfigPath returns the path to the default config file.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}
