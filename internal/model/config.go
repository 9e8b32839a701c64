package model

// Config represents the user's swatch configuration.
// Stored at ~/.config/swatch/config.toml
// Schema changes require a version bump, see internal/version/version.go.
type Config struct {
	SwatchSchema string          `toml:"swatch_schema" mapstructure:"swatch_schema" json:"swatch_schema" yaml:"swatch_schema"`
	Editor       string          `toml:"editor,omitempty" mapstructure:"editor" json:"editor,omitempty" yaml:"editor,omitempty"`
	Server       ServerConfig    `toml:"server" mapstructure:"server" json:"server" yaml:"server"`
	Drag         DragConfig      `toml:"drag" mapstructure:"drag" json:"drag" yaml:"drag"`
	Generator    GeneratorConfig `toml:"generator" mapstructure:"generator" json:"generator" yaml:"generator"`
	Log          LogConfig       `toml:"log" mapstructure:"log" json:"log" yaml:"log"`
}

// ServerConfig holds settings for `swatch serve`.
type ServerConfig struct {
	Port        int  `toml:"port" mapstructure:"port" json:"port" yaml:"port"`
	OpenBrowser bool `toml:"open_browser" mapstructure:"open_browser" json:"open_browser" yaml:"open_browser"`
}

// DragConfig tunes drop-point resolution.
type DragConfig struct {
	// Nudge shifts the left/right split point by this fraction of the
	// pointer's absolute X to reduce flicker on item boundaries.
	Nudge float64 `toml:"nudge" mapstructure:"nudge" json:"nudge" yaml:"nudge"`
	// FlickWidth is the widest viewport (in CSS pixels) on which a touch
	// released outside both lists moves the entry to the other list.
	FlickWidth int `toml:"flick_width" mapstructure:"flick_width" json:"flick_width" yaml:"flick_width"`
}

// GeneratorConfig holds color generator settings.
type GeneratorConfig struct {
	Seed uint64 `toml:"seed" mapstructure:"seed" json:"seed" yaml:"seed"` // 0 means seed from the clock
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" mapstructure:"level" json:"level" yaml:"level"`
	JSON  bool   `toml:"json" mapstructure:"json" json:"json" yaml:"json"`
	File  string `toml:"file,omitempty" mapstructure:"file" json:"file,omitempty" yaml:"file,omitempty"`
}

// Default config values.
const (
	DefaultPort       = 3000
	DefaultNudge      = 0.01
	DefaultFlickWidth = 768
	DefaultLogLevel   = "info"
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        DefaultPort,
			OpenBrowser: true,
		},
		Drag: DragConfig{
			Nudge:      DefaultNudge,
			FlickWidth: DefaultFlickWidth,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
