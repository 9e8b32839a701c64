package config

import (
	"fmt"
	"strings"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SWATCH_SERVER_PORT.
const EnvPrefix = "SWATCH"

// Load reads the config file at paths.ConfigFile() from fs, layering
// defaults underneath and SWATCH_* environment variables on top.
// A missing file is not an error: defaults (plus env) are returned.
func Load(fs afero.Fs, paths *Paths) (*model.Config, error) {
	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := paths.ConfigFile()
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}
	if exists {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Strict version validation (only if file exists)
	if exists {
		if err := version.ValidateConfigSchema(path, cfg.SwatchSchema); err != nil {
			return nil, err
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := model.DefaultConfig()
	v.SetDefault("editor", d.Editor)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.open_browser", d.Server.OpenBrowser)
	v.SetDefault("drag.nudge", d.Drag.Nudge)
	v.SetDefault("drag.flick_width", d.Drag.FlickWidth)
	v.SetDefault("generator.seed", d.Generator.Seed)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.file", d.Log.File)
}
