package config

import (
	"fmt"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/sirupsen/logrus"
)

// Validate checks value ranges that the TOML types cannot express.
func Validate(cfg *model.Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return swerr.InvalidField("server.port", fmt.Sprintf("%d is not a valid port", cfg.Server.Port))
	}
	if cfg.Drag.Nudge < 0 || cfg.Drag.Nudge >= 0.5 {
		return swerr.InvalidField("drag.nudge", fmt.Sprintf("%g must be in [0, 0.5)", cfg.Drag.Nudge))
	}
	if cfg.Drag.FlickWidth < 0 {
		return swerr.InvalidField("drag.flick_width", "cannot be negative")
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return swerr.InvalidField("log.level", err.Error())
	}
	return nil
}
