package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/ra"
)

// logLevels are the levels offered by init, most verbose first.
var logLevels = []string{"debug", "info", "warn", "error"}

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Create the swatch config file")

	ctx.InitForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite an existing config file").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(configPath string, force, nonInteractive bool) {
	app := NewAppWithoutConfig(configPath, !nonInteractive)
	path := app.ConfigStore.Path()

	if app.ConfigStore.Exists() && !force {
		overwrite, err := app.Prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false)
		if errors.Is(err, prompt.ErrNonInteractive) {
			Fatal(fmt.Errorf("config already exists at %s (use --force to overwrite)", path))
		}
		if err != nil {
			Fatal(err)
		}
		if !overwrite {
			PrintInfo("Left %s unchanged", path)
			return
		}
	}

	cfg := model.DefaultConfig()
	if !nonInteractive {
		if err := promptConfig(app.Prompter, cfg); err != nil {
			Fatal(err)
		}
	}

	if err := app.ConfigStore.Save(cfg); err != nil {
		Fatal(err)
	}
	PrintSuccess("Wrote %s", path)
}

// promptConfig asks for the settings a user is most likely to change and
// writes the answers into cfg.
func promptConfig(p prompt.Prompter, cfg *model.Config) error {
	portStr, err := p.Input("Web server port", strconv.Itoa(cfg.Server.Port), validatePort)
	if err != nil {
		return err
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	cfg.Server.OpenBrowser, err = p.Confirm("Open a browser when serving?", cfg.Server.OpenBrowser)
	if err != nil {
		return err
	}

	cfg.Log.Level, err = p.Select("Log level", logLevels, cfg.Log.Level)
	if err != nil {
		return err
	}

	editor, err := p.Input("Editor for `swatch config edit` (blank for $EDITOR)", cfg.Editor, nil)
	if err != nil {
		return err
	}
	cfg.Editor = strings.TrimSpace(editor)
	return nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
