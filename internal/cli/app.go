package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/editor"
	"github.com/amterp/swatch/internal/generator"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/reorder"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
	"github.com/spf13/afero"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	Fs          afero.Fs
	Paths       *config.Paths
	ConfigStore store.ConfigStore
	Config      *model.Config
	Prompter    prompt.Prompter
	Editor      *editor.Editor
}

// NewApp creates a new App with all dependencies wired up and the config
// loaded. If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(configPath string, interactive bool) (*App, error) {
	app := NewAppWithoutConfig(configPath, interactive)

	cfg, err := app.ConfigStore.Load()
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.Editor = editor.NewEditor(cfg)
	return app, nil
}

// NewAppWithoutConfig creates an App that has not read the config file.
// Used by init, which must work even when the existing file is broken.
func NewAppWithoutConfig(configPath string, interactive bool) *App {
	fs := afero.NewOsFs()
	paths := config.NewPaths(configPath)

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		Fs:          fs,
		Paths:       paths,
		ConfigStore: store.NewConfigStore(fs, paths),
		Config:      model.DefaultConfig(),
		Prompter:    prompter,
		Editor:      editor.NewEditor(nil),
	}
}

// NewController builds the application core from the loaded config: an
// empty history, a seeded color generator and the configured drag tuning.
func (a *App) NewController() *service.Controller {
	stacks := store.NewStackStore(nil)
	colors := generator.NewSeeded(a.Config.Generator.Seed)
	return service.NewController(stacks, colors, reorder.SettingsFromConfig(a.Config.Drag))
}

// LogConfig returns the logging settings with a relative log.file
// resolved under the config's log directory.
func (a *App) LogConfig() model.LogConfig {
	cfg := a.Config.Log
	if cfg.File != "" && !filepath.IsAbs(cfg.File) {
		cfg.File = filepath.Join(a.Paths.LogDir(), cfg.File)
	}
	return cfg
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
