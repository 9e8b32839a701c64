package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/editor"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
	"github.com/amterp/ra"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// configFormats are the output formats of config show.
var configFormats = []string{"text", "json", "toml", "yaml"}

// configKey is one displayable config setting.
type configKey struct {
	Name  string
	Value func(cfg *model.Config) string
}

// configKeys lists settings in display order.
var configKeys = []configKey{
	{"server.port", func(c *model.Config) string { return strconv.Itoa(c.Server.Port) }},
	{"server.open_browser", func(c *model.Config) string { return strconv.FormatBool(c.Server.OpenBrowser) }},
	{"drag.nudge", func(c *model.Config) string { return strconv.FormatFloat(c.Drag.Nudge, 'g', -1, 64) }},
	{"drag.flick_width", func(c *model.Config) string { return strconv.Itoa(c.Drag.FlickWidth) }},
	{"generator.seed", func(c *model.Config) string { return strconv.FormatUint(c.Generator.Seed, 10) }},
	{"log.level", func(c *model.Config) string { return c.Log.Level }},
	{"log.json", func(c *model.Config) string { return strconv.FormatBool(c.Log.JSON) }},
	{"log.file", func(c *model.Config) string { return c.Log.File }},
	{"editor", func(c *model.Config) string { return c.Editor }},
}

func registerConfig(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("config")
	cmd.SetDescription("Inspect and edit the config file")

	// config show
	showCmd := ra.NewCmd("show")
	showCmd.SetDescription("Show the effective config (file, defaults and SWATCH_* overrides)")

	ctx.ConfigShowKey, _ = ra.NewString("key").
		SetShort("k").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print a single setting, e.g. server.port").
		SetCompletionFunc(completeConfigKeys).
		Register(showCmd)

	ctx.ConfigShowFormat, _ = ra.NewString("format").
		SetShort("o").
		SetOptional(true).
		SetDefault("text").
		SetFlagOnly(true).
		SetEnumConstraint(configFormats).
		SetUsage("Output format").
		Register(showCmd)

	ctx.ConfigShowUsed, _ = cmd.RegisterCmd(showCmd)

	// config edit
	editCmd := ra.NewCmd("edit")
	editCmd.SetDescription("Open the config file in your editor")

	ctx.ConfigEditUsed, _ = cmd.RegisterCmd(editCmd)

	ctx.ConfigUsed, _ = parent.RegisterCmd(cmd)
}

func runConfigShow(configPath, key, format string) {
	app, err := NewApp(configPath, false)
	if err != nil {
		Fatal(err)
	}

	if key != "" {
		value, err := configValue(app.Config, key)
		if err != nil {
			Fatal(err)
		}
		fmt.Println(value)
		return
	}

	if format != "" && format != "text" {
		output := ConfigOutput{Path: app.ConfigStore.Path(), Exists: app.ConfigStore.Exists(), Config: app.Config}
		if err := encodeConfig(os.Stdout, format, output); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Println(TitleBox("swatch config"))
	source := app.ConfigStore.Path()
	if !app.ConfigStore.Exists() {
		source += RenderMuted(" (not found, showing defaults)")
	}
	fmt.Println(LabelValue("file", source, labelWidth()))
	for _, k := range configKeys {
		fmt.Println(LabelValue(k.Name, RenderKey(displayValue(k.Value(app.Config))), labelWidth()))
	}
}

func labelWidth() int {
	return lo.Max(lo.Map(configKeys, func(k configKey, _ int) int { return len(k.Name) })) + 1
}

func displayValue(v string) string {
	if v == "" {
		return `""`
	}
	return v
}

// encodeConfig writes output in a machine-readable format. json carries
// the file location; toml and yaml hold just the settings.
func encodeConfig(w io.Writer, format string, output ConfigOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	case "toml":
		return toml.NewEncoder(w).Encode(output.Config)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(output.Config); err != nil {
			return err
		}
		return enc.Close()
	default:
		return swerr.InvalidField("format", fmt.Sprintf("unknown format %q", format))
	}
}

// configValue returns the value of the named setting. An unknown key
// suggests the closest match.
func configValue(cfg *model.Config, key string) (string, error) {
	k, ok := lo.Find(configKeys, func(k configKey) bool { return k.Name == key })
	if !ok {
		err := &swerr.NotFoundError{Resource: "config key", ID: key}
		if suggestion := suggestConfigKey(key); suggestion != "" {
			return "", fmt.Errorf("%w (did you mean %s?)", err, suggestion)
		}
		return "", err
	}
	return k.Value(cfg), nil
}

// suggestConfigKey returns the best fuzzy match for key, or "".
func suggestConfigKey(key string) string {
	names := lo.Map(configKeys, func(k configKey, _ int) string { return k.Name })
	matches := fuzzy.Find(key, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func runConfigEdit(configPath string) {
	app := NewAppWithoutConfig(configPath, false)

	// A broken file must still be editable, so fall back to $EDITOR.
	if cfg, err := app.ConfigStore.Load(); err == nil {
		app.Config = cfg
		app.Editor = editor.NewEditor(cfg)
	}

	original, err := currentConfigText(app.Fs, app.ConfigStore.Path())
	if err != nil {
		Fatal(err)
	}

	edited, err := app.Editor.Edit(original, "swatch-config-*.toml")
	if err != nil {
		Fatal(fmt.Errorf("editor failed: %w", err))
	}
	if edited == original {
		PrintInfo("No changes")
		return
	}

	if _, err := parseConfigText(app.ConfigStore.Path(), edited); err != nil {
		PrintError("Invalid config: %v", err)
		PrintWarning("Changes not saved")
		os.Exit(1)
	}

	if err := app.Fs.MkdirAll(app.Paths.ConfigDir(), 0755); err != nil {
		Fatal(fmt.Errorf("failed to create config directory: %w", err))
	}
	if err := afero.WriteFile(app.Fs, app.ConfigStore.Path(), []byte(edited), 0644); err != nil {
		Fatal(fmt.Errorf("failed to write config: %w", err))
	}
	PrintSuccess("Saved %s", app.ConfigStore.Path())
}

// currentConfigText returns the config file's text, or the defaults encoded
// as TOML when no file exists yet.
func currentConfigText(fs afero.Fs, path string) (string, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", err
	}
	if exists {
		data, err := afero.ReadFile(fs, path)
		return string(data), err
	}

	cfg := model.DefaultConfig()
	cfg.SwatchSchema = version.CurrentConfigSchema()
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseConfigText decodes TOML over the defaults and runs the same checks
// as loading the file.
func parseConfigText(path, text string) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if _, err := toml.Decode(text, cfg); err != nil {
		return nil, err
	}
	if err := version.ValidateConfigSchema(path, cfg.SwatchSchema); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
