package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	ConfigPath     *string

	// init command
	InitUsed  *bool
	InitForce *bool

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// tui command
	TuiUsed *bool

	// generate command
	GenerateUsed  *bool
	GenerateCount *int
	GenerateSeed  *int
	GenerateJSON  *bool

	// config command
	ConfigUsed *bool

	// config show
	ConfigShowUsed   *bool
	ConfigShowKey    *string
	ConfigShowFormat *string

	// config edit
	ConfigEditUsed *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("swatch")
	cmd.SetDescription("Random color swatch with reorderable undo/redo history")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.ConfigPath, _ = ra.NewString("config").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Config file (default: $SWATCH_CONFIG or ~/.config/swatch/config.toml)").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerServe(cmd, ctx)
	registerTui(cmd, ctx)
	registerGenerate(cmd, ctx)
	registerConfig(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	configPath := *ctx.ConfigPath

	switch {
	case *ctx.InitUsed:
		runInit(configPath, *ctx.InitForce, *ctx.NonInteractive)

	case *ctx.ServeUsed:
		runServe(configPath, *ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.TuiUsed:
		runTui(configPath)

	case *ctx.GenerateUsed:
		runGenerate(configPath, *ctx.GenerateCount, *ctx.GenerateSeed, *ctx.GenerateJSON)

	case *ctx.ConfigShowUsed:
		runConfigShow(configPath, *ctx.ConfigShowKey, *ctx.ConfigShowFormat)

	case *ctx.ConfigEditUsed:
		runConfigEdit(configPath)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
