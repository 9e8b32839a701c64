package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/tui"
	"github.com/amterp/ra"
)

func registerTui(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("tui")
	cmd.SetDescription("Start terminal interface")

	ctx.TuiUsed, _ = parent.RegisterCmd(cmd)
}

func runTui(configPath string) {
	app, err := NewApp(configPath, false)
	if err != nil {
		Fatal(err)
	}

	// The program owns the terminal: log to the configured file or nowhere.
	closer, err := logging.Setup(app.Fs, app.LogConfig(), io.Discard)
	if err != nil {
		Fatal(err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, app.NewController()); err != nil {
		Fatal(err)
	}
}
