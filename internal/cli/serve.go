package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/amterp/swatch/internal/api"
	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/ra"
	log "github.com/sirupsen/logrus"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start web interface")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(0).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on (default: server.port from config; tries incrementally if in use)").
		Register(cmd)

	ctx.ServeNoOpen, _ = ra.NewBool("no-open").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't open browser automatically").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(configPath string, port int, noOpen bool) {
	app, err := NewApp(configPath, false)
	if err != nil {
		Fatal(err)
	}

	closer, err := logging.Setup(app.Fs, app.LogConfig(), os.Stderr)
	if err != nil {
		Fatal(err)
	}
	defer closer.Close()

	if port == 0 {
		port = app.Config.Server.Port
	}
	// Find an available port starting from the requested one
	actualPort := findAvailablePort(port)

	controller := app.NewController()
	server := api.NewServer(controller, api.ServerOptions{
		Port:       actualPort,
		ConfigPath: app.Paths.ConfigFile(),
		LoadConfig: app.ConfigStore.Load,
	})
	server.Watch(api.ConfigSubscriberFunc(func(change api.ConfigChange) {
		if change.Config == nil {
			return
		}
		if level, err := log.ParseLevel(change.Config.Log.Level); err == nil {
			log.SetLevel(level)
		}
	}))

	url := fmt.Sprintf("http://localhost:%d", actualPort)
	fmt.Printf("Swatch web server running at %s\n", RenderURL(url))
	fmt.Println(RenderMuted("Press Ctrl+C to stop"))

	if !noOpen && app.Config.Server.OpenBrowser {
		openBrowser(url)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		Fatal(err)
	}
	PrintInfo("Server stopped")
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
