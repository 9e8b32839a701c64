package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amterp/swatch/internal/reorder"
	"github.com/amterp/swatch/internal/service"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// ServerOptions configures NewServer.
type ServerOptions struct {
	Port int
	// ConfigPath is watched for changes when set.
	ConfigPath string
	// LoadConfig reloads the config after a change. Required with ConfigPath.
	LoadConfig ConfigLoader
}

// Server wraps the HTTP server for the web frontend.
type Server struct {
	httpServer *http.Server
	controller *service.Controller
	watcher    *ConfigWatcher
	wsHub      *WebSocketHub
}

// NewServer creates a server driving controller. The websocket hub is
// registered as a view, so every render reaches connected browsers.
func NewServer(controller *service.Controller, opts ServerOptions) *Server {
	mux := http.NewServeMux()
	handler := NewHandler(controller)
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub(controller.ReadSnapshot)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	controller.AddView(wsHub)

	var watcher *ConfigWatcher
	if opts.ConfigPath != "" && opts.LoadConfig != nil {
		var err error
		watcher, err = NewConfigWatcher(opts.ConfigPath, opts.LoadConfig)
		if err != nil {
			log.WithError(err).Warn("Failed to create config watcher")
		} else {
			watcher.Subscribe(ConfigSubscriberFunc(func(change ConfigChange) {
				if change.Config != nil {
					controller.UpdateDragSettings(reorder.SettingsFromConfig(change.Config.Drag))
				}
			}))
			watcher.Subscribe(wsHub)
		}
	}

	wrapped := Logging(Cors(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", opts.Port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		controller: controller,
		watcher:    watcher,
		wsHub:      wsHub,
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.WithError(err).Warn("Failed to start config watcher")
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", s.httpServer.Addr).Info("Serving")
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop config watcher")
		}
	}
	s.controller.RemoveView(s.wsHub)

	return s.httpServer.Shutdown(ctx)
}

// Watch subscribes sub to config reloads. A no-op when no config file is
// being watched.
func (s *Server) Watch(sub ConfigSubscriber) {
	if s.watcher != nil {
		s.watcher.Subscribe(sub)
	}
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
