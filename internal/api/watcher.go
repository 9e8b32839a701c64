package api

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/amterp/swatch/internal/model"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// ConfigChangeType indicates what happened to the config file.
type ConfigChangeType string

const (
	ConfigChangeModified ConfigChangeType = "modified"
	ConfigChangeDeleted  ConfigChangeType = "deleted"
	ConfigChangeUnknown  ConfigChangeType = "unknown"
)

// ConfigChange is sent to subscribers after the config file settles.
// Config is nil and Error set when reloading failed.
type ConfigChange struct {
	Type   ConfigChangeType `json:"type"`
	Path   string           `json:"path"`
	Config *model.Config    `json:"config,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// ConfigSubscriber receives config change notifications.
type ConfigSubscriber interface {
	OnConfigChange(change ConfigChange)
}

// ConfigSubscriberFunc adapts a function to ConfigSubscriber.
type ConfigSubscriberFunc func(change ConfigChange)

func (f ConfigSubscriberFunc) OnConfigChange(change ConfigChange) {
	f(change)
}

// ConfigLoader reloads the configuration after a change.
type ConfigLoader func() (*model.Config, error)

const defaultDebounce = 100 * time.Millisecond

// ConfigWatcher watches the config file and notifies subscribers with the
// reloaded config. The containing directory is watched because editors
// often replace the file rather than write to it.
type ConfigWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	load        ConfigLoader
	mu          sync.RWMutex
	subscribers []ConfigSubscriber
	debounce    *time.Timer
	delay       time.Duration
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, load ConfigLoader) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ConfigWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		load:    load,
		delay:   defaultDebounce,
		stopCh:  make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive config change notifications.
func (cw *ConfigWatcher) Subscribe(sub ConfigSubscriber) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.subscribers = append(cw.subscribers, sub)
}

// Start begins watching. The config directory must exist.
func (cw *ConfigWatcher) Start() error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	if cw.stopped {
		cw.mu.Unlock()
		return fmt.Errorf("config watcher cannot be restarted after stop")
	}
	cw.running = true
	cw.mu.Unlock()

	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(cw.path), err)
	}

	go cw.run()
	return nil
}

// Stop stops watching for changes.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if !cw.running || cw.stopped {
		cw.mu.Unlock()
		return nil
	}
	cw.running = false
	cw.stopped = true
	cw.mu.Unlock()

	cw.debounceMu.Lock()
	if cw.debounce != nil {
		cw.debounce.Stop()
		cw.debounce = nil
	}
	cw.debounceMu.Unlock()

	close(cw.stopCh)
	return cw.watcher.Close()
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("Config watcher error")

		case <-cw.stopCh:
			return
		}
	}
}

func (cw *ConfigWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	changeType := classifyOp(event.Op)
	if changeType == ConfigChangeUnknown {
		return
	}

	// Coalesce the burst of events a single save produces.
	cw.debounceMu.Lock()
	if cw.debounce != nil {
		cw.debounce.Stop()
	}
	cw.debounce = time.AfterFunc(cw.delay, func() {
		cw.emitChange(changeType)
	})
	cw.debounceMu.Unlock()
}

func classifyOp(op fsnotify.Op) ConfigChangeType {
	switch {
	case op&(fsnotify.Create|fsnotify.Write) != 0:
		return ConfigChangeModified
	case op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return ConfigChangeDeleted
	default:
		return ConfigChangeUnknown
	}
}

func (cw *ConfigWatcher) emitChange(changeType ConfigChangeType) {
	// The debounce timer may fire after Stop.
	cw.mu.RLock()
	if cw.stopped {
		cw.mu.RUnlock()
		return
	}
	subs := make([]ConfigSubscriber, len(cw.subscribers))
	copy(subs, cw.subscribers)
	cw.mu.RUnlock()

	change := ConfigChange{Type: changeType, Path: cw.path}
	cfg, err := cw.load()
	if err != nil {
		change.Error = err.Error()
		log.WithError(err).WithField("path", cw.path).Warn("Config reload failed, keeping previous settings")
	} else {
		change.Config = cfg
		log.WithField("path", cw.path).Info("Config reloaded")
	}

	for _, sub := range subs {
		sub.OnConfigChange(change)
	}
}
