package store

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
	"github.com/spf13/afero"
)

// FileConfigStore implements ConfigStore on an afero filesystem.
type FileConfigStore struct {
	fs    afero.Fs
	paths *config.Paths
}

// NewConfigStore creates a new config store.
func NewConfigStore(fs afero.Fs, paths *config.Paths) *FileConfigStore {
	return &FileConfigStore{fs: fs, paths: paths}
}

// Load reads the config, falling back to defaults if the file doesn't exist.
func (s *FileConfigStore) Load() (*model.Config, error) {
	return config.Load(s.fs, s.paths)
}

// Save writes the config to disk.
func (s *FileConfigStore) Save(cfg *model.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}

	// Stamp current schema version
	cfg.SwatchSchema = version.CurrentConfigSchema()

	path := s.paths.ConfigFile()
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if the config file exists.
func (s *FileConfigStore) Exists() bool {
	ok, err := afero.Exists(s.fs, s.paths.ConfigFile())
	return err == nil && ok
}

// Path returns the config file location.
func (s *FileConfigStore) Path() string {
	return s.paths.ConfigFile()
}

var _ ConfigStore = (*FileConfigStore)(nil)
