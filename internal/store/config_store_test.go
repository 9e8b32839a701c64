package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/amterp/swatch/internal/config"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
	"github.com/spf13/afero"
)

const testConfigPath = "/home/tester/.config/swatch/config.toml"

func setupTestConfigStore(t *testing.T) (*FileConfigStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewConfigStore(fs, config.NewPaths(testConfigPath)), fs
}

func TestFileConfigStore_LoadMissingReturnsDefaults(t *testing.T) {
	store, _ := setupTestConfigStore(t)

	if store.Exists() {
		t.Fatal("config should not exist yet")
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := model.DefaultConfig()
	if cfg.Server.Port != want.Server.Port {
		t.Errorf("port = %d, want %d", cfg.Server.Port, want.Server.Port)
	}
	if cfg.Drag.Nudge != want.Drag.Nudge {
		t.Errorf("nudge = %g, want %g", cfg.Drag.Nudge, want.Drag.Nudge)
	}
	if cfg.Drag.FlickWidth != want.Drag.FlickWidth {
		t.Errorf("flick width = %d, want %d", cfg.Drag.FlickWidth, want.Drag.FlickWidth)
	}
	if !cfg.Server.OpenBrowser {
		t.Error("open_browser should default to true")
	}
}

func TestFileConfigStore_SaveAndLoad(t *testing.T) {
	store, fs := setupTestConfigStore(t)

	cfg := model.DefaultConfig()
	cfg.Server.Port = 4100
	cfg.Server.OpenBrowser = false
	cfg.Drag.Nudge = 0.02
	cfg.Generator.Seed = 99
	cfg.Editor = "nano"

	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if cfg.SwatchSchema != version.CurrentConfigSchema() {
		t.Errorf("Save should stamp schema, got %q", cfg.SwatchSchema)
	}

	data, err := afero.ReadFile(fs, testConfigPath)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), `swatch_schema = "config/1"`) {
		t.Errorf("expected schema line in file:\n%s", data)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 4100 || loaded.Server.OpenBrowser {
		t.Errorf("unexpected server config %+v", loaded.Server)
	}
	if loaded.Drag.Nudge != 0.02 {
		t.Errorf("nudge = %g, want 0.02", loaded.Drag.Nudge)
	}
	if loaded.Generator.Seed != 99 {
		t.Errorf("seed = %d, want 99", loaded.Generator.Seed)
	}
	if loaded.Editor != "nano" {
		t.Errorf("editor = %q, want nano", loaded.Editor)
	}
}

func TestFileConfigStore_LoadRejectsMissingSchema(t *testing.T) {
	store, fs := setupTestConfigStore(t)
	if err := afero.WriteFile(fs, testConfigPath, []byte("[server]\nport = 3001\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load()

	var schemaErr *version.SchemaVersionError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaVersionError, got %v", err)
	}
}

func TestFileConfigStore_EnvOverridesFile(t *testing.T) {
	store, _ := setupTestConfigStore(t)
	cfg := model.DefaultConfig()
	cfg.Server.Port = 4100
	if err := store.Save(cfg); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SWATCH_SERVER_PORT", "5200")

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 5200 {
		t.Errorf("port = %d, want env override 5200", loaded.Server.Port)
	}
}

func TestFileConfigStore_SaveRejectsInvalid(t *testing.T) {
	store, _ := setupTestConfigStore(t)
	cfg := model.DefaultConfig()
	cfg.Drag.Nudge = 0.9

	err := store.Save(cfg)
	if !swerr.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.Exists() {
		t.Error("invalid config must not be written")
	}
}
