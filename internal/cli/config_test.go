package cli

import (
	"strings"
	"testing"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
	"github.com/spf13/afero"
)

func TestConfigValue(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Generator.Seed = 42

	tests := []struct {
		key  string
		want string
	}{
		{"server.port", "3000"},
		{"server.open_browser", "true"},
		{"drag.nudge", "0.01"},
		{"drag.flick_width", "768"},
		{"generator.seed", "42"},
		{"log.level", "info"},
		{"editor", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := configValue(cfg, tt.key)
			if err != nil {
				t.Fatalf("configValue failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("configValue(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if _, err := configValue(cfg, "server.host"); !swerr.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestCompleteConfigKeys(t *testing.T) {
	got, _ := completeConfigKeys("log.")
	if strings.Join(got, ",") != "log.level,log.json,log.file" {
		t.Errorf("completeConfigKeys(log.) = %v", got)
	}

	all, _ := completeConfigKeys("")
	if len(all) != len(configKeys) {
		t.Errorf("Expected every key for an empty prefix, got %d", len(all))
	}
}

func TestCurrentConfigText_DefaultsWhenMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	text, err := currentConfigText(fs, "/cfg/config.toml")
	if err != nil {
		t.Fatalf("currentConfigText failed: %v", err)
	}

	cfg, err := parseConfigText("/cfg/config.toml", text)
	if err != nil {
		t.Fatalf("Default text should parse: %v\n%s", err, text)
	}
	if cfg.Server.Port != model.DefaultPort || cfg.SwatchSchema != version.CurrentConfigSchema() {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestCurrentConfigText_ReadsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "# mine\nswatch_schema = \"config/1\"\n"
	if err := afero.WriteFile(fs, "/cfg/config.toml", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := currentConfigText(fs, "/cfg/config.toml")
	if err != nil {
		t.Fatalf("currentConfigText failed: %v", err)
	}
	if text != content {
		t.Errorf("Expected file content verbatim, got %q", text)
	}
}

func TestParseConfigText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid", "swatch_schema = \"config/1\"\n[server]\nport = 8080\n", false},
		{"missing schema", "[server]\nport = 8080\n", true},
		{"future schema", "swatch_schema = \"config/99\"\n", true},
		{"bad toml", "swatch_schema = \n", true},
		{"out of range", "swatch_schema = \"config/1\"\n[drag]\nnudge = 0.9\n", true},
		{"bad level", "swatch_schema = \"config/1\"\n[log]\nlevel = \"loud\"\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseConfigText("config.toml", tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseConfigText error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Server.Port != 8080 {
				t.Errorf("Port = %d, want 8080", cfg.Server.Port)
			}
		})
	}
}

func TestConfigValue_SuggestsClosestKey(t *testing.T) {
	_, err := configValue(model.DefaultConfig(), "srvport")
	if !swerr.IsNotFound(err) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean server.port?") {
		t.Errorf("Expected a suggestion, got %q", err.Error())
	}
}

func TestEncodeConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.SwatchSchema = version.CurrentConfigSchema()
	output := ConfigOutput{Path: "/cfg/config.toml", Exists: true, Config: cfg}

	tests := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"path": "/cfg/config.toml"`, `"flick_width": 768`}},
		{"toml", []string{`swatch_schema = "config/1"`, "[drag]", "flick_width = 768"}},
		{"yaml", []string{"swatch_schema: config/1", "drag:", "  flick_width: 768"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf strings.Builder
			if err := encodeConfig(&buf, tt.format, output); err != nil {
				t.Fatalf("encodeConfig failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s output missing %q:\n%s", tt.format, want, buf.String())
				}
			}
		})
	}

	var buf strings.Builder
	if err := encodeConfig(&buf, "xml", output); !swerr.IsValidationError(err) {
		t.Errorf("Expected validation error for xml, got %v", err)
	}
}
