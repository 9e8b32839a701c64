package cli

import (
	"errors"
	"testing"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
)

// scriptedPrompter answers prompts from fixed values.
type scriptedPrompter struct {
	port   string
	open   bool
	level  string
	editor string
	titles []string
	failOn string
}

func (p *scriptedPrompter) Select(title string, options []string, defaultValue string) (string, error) {
	p.titles = append(p.titles, title)
	if title == p.failOn {
		return "", errors.New("aborted")
	}
	return p.level, nil
}

func (p *scriptedPrompter) Input(title string, defaultValue string, validate func(string) error) (string, error) {
	p.titles = append(p.titles, title)
	if title == p.failOn {
		return "", errors.New("aborted")
	}
	answer := p.editor
	if title == "Web server port" {
		answer = p.port
	}
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (p *scriptedPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	p.titles = append(p.titles, title)
	return p.open, nil
}

func TestPromptConfig_AppliesAnswers(t *testing.T) {
	p := &scriptedPrompter{port: " 8080 ", open: false, level: "debug", editor: " code --wait "}
	cfg := model.DefaultConfig()

	if err := promptConfig(p, cfg); err != nil {
		t.Fatalf("promptConfig failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.OpenBrowser {
		t.Error("OpenBrowser should be false")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Editor != "code --wait" {
		t.Errorf("Editor = %q, want trimmed value", cfg.Editor)
	}
	if cfg.Drag.Nudge != model.DefaultNudge {
		t.Error("Unprompted settings should keep their defaults")
	}
	if len(p.titles) != 4 {
		t.Errorf("Expected 4 prompts, got %d", len(p.titles))
	}
}

func TestPromptConfig_StopsOnError(t *testing.T) {
	p := &scriptedPrompter{port: "3000", level: "info", failOn: "Log level"}
	cfg := model.DefaultConfig()

	if err := promptConfig(p, cfg); err == nil {
		t.Fatal("Expected error")
	}
	if len(p.titles) != 3 {
		t.Errorf("Expected prompting to stop at the failing question, got %d prompts", len(p.titles))
	}
}

func TestPromptConfig_NonInteractive(t *testing.T) {
	err := promptConfig(&prompt.NoopPrompter{}, model.DefaultConfig())
	if !errors.Is(err, prompt.ErrNonInteractive) {
		t.Errorf("Expected ErrNonInteractive, got %v", err)
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"3000", false},
		{" 1 ", false},
		{"65535", false},
		{"0", true},
		{"65536", true},
		{"http", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := validatePort(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePort(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
