// Package editor opens text in the user's editor.
package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/amterp/swatch/internal/model"
)

// Editor handles editor resolution and invocation.
type Editor struct {
	config *model.Config
}

// NewEditor creates a new Editor. config may be nil.
func NewEditor(config *model.Config) *Editor {
	return &Editor{config: config}
}

// Resolve returns the editor command to use. Blank settings are skipped.
// Order: config > $EDITOR > vim
func (e *Editor) Resolve() string {
	// 1. Config
	if e.config != nil {
		if editor := strings.TrimSpace(e.config.Editor); editor != "" {
			return editor
		}
	}

	// 2. Environment variable
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}

	// 3. Default
	return "vim"
}

// Edit opens the editor on a temporary file holding content and returns
// the edited content. pattern names the temporary file, as in os.CreateTemp.
func (e *Editor) Edit(content, pattern string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	// The editor setting may carry arguments, e.g. "code --wait".
	args := strings.Fields(e.Resolve())
	cmd := exec.Command(args[0], append(args[1:], tmpPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}

	return string(edited), nil
}
