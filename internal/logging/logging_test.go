package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/amterp/swatch/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func TestSetup_FallbackWriter(t *testing.T) {
	var buf bytes.Buffer
	closer, err := Setup(afero.NewMemMapFs(), model.LogConfig{Level: "debug", JSON: true}, &buf)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()
	defer logrus.SetOutput(os.Stderr)

	logrus.WithField("list", "undo").Debug("moved")

	out := buf.String()
	if !strings.Contains(out, `"list":"undo"`) || !strings.Contains(out, `"msg":"moved"`) {
		t.Errorf("expected JSON log line, got %q", out)
	}
}

func TestSetup_FileOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	closer, err := Setup(fs, model.LogConfig{Level: "info", File: "/logs/swatch.log"}, os.Stderr)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer logrus.SetOutput(os.Stderr)

	logrus.Info("hello")
	closer.Close()

	data, err := afero.ReadFile(fs, "/logs/swatch.log")
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file does not contain message: %q", data)
	}
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Setup(afero.NewMemMapFs(), model.LogConfig{Level: "loud"}, &buf); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer logrus.SetOutput(os.Stderr)

	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logrus.GetLevel())
	}
}
