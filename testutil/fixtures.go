package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
)

// ScriptedColors returns the given colors in order, cycling when exhausted.
type ScriptedColors struct {
	colors []model.Color
	next   int
}

// NewScriptedColors creates a color source from hex strings.
func NewScriptedColors(hexes ...string) *ScriptedColors {
	colors := make([]model.Color, len(hexes))
	for i, h := range hexes {
		colors[i] = model.MustParseHex(h)
	}
	return &ScriptedColors{colors: colors}
}

// Generate returns the next scripted color and its contrast.
func (s *ScriptedColors) Generate() (model.Color, model.Color) {
	c := s.colors[s.next%len(s.colors)]
	s.next++
	return c, c.Contrast()
}

// RecordingView captures render calls for assertions.
type RecordingView struct {
	mu         sync.Mutex
	Swatches   []model.Color
	Labels     []int
	Lists      map[model.ListKind][]model.Entry
	Visibility map[model.ListKind]bool
	Renders    int
}

// NewRecordingView creates an empty RecordingView.
func NewRecordingView() *RecordingView {
	return &RecordingView{
		Lists:      make(map[model.ListKind][]model.Entry),
		Visibility: make(map[model.ListKind]bool),
	}
}

func (v *RecordingView) RenderSwatch(current model.Color, label int, _ model.Color) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Swatches = append(v.Swatches, current)
	v.Labels = append(v.Labels, label)
	v.Renders++
}

func (v *RecordingView) RenderList(kind model.ListKind, entries []model.Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Lists[kind] = entries
}

func (v *RecordingView) SetListVisibility(kind model.ListKind, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Visibility[kind] = visible
}

// LastSwatch returns the most recently rendered current color.
func (v *RecordingView) LastSwatch() model.Color {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.Swatches) == 0 {
		return model.Color{}
	}
	return v.Swatches[len(v.Swatches)-1]
}

// RenderCount returns how many times the swatch was rendered.
func (v *RecordingView) RenderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Renders
}

// TempConfigDir creates a temporary home with an empty swatch config
// directory. Returns the config Paths and a cleanup function.
func TempConfigDir(t *testing.T) (*config.Paths, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "swatch-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	configDir := filepath.Join(dir, config.GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		os.RemoveAll(dir)
		t.Fatalf("failed to create config dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return config.NewPaths(filepath.Join(configDir, config.ConfigFileName)), cleanup
}
