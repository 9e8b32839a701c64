package cli

import (
	"strings"
	"testing"

	"github.com/amterp/swatch/internal/generator"
	"golang.org/x/text/language"
)

func TestGenerateColors_SeededIsReproducible(t *testing.T) {
	a := generateColors(generator.NewSeeded(7), 5)
	b := generateColors(generator.NewSeeded(7), 5)

	if len(a) != 5 {
		t.Fatalf("Expected 5 colors, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("colors[%d] differ: %s vs %s", i, a[i].Hex(), b[i].Hex())
		}
		if !a[i].Acceptable() {
			t.Errorf("colors[%d] = %s is not acceptable", i, a[i].Hex())
		}
	}
}

func TestGeneratedSummary(t *testing.T) {
	if got := generatedSummary(language.English, 1); got != "Generated 1 color" {
		t.Errorf("got %q", got)
	}
	if got := generatedSummary(language.English, 12345); got != "Generated 12,345 colors" {
		t.Errorf("got %q", got)
	}
	if got := generatedSummary(language.German, 12345); got != "Generated 12.345 colors" {
		t.Errorf("got %q", got)
	}
}

func TestFormatColorLine_ContainsHexes(t *testing.T) {
	c := generateColors(generator.NewSeeded(1), 1)[0]
	line := formatColorLine(c)

	if !strings.Contains(line, c.Hex()) || !strings.Contains(line, c.Contrast().Hex()) {
		t.Errorf("line %q should contain %s and its contrast", line, c.Hex())
	}
}

func TestNewColorsOutput_EmptyIsArray(t *testing.T) {
	out := NewColorsOutput(nil)
	if out.Colors == nil || len(out.Colors) != 0 {
		t.Error("Expected empty, non-nil colors")
	}
}
