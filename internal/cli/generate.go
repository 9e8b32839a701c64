package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/generator"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/ra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func registerGenerate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("generate")
	cmd.SetDescription("Print random swatch colors")

	ctx.GenerateCount, _ = ra.NewInt("count").
		SetShort("n").
		SetOptional(true).
		SetDefault(1).
		SetFlagOnly(true).
		SetUsage("Number of colors to generate").
		Register(cmd)

	ctx.GenerateSeed, _ = ra.NewInt("seed").
		SetShort("s").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Seed for reproducible output (default: generator.seed from config, else the clock)").
		Register(cmd)

	ctx.GenerateJSON, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.GenerateUsed, _ = parent.RegisterCmd(cmd)
}

func runGenerate(configPath string, count, seed int, jsonOutput bool) {
	if count < 1 {
		Fatal(fmt.Errorf("--count must be at least 1, got %d", count))
	}

	app, err := NewApp(configPath, false)
	if err != nil {
		Fatal(err)
	}

	s := uint64(seed)
	if seed == 0 {
		s = app.Config.Generator.Seed
	}
	colors := generateColors(generator.NewSeeded(s), count)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewColorsOutput(colors)); err != nil {
			Fatal(err)
		}
		return
	}

	for _, c := range colors {
		fmt.Println(formatColorLine(c))
	}
	fmt.Println(RenderMuted(generatedSummary(language.English, len(colors))))
}

// generateColors draws count colors from gen.
func generateColors(gen *generator.Generator, count int) []model.Color {
	colors := make([]model.Color, 0, count)
	for range count {
		c, _ := gen.Generate()
		colors = append(colors, c)
	}
	return colors
}

// formatColorLine renders a swatch block labelled with the color's hex and
// contrast.
func formatColorLine(c model.Color) string {
	return fmt.Sprintf("%s %s  %s %s",
		ColorSwatch(c.Hex()),
		RenderBold(c.Hex()),
		RenderMuted("contrast"),
		RenderHexColor(c.Contrast().Hex(), c.Contrast().Hex()),
	)
}

// generatedSummary formats the count with locale-aware digit grouping.
func generatedSummary(tag language.Tag, n int) string {
	p := message.NewPrinter(tag)
	if n == 1 {
		return p.Sprintf("Generated %d color", n)
	}
	return p.Sprintf("Generated %d colors", n)
}
