// Package generator produces random swatch colors that satisfy the
// perceptual constraints on model.Color.
package generator

import (
	"math/rand/v2"
	"time"

	"github.com/amterp/swatch/internal/model"
)

// Source supplies uniformly distributed random bits.
type Source interface {
	Uint32() uint32
}

// Generator rejection-samples colors from a Source.
type Generator struct {
	src Source
}

// New creates a generator over the given source.
func New(src Source) *Generator {
	return &Generator{src: src}
}

// NewSeeded creates a generator backed by a PCG source. A zero seed seeds
// from the clock.
func NewSeeded(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate returns an acceptable color and its contrast color. It draws
// three independent bytes per attempt and retries until the color is not
// gray, not too bright and not too dark; acceptance is overwhelmingly likely
// so the loop is unbounded.
func (g *Generator) Generate() (model.Color, model.Color) {
	for {
		c := model.Color{
			R: g.nextByte(),
			G: g.nextByte(),
			B: g.nextByte(),
		}
		if c.Acceptable() {
			return c, c.Contrast()
		}
	}
}

func (g *Generator) nextByte() uint8 {
	return uint8(g.src.Uint32() >> 24)
}
