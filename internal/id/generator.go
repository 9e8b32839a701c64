package id

import (
	"strconv"
	"time"

	fid "github.com/amterp/flexid"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Entries are created by button presses, so several can land in the same
	// tick during scripted use; the random suffix keeps them distinct.
	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(time.Millisecond).
		WithNumRandomChars(4)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique entry ID.
func Generate() string {
	return generator.MustGenerate()
}

// Func produces entry IDs. Stores take one so tests can use deterministic IDs.
type Func func() string

// Sequential returns a Func yielding prefix-1, prefix-2, ...
func Sequential(prefix string) Func {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
