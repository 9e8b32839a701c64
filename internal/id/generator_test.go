package id

import "testing"

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		v := Generate()
		if v == "" {
			t.Fatal("Generate returned empty ID")
		}
		if seen[v] {
			t.Fatalf("duplicate ID %q after %d generations", v, i)
		}
		seen[v] = true
	}
}

func TestSequential(t *testing.T) {
	next := Sequential("e")
	for _, want := range []string{"e-1", "e-2", "e-3"} {
		if got := next(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
