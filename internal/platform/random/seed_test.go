package random

import "testing"

// TestNewSeedVaries ensures consecutive seeds differ.
func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
	if a == b {
		t.Fatalf("expected different seeds, got %d twice", a)
	}
}
