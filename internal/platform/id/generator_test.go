package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()

	got, err := g.NewID("sol")
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(got, "sol-") {
		t.Fatalf("expected sol- prefix, got %q", got)
	}

	other, err := g.NewID("sol")
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if got == other {
		t.Fatalf("expected distinct ids, got %q twice", got)
	}
}

func TestRandomGenerator_NewCode(t *testing.T) {
	g := NewRandomGenerator()

	for i := 0; i < 50; i++ {
		code, err := g.NewCode(6)
		if err != nil {
			t.Fatalf("new code: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("unexpected code length: got=%d want=6", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("unexpected rune %q in code %q", r, code)
			}
		}
	}

	if _, err := g.NewCode(0); err == nil {
		t.Fatalf("expected error for zero length")
	}
}
