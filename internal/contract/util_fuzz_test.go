package contract

import (
	"testing"
)

// FuzzTruncateLabel fuzzes TruncateLabel with random labels and widths.
func FuzzTruncateLabel(f *testing.F) {
	seeds := []struct {
		label    string
		maxWidth int
	}{
		{"north", 10},
		{"district-of-columbia", 10},
		{"", 0},
		{"ütf-8 runes éverywhere", 7},
		{"x", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.label, seed.maxWidth)
	}

	f.Fuzz(func(t *testing.T, label string, maxWidth int) {
		got := TruncateLabel(label, maxWidth)
		// Truncation never grows the label
		if len([]rune(got)) > len([]rune(label)) {
			t.Errorf("TruncateLabel(%q, %d) grew the label to %q", label, maxWidth, got)
		}
		if maxWidth > 3 && len([]rune(got)) > maxWidth {
			t.Errorf("TruncateLabel(%q, %d) = %q exceeds the width", label, maxWidth, got)
		}
	})
}
