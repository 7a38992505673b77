package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateText fuzzes the TruncateText function with random text and widths.
func FuzzTruncateText(f *testing.F) {
	seeds := []struct {
		text  string
		width int
	}{
		{"Kept calm during standup", 10},
		{"", 5},
		{"multi\nline\ntext", 8},
		{"ééééé", 4},
		{"abc", 0},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.width)
	}

	f.Fuzz(func(t *testing.T, text string, width int) {
		got := TruncateText(text, width)
		if width > 3 && utf8.ValidString(text) && utf8.RuneCountInString(got) > width {
			t.Errorf("TruncateText(%q, %d) = %q exceeds width", text, width, got)
		}
	})
}
