package components

import (
	"strings"
	"testing"
)

func TestVisibleLenPlain(t *testing.T) {
	if got := VisibleLen("hello"); got != 5 {
		t.Errorf("VisibleLen(hello) = %d, want 5", got)
	}
}

func TestVisibleLenIgnoresANSI(t *testing.T) {
	styled := "\x1b[31mred\x1b[0m"
	if got := VisibleLen(styled); got != 3 {
		t.Errorf("VisibleLen(styled) = %d, want 3", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello world", 5, "hello"},
		{"hi", 5, "hi"},
		{"hello", 0, ""},
		{"hello", -1, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	got := PadRight("ab", 5)
	if got != "ab   " {
		t.Errorf("PadRight = %q, want %q", got, "ab   ")
	}
	// Already wide enough: unchanged.
	if got := PadRight("abcdef", 5); got != "abcdef" {
		t.Errorf("PadRight(wide) = %q, want unchanged", got)
	}
}

func TestPadCenterOddPaddingGoesRight(t *testing.T) {
	got := PadCenter("ab", 5)
	if got != " ab  " {
		t.Errorf("PadCenter = %q, want %q", got, " ab  ")
	}
}

func TestFitBlockExactDimensions(t *testing.T) {
	out := FitBlock("one\ntwo", 6, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("FitBlock height = %d, want 4", len(lines))
	}
	for i, l := range lines {
		if VisibleLen(l) != 6 {
			t.Errorf("line %d width = %d, want 6", i, VisibleLen(l))
		}
	}
	if !strings.HasPrefix(lines[0], "one") {
		t.Errorf("line 0 = %q, want prefix %q", lines[0], "one")
	}
}

func TestFitBlockTruncatesOverflow(t *testing.T) {
	out := FitBlock("a\nb\nc\nd", 3, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("FitBlock height = %d, want 2", len(lines))
	}
}

func TestBarRatios(t *testing.T) {
	tests := []struct {
		ratio  float64
		width  int
		filled int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{1, 10, 10},
		{1.5, 10, 10}, // clamped
		{-1, 10, 0},   // clamped
	}
	for _, tt := range tests {
		got := Bar(tt.ratio, tt.width)
		filled := strings.Count(got, "█")
		if filled != tt.filled {
			t.Errorf("Bar(%v, %d) filled = %d, want %d", tt.ratio, tt.width, filled, tt.filled)
		}
		if n := filled + strings.Count(got, "░"); n != tt.width {
			t.Errorf("Bar(%v, %d) total cells = %d, want %d", tt.ratio, tt.width, n, tt.width)
		}
	}
}

func TestLabeledBarFallsBackWhenNarrow(t *testing.T) {
	got := LabeledBar("cpu", 0.5, 5)
	if strings.Contains(got, "[") {
		t.Errorf("LabeledBar narrow = %q, expected label-only fallback", got)
	}
}

func TestRenderListScrollsToSelection(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	out := RenderList(items, 4, 10, 2, ListStyle{})
	if !strings.Contains(out, "d") || !strings.Contains(out, "e") {
		t.Errorf("RenderList window = %q, want last two items visible", out)
	}
	if strings.Contains(out, "a") {
		t.Errorf("RenderList window = %q, item 'a' should have scrolled out", out)
	}
}

func TestRenderListEmptyItems(t *testing.T) {
	out := RenderList(nil, 0, 8, 3, ListStyle{})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Errorf("empty list height = %d, want 3", len(lines))
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct{ idx, n, want int }{
		{5, 3, 2},
		{-1, 3, 0},
		{1, 3, 1},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := ClampIndex(tt.idx, tt.n); got != tt.want {
			t.Errorf("ClampIndex(%d, %d) = %d, want %d", tt.idx, tt.n, got, tt.want)
		}
	}
}
