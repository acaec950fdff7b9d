package pdf

import (
	"strings"
	"testing"
)

// runeMeasure charges a flat 6pt per rune, including spaces, so widths in
// these tests can be reasoned about by character count.
func runeMeasure(s string) float64 {
	return float64(len([]rune(s))) * 6.0
}

func TestWrapTextSingleLinePassthrough(t *testing.T) {
	lines := wrapText("short text", 200, runeMeasure)
	if len(lines) != 1 || lines[0] != "short text" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestWrapTextEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		lines := wrapText(in, 100, runeMeasure)
		if len(lines) != 1 || lines[0] != "" {
			t.Fatalf("wrapText(%q) = %q, want one empty line", in, lines)
		}
	}
}

func TestWrapTextCollapsesWhitespace(t *testing.T) {
	lines := wrapText("a\n b\t  c", 200, runeMeasure)
	if len(lines) != 1 || lines[0] != "a b c" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestWrapTextSplitsAcrossTwoLines(t *testing.T) {
	// 10 runes per line at 6pt/rune.
	lines := wrapText("aaaa bbbb cccc", 60, runeMeasure)
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "aaaa bbbb" || lines[1] != "cccc" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestWrapTextTruncatesThirdLineOverflow(t *testing.T) {
	lines := wrapText("aaaa bbbb cccc dddd eeee ffff", 60, runeMeasure)
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasSuffix(lines[1], ellipsis) {
		t.Fatalf("second line not truncated: %q", lines)
	}
	if runeMeasure(lines[1]) > 60 {
		t.Fatalf("second line exceeds width: %q", lines[1])
	}
}

func TestWrapTextLongUnbrokenRun(t *testing.T) {
	run := strings.Repeat("x", 200)
	lines := wrapText(run, 60, runeMeasure)
	if len(lines) > 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	for _, line := range lines {
		if runeMeasure(line) > 60 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.HasSuffix(lines[0], ellipsis) {
		t.Fatalf("oversized word not truncated: %q", lines[0])
	}
}

func TestTruncateToWidthFitsUnchanged(t *testing.T) {
	if got := truncateToWidth("abc", 60, runeMeasure); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateToWidthDegenerate(t *testing.T) {
	// Even the bare ellipsis cannot fit; it is returned anyway rather
	// than producing an empty cell.
	if got := truncateToWidth("abcdef", 3, runeMeasure); got != ellipsis {
		t.Fatalf("got %q", got)
	}
}
