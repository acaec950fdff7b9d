package invoice

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func padRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

func padLeft(text string, width int) string {
	if w := ansi.PrintableRuneWidth(text); w < width {
		return strings.Repeat(" ", width-w) + text
	}
	return text
}
