package pdf

import "strings"

const ellipsis = "…"

// measureFunc reports the rendered width of a string in points. Wrapping
// must use the same metrics source as final drawing or wrapped text can
// silently disagree with rendered width.
type measureFunc func(string) float64

// wrapText lays text out across at most two lines within maxWidth.
//
// Whitespace and newlines collapse to single spaces. Words pack greedily
// onto line one, the remainder onto line two; anything left after line two
// hard-truncates the second line with an ellipsis. A single word wider than
// maxWidth is truncated with an ellipsis on its own. Empty input yields one
// empty line.
func wrapText(text string, maxWidth float64, measure measureFunc) []string {
	s := strings.Join(strings.Fields(text), " ")
	if s == "" {
		return []string{""}
	}
	words := strings.Split(s, " ")
	line1, rest := fitLine(words, maxWidth, measure)
	if len(rest) == 0 {
		return []string{line1}
	}
	line2, overflow := fitLine(rest, maxWidth, measure)
	if len(overflow) == 0 {
		return []string{line1, line2}
	}
	return []string{line1, truncateToWidth(strings.Join(rest, " "), maxWidth, measure)}
}

// fitLine greedily packs words while the measured width stays within
// maxWidth, returning the line and the words that did not fit. A first word
// that alone exceeds maxWidth is truncated and consumes only itself.
func fitLine(words []string, maxWidth float64, measure measureFunc) (string, []string) {
	if len(words) == 0 {
		return "", nil
	}
	if measure(words[0]) > maxWidth {
		return truncateToWidth(words[0], maxWidth, measure), words[1:]
	}
	line := words[0]
	for i := 1; i < len(words); i++ {
		trial := line + " " + words[i]
		if measure(trial) > maxWidth {
			return line, words[i:]
		}
		line = trial
	}
	return line, nil
}

// truncateToWidth trims s rune by rune until it fits maxWidth with a
// trailing ellipsis. Input that already fits is returned unchanged.
func truncateToWidth(s string, maxWidth float64, measure measureFunc) string {
	if measure(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		candidate := string(runes) + ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	return ellipsis
}
