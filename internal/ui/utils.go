package ui

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

// ansiVisibleWidth measures the display width of a string, ignoring ANSI
// escape sequences.
func ansiVisibleWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

// padANSIToWidth pads s with trailing spaces up to the target display
// width. Strings already at or past the target are returned unchanged.
func padANSIToWidth(s string, targetWidth int) string {
	visible := ansiVisibleWidth(s)
	if visible >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visible)
}

// clampANSITextWidth trims a single line to the given display width while
// keeping every ANSI escape sequence, so styling stays balanced even when
// the visible tail is cut off.
func clampANSITextWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	var out strings.Builder
	width := 0
	inEscape := false

	for _, r := range s {
		if inEscape {
			out.WriteRune(r)
			// CSI sequences end on the first alphabetic byte.
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		if r == 0x1b {
			inEscape = true
			out.WriteRune(r)
			continue
		}
		w := runewidth.RuneWidth(r)
		if width+w > maxWidth {
			continue
		}
		out.WriteRune(r)
		width += w
	}
	return out.String()
}

// truncateHead trims s from the left until it fits maxWidth, marking the
// cut with a leading ellipsis. The tail of a long path is the part worth
// reading, so that is the part that survives.
func truncateHead(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	runes := []rune(s)
	keep := len(runes)
	width := 0
	for i := len(runes) - 1; i >= 0; i-- {
		w := runewidth.RuneWidth(runes[i])
		if width+w > maxWidth-1 {
			break
		}
		width += w
		keep = i
	}
	return "…" + string(runes[keep:])
}
