package ui

import "strings"

// helpEntries is the key reference shown by the ? overlay, in display
// order.
var helpEntries = [][2]string{
	{"j / down, k / up", "move down / up"},
	{"J / K", "next / previous sibling"},
	{"g / home, G / end", "first / last row"},
	{"H / M / L", "top / middle / bottom of screen"},
	{"space / pgdown", "page down"},
	{"backspace / pgup", "page up"},
	{"c", "collapse or expand"},
	{"C", "collapse every container at this depth"},
	{"u", "expand everything"},
	{"/", "search: name, name=value, =value, name=*"},
	{"s", "search for the selected name"},
	{"n / N", "next / previous match"},
	{":", "evaluate an expression (the document is _)"},
	{"y then y / p / v", "copy value / path / subtree"},
	{"esc", "leave search, pop expression result"},
	{"?", "this help"},
	{"q / ctrl+c", "quit"},
}

// KeyReference returns the key/action pairs from the help overlay in
// display order. The site generator embeds them so the published docs
// cannot drift from the overlay.
func KeyReference() [][2]string {
	out := make([][2]string, len(helpEntries))
	copy(out, helpEntries)
	return out
}

// renderHelp draws the key reference in place of the row pane.
func (m *Model) renderHelp() string {
	var b strings.Builder
	for i, e := range helpEntries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(paint(padANSIToWidth(e[0], 20), m.Theme.Name))
		b.WriteString(e[1])
	}
	return m.renderPanel("Help", b.String(), m.WinWidth, m.listHeight())
}
