package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/hjens/json-explorer/internal/config"
)

// Theme holds the resolved color for every display role. A nil color
// leaves that role on the terminal default.
type Theme struct {
	Name        color.Color // member names
	String      color.Color
	Number      color.Color
	Bool        color.Color
	Null        color.Color
	Count       color.Color // collapsed "N items" summaries
	LineNumber  color.Color
	Indent      color.Color // indent guides
	Selection   color.Color // the guide at the selection's ancestry level
	SelectionBG color.Color // selected row background
	Match       color.Color // search hit background
	Breadcrumb  color.Color
	Status      color.Color
	Border      color.Color // pane borders and titles
}

// ThemeFromConfig resolves a configured palette into concrete colors.
// Empty values stay nil so the terminal default shows through.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	var th Theme
	set := func(val config.ColorValue, dst *color.Color) {
		if val != "" {
			*dst = lipgloss.Color(string(val))
		}
	}
	set(cfg.NameColor, &th.Name)
	set(cfg.StringColor, &th.String)
	set(cfg.NumberColor, &th.Number)
	set(cfg.BoolColor, &th.Bool)
	set(cfg.NullColor, &th.Null)
	set(cfg.CountColor, &th.Count)
	set(cfg.LineNumberColor, &th.LineNumber)
	set(cfg.IndentColor, &th.Indent)
	set(cfg.SelectionColor, &th.Selection)
	set(cfg.SelectionBG, &th.SelectionBG)
	set(cfg.MatchColor, &th.Match)
	set(cfg.BreadcrumbColor, &th.Breadcrumb)
	set(cfg.StatusColor, &th.Status)
	set(cfg.BorderColor, &th.Border)
	return th
}

// fg returns a style with the foreground set when the color is known.
func fg(c color.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c != nil {
		s = s.Foreground(c)
	}
	return s
}

// paint renders text with an optional foreground, skipping lipgloss
// entirely for unstyled text so plain output stays plain.
func paint(text string, c color.Color) string {
	if c == nil {
		return text
	}
	return fg(c).Render(text)
}
