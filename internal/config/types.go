package config

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration tree. The embedded default config is the
// authoritative source of defaults; a user file is merged on top of it, so a
// loaded Config always has a theme selection and both built-in palettes.
type Config struct {
	Theme    ThemeSelection         `yaml:"theme,omitempty"`
	Display  DisplayConfig          `yaml:"display,omitempty"`
	Search   SearchConfig           `yaml:"search,omitempty"`
	Behavior BehaviorConfig         `yaml:"behavior,omitempty"`
	Themes   map[string]ThemeConfig `yaml:"themes,omitempty"`
}

// ThemeSelection holds theme selection configuration.
type ThemeSelection struct {
	Default string `yaml:"default,omitempty" yamlcomment:"Default theme name"`
}

// DisplayConfig holds display and layout settings.
type DisplayConfig struct {
	LineNumbers  *bool `yaml:"line_numbers,omitempty" yamlcomment:"Show the line-number gutter"`
	IndentGuides *bool `yaml:"indent_guides,omitempty" yamlcomment:"Draw │ guides for nesting levels"`
	Scrollbar    *bool `yaml:"scrollbar,omitempty" yamlcomment:"Show the scrollbar on the right edge"`
}

// SearchConfig holds search settings.
type SearchConfig struct {
	// LiveThreshold is the row count above which search results are no longer
	// recomputed on every keystroke; matches appear on Enter instead.
	// Default: 100000
	LiveThreshold *int `yaml:"live_threshold,omitempty" yamlcomment:"Max rows for search-as-you-type"`
}

// BehaviorConfig holds interaction settings.
type BehaviorConfig struct {
	// CollapseDepth collapses every container at that depth or deeper on
	// startup. Unset means the document opens fully expanded.
	CollapseDepth *int `yaml:"collapse_depth,omitempty" yamlcomment:"Collapse containers at this depth or deeper on startup"`
}

// ColorValue stores a color token (number or name) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: s,
		}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	// Accept both ints and strings; store the literal value.
	*c = ColorValue(value.Value)
	return nil
}

// ThemeConfig is a YAML-friendly palette (colors accept ANSI ints, hex
// strings, or names). An empty value means the terminal default.
type ThemeConfig struct {
	NameColor       ColorValue `yaml:"name_color" yamlcomment:"Member names"`
	StringColor     ColorValue `yaml:"string_color" yamlcomment:"String values"`
	NumberColor     ColorValue `yaml:"number_color" yamlcomment:"Number values"`
	BoolColor       ColorValue `yaml:"bool_color" yamlcomment:"Boolean values"`
	NullColor       ColorValue `yaml:"null_color" yamlcomment:"null values"`
	CountColor      ColorValue `yaml:"count_color" yamlcomment:"Collapsed 'N items' counts"`
	LineNumberColor ColorValue `yaml:"line_number_color" yamlcomment:"Line-number gutter"`
	IndentColor     ColorValue `yaml:"indent_color" yamlcomment:"Indent guides"`
	SelectionColor  ColorValue `yaml:"selection_color" yamlcomment:"Indent guide at the selection's level"`
	SelectionBG     ColorValue `yaml:"selection_bg" yamlcomment:"Selected row background"`
	MatchColor      ColorValue `yaml:"match_color" yamlcomment:"Search hit background"`
	BreadcrumbColor ColorValue `yaml:"breadcrumb_color" yamlcomment:"Breadcrumb bar text"`
	StatusColor     ColorValue `yaml:"status_color" yamlcomment:"Status pane text"`
	BorderColor     ColorValue `yaml:"border_color" yamlcomment:"Pane borders and titles"`
}

// LineNumbers reports whether the line-number gutter is enabled (default true).
func (c Config) LineNumbers() bool {
	if c.Display.LineNumbers != nil {
		return *c.Display.LineNumbers
	}
	return true
}

// IndentGuides reports whether indent guides are drawn (default true).
func (c Config) IndentGuides() bool {
	if c.Display.IndentGuides != nil {
		return *c.Display.IndentGuides
	}
	return true
}

// Scrollbar reports whether the scrollbar is shown (default true).
func (c Config) Scrollbar() bool {
	if c.Display.Scrollbar != nil {
		return *c.Display.Scrollbar
	}
	return true
}

// LiveThreshold returns the search-as-you-type row limit (default 100000).
func (c Config) LiveThreshold() int {
	if c.Search.LiveThreshold != nil {
		return *c.Search.LiveThreshold
	}
	return 100000
}

// CollapseDepth returns the startup collapse depth and whether one is set.
func (c Config) CollapseDepth() (int, bool) {
	if c.Behavior.CollapseDepth != nil {
		return *c.Behavior.CollapseDepth, true
	}
	return 0, false
}
