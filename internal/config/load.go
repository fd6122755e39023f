package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// Default parses and returns the embedded default configuration. This is the
// single source of truth for default settings and the built-in palettes.
func Default() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		var cfg Config
		if err := decodeStrict(embeddedDefaultConfig, &cfg); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		embeddedConfig = cfg
	})
	return embeddedConfig, embeddedConfigErr
}

// DefaultYAML returns the embedded default config file verbatim, comments
// included.
func DefaultYAML() []byte {
	out := make([]byte, len(embeddedDefaultConfig))
	copy(out, embeddedDefaultConfig)
	return out
}

// Load returns the embedded defaults with a user config merged on top. An
// explicit path must exist; the conventional user path is skipped silently
// when absent.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		path = userConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var user Config
		if err := decodeStrict(data, &user); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = merge(cfg, user)
	}

	if cfg.Theme.Default == "" || len(cfg.Themes) == 0 {
		return Config{}, fmt.Errorf("default config is missing required theme defaults")
	}
	return cfg, nil
}

// ThemeNamed resolves a palette by name, falling back to the configured
// default when name is empty.
func (c Config) ThemeNamed(name string) (ThemeConfig, error) {
	if name == "" {
		name = c.Theme.Default
	}
	if th, ok := c.Themes[name]; ok {
		return th, nil
	}
	return ThemeConfig{}, fmt.Errorf("unknown theme %q (available: %s)", name, availableThemeNames(c.Themes))
}

func availableThemeNames(themes map[string]ThemeConfig) string {
	if len(themes) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// userConfigPath returns $XDG_CONFIG_HOME/jx/config.yaml (~/.config when
// the variable is unset) if a file exists there, else "".
func userConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, "jx", "config.yaml")
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		return ""
	}
	return path
}

// decodeStrict decodes YAML rejecting unknown keys. An empty document is a
// valid empty config.
func decodeStrict(data []byte, out *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// merge overlays override on base. Unset override fields keep the base value;
// palettes merge per color so a user can recolor one role without restating
// the whole theme.
func merge(base, override Config) Config {
	cfg := base
	if override.Theme.Default != "" {
		cfg.Theme.Default = override.Theme.Default
	}
	if override.Display.LineNumbers != nil {
		cfg.Display.LineNumbers = override.Display.LineNumbers
	}
	if override.Display.IndentGuides != nil {
		cfg.Display.IndentGuides = override.Display.IndentGuides
	}
	if override.Display.Scrollbar != nil {
		cfg.Display.Scrollbar = override.Display.Scrollbar
	}
	if override.Search.LiveThreshold != nil {
		cfg.Search.LiveThreshold = override.Search.LiveThreshold
	}
	if override.Behavior.CollapseDepth != nil {
		cfg.Behavior.CollapseDepth = override.Behavior.CollapseDepth
	}
	if len(override.Themes) > 0 {
		mergedThemes := make(map[string]ThemeConfig, len(base.Themes)+len(override.Themes))
		for name, themeCfg := range base.Themes {
			mergedThemes[name] = themeCfg
		}
		for name, themeCfg := range override.Themes {
			mergedThemes[name] = mergeThemeConfig(mergedThemes[name], themeCfg)
		}
		cfg.Themes = mergedThemes
	}
	return cfg
}

func mergeThemeConfig(base, override ThemeConfig) ThemeConfig {
	out := base
	apply := func(src ColorValue, dst *ColorValue) {
		if src != "" {
			*dst = src
		}
	}
	apply(override.NameColor, &out.NameColor)
	apply(override.StringColor, &out.StringColor)
	apply(override.NumberColor, &out.NumberColor)
	apply(override.BoolColor, &out.BoolColor)
	apply(override.NullColor, &out.NullColor)
	apply(override.CountColor, &out.CountColor)
	apply(override.LineNumberColor, &out.LineNumberColor)
	apply(override.IndentColor, &out.IndentColor)
	apply(override.SelectionColor, &out.SelectionColor)
	apply(override.SelectionBG, &out.SelectionBG)
	apply(override.MatchColor, &out.MatchColor)
	apply(override.BreadcrumbColor, &out.BreadcrumbColor)
	apply(override.StatusColor, &out.StatusColor)
	apply(override.BorderColor, &out.BorderColor)
	return out
}
