// Package config handles configuration loading and defaults for grove.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/grove/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"grove/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.grove)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// Notifications configures due-date reminders
	Notifications NotificationConfig `yaml:"notifications,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	Primary string `yaml:"primary,omitempty"`
	Accent  string `yaml:"accent,omitempty"`
	Muted   string `yaml:"muted,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts. Each field
// accepts a comma-separated list of key bindings, e.g. "q,ctrl+c".
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"

	// Navigation keys
	Up       string `yaml:"up,omitempty"`       // default: "k,up"
	Down     string `yaml:"down,omitempty"`     // default: "j,down"
	Top      string `yaml:"top,omitempty"`      // default: "g"
	Bottom   string `yaml:"bottom,omitempty"`   // default: "G"
	Collapse string `yaml:"collapse,omitempty"` // default: "h,left"
	Expand   string `yaml:"expand,omitempty"`   // default: "l,right"

	// Task keys
	Add        string `yaml:"add,omitempty"`         // default: "a"
	AddSubtask string `yaml:"add_subtask,omitempty"` // default: "A"
	Toggle     string `yaml:"toggle,omitempty"`      // default: "d,enter,space"
	Delete     string `yaml:"delete,omitempty"`      // default: "x"
	Edit       string `yaml:"edit,omitempty"`        // default: "e"
	MoveUp     string `yaml:"move_up,omitempty"`     // default: "K"
	MoveDown   string `yaml:"move_down,omitempty"`   // default: "J"
	ClearDone  string `yaml:"clear_done,omitempty"`  // default: "C"

	// View keys
	Filter     string `yaml:"filter,omitempty"`      // default: "/"
	CycleTag   string `yaml:"cycle_tag,omitempty"`   // default: "t"
	CycleState string `yaml:"cycle_state,omitempty"` // default: "f"
	CycleSort  string `yaml:"cycle_sort,omitempty"`  // default: "s"
	Kanban     string `yaml:"kanban,omitempty"`      // default: "b"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"

	// Undo/Redo keys
	Undo string `yaml:"undo,omitempty"` // default: "ctrl+z,u"
	Redo string `yaml:"redo,omitempty"` // default: "ctrl+y,ctrl+r"
}

// NotificationConfig defines due-date reminder settings.
type NotificationConfig struct {
	// Enabled enables/disables desktop reminders
	Enabled bool `yaml:"enabled,omitempty"`

	// LookaheadHours is the window scanned for upcoming due dates
	LookaheadHours int `yaml:"lookahead_hours,omitempty"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
		},
		Keys: KeysConfig{
			// Empty strings mean use built-in defaults
		},
		Notifications: NotificationConfig{
			Enabled:        false,
			LookaheadHours: 24,
			Sound:          false,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".grove"
	}
	return filepath.Join(home, ".grove")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "grove")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "grove")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. If no
// config file exists, the defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; booleans fall back to defaults if this fails

	cfg.merge(&userCfg, &doc)
	return cfg, nil
}

// merge applies user values on top of the defaults. Strings merge when
// non-empty; booleans and the lookahead need presence checks because
// their zero values are meaningful.
func (c *Config) merge(other *Config, doc *yaml.Node) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}

	mergeKeys(&c.Keys, &other.Keys)

	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
	if other.Notifications.LookaheadHours > 0 {
		c.Notifications.LookaheadHours = other.Notifications.LookaheadHours
	}
}

func mergeKeys(dst, src *KeysConfig) {
	pairs := []struct {
		dst *string
		src string
	}{
		{&dst.Quit, src.Quit}, {&dst.Help, src.Help},
		{&dst.Up, src.Up}, {&dst.Down, src.Down},
		{&dst.Top, src.Top}, {&dst.Bottom, src.Bottom},
		{&dst.Collapse, src.Collapse}, {&dst.Expand, src.Expand},
		{&dst.Add, src.Add}, {&dst.AddSubtask, src.AddSubtask},
		{&dst.Toggle, src.Toggle}, {&dst.Delete, src.Delete},
		{&dst.Edit, src.Edit}, {&dst.MoveUp, src.MoveUp},
		{&dst.MoveDown, src.MoveDown}, {&dst.ClearDone, src.ClearDone},
		{&dst.Filter, src.Filter}, {&dst.CycleTag, src.CycleTag},
		{&dst.CycleState, src.CycleState}, {&dst.CycleSort, src.CycleSort},
		{&dst.Kanban, src.Kanban},
		{&dst.Confirm, src.Confirm}, {&dst.Cancel, src.Cancel},
		{&dst.Undo, src.Undo}, {&dst.Redo, src.Redo},
	}
	for _, p := range pairs {
		if p.src != "" {
			*p.dst = p.src
		}
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Kind == yaml.ScalarNode && n.Content[i].Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path, expanding a
// leading ~.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.DataDir, "~/"))
		}
	}
	return c.DataDir
}
