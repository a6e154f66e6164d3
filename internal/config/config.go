package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the viewer.
type Config struct {
	File          string
	FromStart     bool
	MaxItems      int
	LinesPerItem  int
	LinesExpanded int
	PrettyPreview bool
	// PrettyMode is "summary" or "hybrid". Empty means "pick from
	// PrettyPreview" and is resolved by Finalize.
	PrettyMode  string
	StripANSI   bool
	JSONPretty  bool
	CharBudget  int
	RecentLimit int
	ExportDir   string
	DebugLog    string
}

const (
	defaultConfigPath    = "~/.config/codexrays/config.toml"
	defaultLogFile       = "~/.codex/log/codex-tui.log"
	defaultMaxItems      = 200
	defaultLinesPerItem  = 5
	defaultLinesExpanded = 12
	defaultCharBudget    = 8192
	defaultRecentLimit   = 50

	ModeSummary = "summary"
	ModeHybrid  = "hybrid"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		File:          mustExpand(defaultLogFile),
		MaxItems:      defaultMaxItems,
		LinesPerItem:  defaultLinesPerItem,
		LinesExpanded: defaultLinesExpanded,
		StripANSI:     true,
		CharBudget:    defaultCharBudget,
		RecentLimit:   defaultRecentLimit,
	}
}

// fileConfig mirrors the keys accepted in a config file. Pointers tell an
// absent key apart from an explicit zero.
type fileConfig struct {
	File          *string `toml:"file" yaml:"file"`
	FromStart     *bool   `toml:"from_start" yaml:"from_start"`
	MaxItems      *int    `toml:"max_items" yaml:"max_items"`
	LinesPerItem  *int    `toml:"lines_per_item" yaml:"lines_per_item"`
	LinesExpanded *int    `toml:"lines_expanded" yaml:"lines_expanded"`
	PrettyPreview *bool   `toml:"pretty_preview" yaml:"pretty_preview"`
	PrettyMode    *string `toml:"pretty_mode" yaml:"pretty_mode"`
	KeepANSI      *bool   `toml:"keep_ansi" yaml:"keep_ansi"`
	JSONPretty    *bool   `toml:"json_pretty" yaml:"json_pretty"`
	CharBudget    *int    `toml:"char_budget" yaml:"char_budget"`
	RecentLimit   *int    `toml:"recent_limit" yaml:"recent_limit"`
	ExportDir     *string `toml:"export_dir" yaml:"export_dir"`
	DebugLog      *string `toml:"debug_log" yaml:"debug_log"`
}

// Load returns the defaults overlaid with the config file at path (or the
// default location when path is empty). A missing file is not an error.
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.merge(raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(raw fileConfig) error {
	if raw.File != nil && strings.TrimSpace(*raw.File) != "" {
		p, err := expandPath(*raw.File)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		c.File = p
	}
	setBool(&c.FromStart, raw.FromStart)
	setInt(&c.MaxItems, raw.MaxItems)
	setInt(&c.LinesPerItem, raw.LinesPerItem)
	setInt(&c.LinesExpanded, raw.LinesExpanded)
	setBool(&c.PrettyPreview, raw.PrettyPreview)
	if raw.PrettyMode != nil {
		c.PrettyMode = strings.ToLower(strings.TrimSpace(*raw.PrettyMode))
	}
	if raw.KeepANSI != nil {
		c.StripANSI = !*raw.KeepANSI
	}
	setBool(&c.JSONPretty, raw.JSONPretty)
	setInt(&c.CharBudget, raw.CharBudget)
	setInt(&c.RecentLimit, raw.RecentLimit)
	if raw.ExportDir != nil {
		c.ExportDir = mustExpand(*raw.ExportDir)
	}
	if raw.DebugLog != nil {
		c.DebugLog = mustExpand(*raw.DebugLog)
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Finalize resolves settings that depend on each other. An unset pretty mode
// becomes hybrid when pretty previews are on and summary otherwise.
func (c *Config) Finalize() {
	if c.PrettyMode == "" {
		if c.PrettyPreview {
			c.PrettyMode = ModeHybrid
		} else {
			c.PrettyMode = ModeSummary
		}
	}
}

// Validate rejects settings the viewer cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("log file path is empty")
	}
	limits := []struct {
		name  string
		value int
	}{
		{"max items", c.MaxItems},
		{"lines per item", c.LinesPerItem},
		{"lines expanded", c.LinesExpanded},
		{"char budget", c.CharBudget},
		{"recent limit", c.RecentLimit},
	}
	for _, l := range limits {
		if l.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", l.name, l.value)
		}
	}
	switch c.PrettyMode {
	case "", ModeSummary, ModeHybrid:
	default:
		return fmt.Errorf("unknown pretty mode %q (want summary or hybrid)", c.PrettyMode)
	}
	return nil
}

// Truthy reports whether an environment value switches a feature on.
func Truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(name, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// ExpandPath expands a leading ~ and makes path absolute. Empty paths are
// returned unchanged.
func ExpandPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return path
	}
	return mustExpand(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
