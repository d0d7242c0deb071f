// Package config loads layered defrec configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete defrec configuration.
type Config struct {
	Index IndexConfig `yaml:"index" json:"index"`
	Scan  ScanConfig  `yaml:"scan" json:"scan"`
	Match MatchConfig `yaml:"match" json:"match"`
	Watch WatchConfig `yaml:"watch" json:"watch"`
}

// IndexConfig configures where the persisted index lives.
type IndexConfig struct {
	// Path is the index file location. The backend is inferred from the
	// extension unless Backend is set explicitly.
	Path string `yaml:"path" json:"path"`

	// Backend selects the storage backend: "json" or "sqlite".
	// Empty means detect from Path.
	Backend string `yaml:"backend" json:"backend"`
}

// ScanConfig configures file enumeration.
type ScanConfig struct {
	// Extension limits scanned files (default ".py").
	Extension string `yaml:"extension" json:"extension"`

	// Strategy selects the enumerator: "auto", "locate", or "walk".
	Strategy string `yaml:"strategy" json:"strategy"`

	// ExcludeDirs are directory names skipped while walking.
	ExcludeDirs []string `yaml:"exclude_dirs" json:"exclude_dirs"`
}

// MatchConfig configures fuzzy recall.
type MatchConfig struct {
	// Threshold is the minimum similarity a result must exceed (0.0-1.0).
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// MinLength drops candidate names shorter than this many bytes.
	MinLength int `yaml:"min_length" json:"min_length"`

	// JunkChars are stripped from names and queries before scoring.
	JunkChars string `yaml:"junk_chars" json:"junk_chars"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is the coalescing window for change batches (e.g. "500ms").
	Debounce string `yaml:"debounce" json:"debounce"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Path: DefaultIndexPath(),
		},
		Scan: ScanConfig{
			Extension: ".py",
			Strategy:  "auto",
			ExcludeDirs: []string{
				".git", "node_modules", "vendor", "__pycache__",
				".venv", "venv", "dist", "build",
			},
		},
		Match: MatchConfig{
			Threshold: 0.8,
			MinLength: 3,
			JunkChars: " _",
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// DefaultIndexPath returns the default index file location.
func DefaultIndexPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".defrec", "index.json")
	}
	return filepath.Join(home, ".defrec", "index.json")
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/defrec/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/defrec/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "defrec", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "defrec", "config.yaml")
	}
	return filepath.Join(home, ".config", "defrec", "config.yaml")
}

// Load loads configuration for the given project directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/defrec/config.yaml)
//  3. Project config (.defrec.yaml in dir)
//  4. Environment variables (DEFREC_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if err := cfg.loadFromDir(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromDir attempts to load .defrec.yaml or .defrec.yml from dir.
func (c *Config) loadFromDir(dir string) error {
	yamlPath := filepath.Join(dir, ".defrec.yaml")
	if fileExists(yamlPath) {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".defrec.yml")
	if fileExists(ymlPath) {
		return c.loadYAML(ymlPath)
	}

	// No project config is fine.
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Index.Path != "" {
		c.Index.Path = other.Index.Path
	}
	if other.Index.Backend != "" {
		c.Index.Backend = other.Index.Backend
	}

	if other.Scan.Extension != "" {
		c.Scan.Extension = other.Scan.Extension
	}
	if other.Scan.Strategy != "" {
		c.Scan.Strategy = other.Scan.Strategy
	}
	if len(other.Scan.ExcludeDirs) > 0 {
		c.Scan.ExcludeDirs = other.Scan.ExcludeDirs
	}

	if other.Match.Threshold != 0 {
		c.Match.Threshold = other.Match.Threshold
	}
	if other.Match.MinLength != 0 {
		c.Match.MinLength = other.Match.MinLength
	}
	if other.Match.JunkChars != "" {
		c.Match.JunkChars = other.Match.JunkChars
	}

	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}
}

// applyEnvOverrides applies DEFREC_* environment variables.
// Environment variables have the highest precedence.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DEFREC_INDEX_PATH"); v != "" {
		c.Index.Path = v
	}
	if v := os.Getenv("DEFREC_INDEX_BACKEND"); v != "" {
		c.Index.Backend = v
	}
	if v := os.Getenv("DEFREC_SCAN_EXTENSION"); v != "" {
		c.Scan.Extension = v
	}
	if v := os.Getenv("DEFREC_SCAN_STRATEGY"); v != "" {
		c.Scan.Strategy = v
	}
	if v := os.Getenv("DEFREC_MATCH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Match.Threshold = f
		}
	}
	if v := os.Getenv("DEFREC_MATCH_MIN_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Match.MinLength = n
		}
	}
	if v := os.Getenv("DEFREC_WATCH_DEBOUNCE"); v != "" {
		c.Watch.Debounce = v
	}
}

// Validate checks the final configuration for consistency.
func (c *Config) Validate() error {
	if c.Index.Path == "" {
		return fmt.Errorf("index.path must not be empty")
	}

	switch c.Index.Backend {
	case "", "json", "sqlite":
	default:
		return fmt.Errorf("index.backend must be \"json\" or \"sqlite\", got %q", c.Index.Backend)
	}

	switch c.Scan.Strategy {
	case "auto", "locate", "walk":
	default:
		return fmt.Errorf("scan.strategy must be \"auto\", \"locate\", or \"walk\", got %q", c.Scan.Strategy)
	}

	if !strings.HasPrefix(c.Scan.Extension, ".") {
		return fmt.Errorf("scan.extension must start with a dot, got %q", c.Scan.Extension)
	}

	if c.Match.Threshold < 0 || c.Match.Threshold > 1 {
		return fmt.Errorf("match.threshold must be between 0.0 and 1.0, got %g", c.Match.Threshold)
	}
	if c.Match.MinLength < 0 {
		return fmt.Errorf("match.min_length must not be negative, got %d", c.Match.MinLength)
	}

	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce is not a valid duration: %w", err)
	}

	return nil
}

// DebounceWindow returns the parsed watch debounce duration.
// Call Validate first; invalid values fall back to 500ms.
func (c *Config) DebounceWindow() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
