package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/HamStudy/vscroll/configs"
)

const (
	appConfigDir   = "vscroll"
	configFileName = "config.yaml"
	tomlFileName   = "config.toml"
)

// Environment variables that override file settings
const (
	EnvOverscan  = "VSCROLL_OVERSCAN"
	EnvTheme     = "VSCROLL_THEME"
	EnvShowStats = "VSCROLL_SHOW_STATS"
)

// Config represents the main configuration structure
type Config struct {
	Version string         `yaml:"version" toml:"version,omitempty"`
	Theme   string         `yaml:"theme" toml:"theme,omitempty"`
	List    *ListConfig    `yaml:"list" toml:"list,omitempty"`
	Display *DisplayConfig `yaml:"display" toml:"display,omitempty"`
}

// ListConfig defines the windowing parameters
type ListConfig struct {
	ItemHeight           int      `yaml:"itemHeight" toml:"itemHeight,omitempty"`
	Overscan             *int     `yaml:"overscan" toml:"overscan,omitempty"`
	FrameInterval        Duration `yaml:"frameInterval" toml:"frameInterval,omitempty"`
	SmoothScrollDuration Duration `yaml:"smoothScrollDuration" toml:"smoothScrollDuration,omitempty"`
	Easing               string   `yaml:"easing" toml:"easing,omitempty"`
}

// DisplayConfig defines what the list view draws besides the rows. Unset
// flags keep their default.
type DisplayConfig struct {
	ShowOverscan *bool `yaml:"showOverscan,omitempty" toml:"showOverscan,omitempty"`
	ShowStats    *bool `yaml:"showStats,omitempty" toml:"showStats,omitempty"`
}

// Duration is a time.Duration written as a Go duration string in YAML
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// OverscanOrDefault returns the configured overscan or def when unset
func (c *Config) OverscanOrDefault(def int) int {
	if c.List == nil || c.List.Overscan == nil {
		return def
	}
	return *c.List.Overscan
}

// ShowOverscanOrDefault returns display.showOverscan or def when unset
func (c *Config) ShowOverscanOrDefault(def bool) bool {
	if c.Display == nil {
		return def
	}
	return boolOr(c.Display.ShowOverscan, def)
}

// ShowStatsOrDefault returns display.showStats or def when unset
func (c *Config) ShowStatsOrDefault(def bool) bool {
	if c.Display == nil {
		return def
	}
	return boolOr(c.Display.ShowStats, def)
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func copyBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Loader handles configuration loading and management
type Loader struct {
	configDir string
	defaults  *Config
	user      *Config
	merged    *Config
	mu        sync.RWMutex
}

// ConfigDir returns the default directory holding config.yaml
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appConfigDir)
}

// NewLoader creates a new configuration loader
func NewLoader(configDir string) *Loader {
	if configDir == "" {
		configDir = ConfigDir()
	}

	defaults, err := parseConfig(bytes.NewReader(configs.DefaultConfig))
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}

	return &Loader{
		configDir: configDir,
		defaults:  defaults,
	}
}

// Path returns the user config file path
func (l *Loader) Path() string {
	return filepath.Join(l.configDir, configFileName)
}

// Load loads the user configuration from disk, if present, and merges it
// over the defaults. Environment overrides are applied last.
func (l *Loader) Load() error {
	var user *Config
	for _, path := range []string{l.Path(), filepath.Join(l.configDir, tomlFileName)} {
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to stat user config: %w", err)
		}
		user, err = l.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load user config: %w", err)
		}
		break
	}

	return l.apply(user)
}

// LoadFrom loads a specific user configuration file in place of the default path
func (l *Loader) LoadFrom(path string) error {
	user, err := l.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return l.apply(user)
}

func (l *Loader) apply(user *Config) error {
	merged := mergeConfigs(l.defaults, user)
	if err := applyEnv(merged); err != nil {
		return err
	}
	if err := validateConfig(merged); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = user
	l.merged = merged
	return nil
}

// LoadFile loads a specific configuration file. Files ending in .toml are
// read as TOML, everything else as YAML.
func (l *Loader) LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return parseTOML(file)
	}
	return parseConfig(file)
}

// parseConfig parses configuration from a reader
func parseConfig(r io.Reader) (*Config, error) {
	var config Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true) // Strict parsing

	if err := decoder.Decode(&config); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// parseTOML parses a TOML configuration with the same strictness as YAML
func parseTOML(r io.Reader) (*Config, error) {
	var config Config
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// validateConfig checks values that would break the list; unset fields are left for merging
func validateConfig(config *Config) error {
	if list := config.List; list != nil {
		if list.ItemHeight < 0 {
			return fmt.Errorf("list.itemHeight must be positive, got %d", list.ItemHeight)
		}
		if list.Overscan != nil && *list.Overscan < 0 {
			return fmt.Errorf("list.overscan must not be negative, got %d", *list.Overscan)
		}
		if list.FrameInterval < 0 {
			return fmt.Errorf("list.frameInterval must not be negative")
		}
		if list.SmoothScrollDuration < 0 {
			return fmt.Errorf("list.smoothScrollDuration must not be negative")
		}
		switch list.Easing {
		case "", "linear", "out-cubic", "in-out-cubic":
		default:
			return fmt.Errorf("unknown list.easing %q", list.Easing)
		}
	}

	switch config.Theme {
	case "", "default", "light", "high-contrast":
	default:
		return fmt.Errorf("unknown theme %q", config.Theme)
	}

	return nil
}

// applyEnv overrides merged settings from the environment
func applyEnv(config *Config) error {
	if v := os.Getenv(EnvOverscan); v != "" {
		overscan, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOverscan, err)
		}
		if config.List == nil {
			config.List = &ListConfig{}
		}
		config.List.Overscan = &overscan
	}

	if v := os.Getenv(EnvTheme); v != "" {
		config.Theme = v
	}

	if v := os.Getenv(EnvShowStats); v != "" {
		show, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowStats, err)
		}
		if config.Display == nil {
			config.Display = &DisplayConfig{}
		}
		config.Display.ShowStats = &show
	}

	return nil
}

// mergeConfigs merges user config over defaults
func mergeConfigs(defaults, user *Config) *Config {
	merged := defaults.clone()
	if user == nil {
		return merged
	}

	if user.Version != "" {
		merged.Version = user.Version
	}
	if user.Theme != "" {
		merged.Theme = user.Theme
	}

	if user.List != nil {
		if merged.List == nil {
			merged.List = &ListConfig{}
		}
		if user.List.ItemHeight > 0 {
			merged.List.ItemHeight = user.List.ItemHeight
		}
		if user.List.Overscan != nil {
			overscan := *user.List.Overscan
			merged.List.Overscan = &overscan
		}
		if user.List.FrameInterval > 0 {
			merged.List.FrameInterval = user.List.FrameInterval
		}
		if user.List.SmoothScrollDuration > 0 {
			merged.List.SmoothScrollDuration = user.List.SmoothScrollDuration
		}
		if user.List.Easing != "" {
			merged.List.Easing = user.List.Easing
		}
	}

	if user.Display != nil {
		if merged.Display == nil {
			merged.Display = &DisplayConfig{}
		}
		if user.Display.ShowOverscan != nil {
			merged.Display.ShowOverscan = copyBool(user.Display.ShowOverscan)
		}
		if user.Display.ShowStats != nil {
			merged.Display.ShowStats = copyBool(user.Display.ShowStats)
		}
	}

	return merged
}

func (c *Config) clone() *Config {
	if c == nil {
		return &Config{}
	}
	out := *c
	if c.List != nil {
		list := *c.List
		if c.List.Overscan != nil {
			overscan := *c.List.Overscan
			list.Overscan = &overscan
		}
		out.List = &list
	}
	if c.Display != nil {
		out.Display = &DisplayConfig{
			ShowOverscan: copyBool(c.Display.ShowOverscan),
			ShowStats:    copyBool(c.Display.ShowStats),
		}
	}
	return &out
}

// Get returns the current configuration
func (l *Loader) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.merged != nil {
		return l.merged
	}
	return l.defaults
}

// Encode writes the current configuration as YAML
func (l *Loader) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(l.Get()); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return encoder.Close()
}

// Save writes the current configuration to the user config file
func (l *Loader) Save() error {
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return err
	}

	if err := os.WriteFile(l.Path(), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
