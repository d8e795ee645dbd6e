package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"fuzzyswitch/internal/eventbus"
)

const (
	defaultConfigPath = "~/.config/fuzzyswitch/config.toml"
	defaultLogFile    = "~/.local/state/fuzzyswitch/fuzzyswitch.log"
	defaultHotkey     = "ctrl+p"
	defaultLabel      = "Search"
	defaultCount      = 5
	defaultTimeout    = "5s"
	defaultCacheTTL   = "30s"
	defaultCacheSize  = 128
)

// Config represents the application configuration
type Config struct {
	Label             string   `toml:"label"`
	DisplayCount      int      `toml:"display_count"`
	CycleAtEndsOfList bool     `toml:"cycle_at_ends_of_list"`
	Hotkey            string   `toml:"hotkey"`
	Ordering          string   `toml:"ordering"` // "latest-issued" or "last-resolved"
	Matcher           string   `toml:"matcher"`  // "fuzzy" or "substring"
	Items             []string `toml:"items"`
	Seed              []string `toml:"seed"`
	SeedFromItems     bool     `toml:"seed_from_items"` // show items before anything is typed
	LogFile           string   `toml:"log_file"`
	Fetch             Fetch    `toml:"fetch"`
}

// Fetch configures the asynchronous strategy. Leaving both Command and URL
// empty selects the synchronous strategy over Items.
type Fetch struct {
	Command   []string `toml:"command"`
	URL       string   `toml:"url"`
	Format    string   `toml:"format"` // "json" or "lines", command only
	Timeout   string   `toml:"timeout"`
	CacheTTL  string   `toml:"cache_ttl"`
	CacheSize int      `toml:"cache_size"`
}

// Enabled reports whether an async source is configured.
func (f Fetch) Enabled() bool {
	return len(f.Command) > 0 || strings.TrimSpace(f.URL) != ""
}

// TimeoutDuration parses Timeout, falling back to the default.
func (f Fetch) TimeoutDuration() (time.Duration, error) {
	return parseDuration("fetch.timeout", f.Timeout, defaultTimeout)
}

// CacheTTLDuration parses CacheTTL. Zero disables the cache.
func (f Fetch) CacheTTLDuration() (time.Duration, error) {
	return parseDuration("fetch.cache_ttl", f.CacheTTL, defaultCacheTTL)
}

// LogPath returns the expanded log file path.
func (c *Config) LogPath() string {
	return mustExpand(c.LogFile)
}

// Validate checks the values that can't be defaulted.
func (c *Config) Validate() error {
	switch c.Ordering {
	case "latest-issued", "last-resolved":
	default:
		return fmt.Errorf("ordering: unknown value %q", c.Ordering)
	}
	switch c.Matcher {
	case "fuzzy", "substring":
	default:
		return fmt.Errorf("matcher: unknown value %q", c.Matcher)
	}
	switch c.Fetch.Format {
	case "json", "lines":
	default:
		return fmt.Errorf("fetch.format: unknown value %q", c.Fetch.Format)
	}
	if len(c.Fetch.Command) > 0 && strings.TrimSpace(c.Fetch.URL) != "" {
		return errors.New("fetch: command and url are mutually exclusive")
	}
	if _, err := c.Fetch.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Fetch.CacheTTLDuration(); err != nil {
		return err
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path; an empty path uses
// ~/.config/fuzzyswitch/config.toml.
func NewConfigService(path string) ConfigService {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	return &configService{filePath: mustExpand(path)}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:  cs.filePath,
			Items: len(cfg.Items),
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. A missing file
// yields an error wrapping os.ErrNotExist.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(mustExpand(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	path = mustExpand(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Label:        defaultLabel,
		DisplayCount: defaultCount,
		Hotkey:       defaultHotkey,
		Ordering:     "latest-issued",
		Matcher:      "fuzzy",
		Items:        []string{},
		Seed:         []string{},
		LogFile:      defaultLogFile,
		Fetch: Fetch{
			Format:    "json",
			Timeout:   defaultTimeout,
			CacheTTL:  defaultCacheTTL,
			CacheSize: defaultCacheSize,
		},
	}
}

func (c *Config) normalize() {
	c.Label = strings.TrimSpace(c.Label)
	if c.Label == "" {
		c.Label = defaultLabel
	}
	if c.DisplayCount <= 0 {
		c.DisplayCount = defaultCount
	}
	c.Hotkey = strings.ToLower(strings.TrimSpace(c.Hotkey))
	if c.Hotkey == "" {
		c.Hotkey = defaultHotkey
	}
	c.Ordering = strings.ToLower(strings.TrimSpace(c.Ordering))
	if c.Ordering == "" {
		c.Ordering = "latest-issued"
	}
	c.Matcher = strings.ToLower(strings.TrimSpace(c.Matcher))
	if c.Matcher == "" {
		c.Matcher = "fuzzy"
	}
	if c.Items == nil {
		c.Items = []string{}
	}
	if c.Seed == nil {
		c.Seed = []string{}
	}
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = defaultLogFile
	}

	if len(c.Fetch.Command) == 0 {
		c.Fetch.Command = nil
	}
	c.Fetch.URL = strings.TrimSpace(c.Fetch.URL)
	c.Fetch.Format = strings.ToLower(strings.TrimSpace(c.Fetch.Format))
	if c.Fetch.Format == "" {
		c.Fetch.Format = "json"
	}
	if strings.TrimSpace(c.Fetch.Timeout) == "" {
		c.Fetch.Timeout = defaultTimeout
	}
	if strings.TrimSpace(c.Fetch.CacheTTL) == "" {
		c.Fetch.CacheTTL = defaultCacheTTL
	}
	if c.Fetch.CacheSize <= 0 {
		c.Fetch.CacheSize = defaultCacheSize
	}
}

func parseDuration(key, value, fallback string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
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
