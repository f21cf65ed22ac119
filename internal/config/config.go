// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages chatti's configuration.
package config

import (
	"bytes"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/chatti/internal/util"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config holds all chatti settings.
type Config struct {
	// Endpoint is the chat completion URL.
	// Note: uses explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows.
	Endpoint string `toml:"endpoint"`

	// Model is the model name sent with every request.
	Model string `toml:"model"`

	// Stream selects NDJSON streaming (true) or a single JSON response.
	Stream bool `toml:"stream"`

	// Temperature is the sampling temperature, 0.0-2.0.
	Temperature float64 `toml:"temperature"`

	// Cache configures the local response cache.
	Cache CacheConfig `toml:"cache"`

	// UI configures rendering preferences.
	UI UIConfig `toml:"ui"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	// Enabled turns the cache on. Off by default: live model output is
	// usually wanted, the cache exists for repeated identical prompts.
	Enabled bool `toml:"enabled"`

	// TTLHours is how long a cached response stays valid.
	TTLHours int `toml:"ttl_hours"`

	// MaxEntries bounds the cache size; oldest entries are pruned.
	MaxEntries int `toml:"max_entries"`
}

// UIConfig controls rendering preferences.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme"`

	// CodeStyle is the chroma style name for highlighted code blocks.
	CodeStyle string `toml:"code_style"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Endpoint:    "http://127.0.0.1:11434/api/chat",
		Model:       "llama3.2",
		Stream:      true,
		Temperature: 0.7,
		Cache: CacheConfig{
			Enabled:    false,
			TTLHours:   24,
			MaxEntries: 1000,
		},
		UI: UIConfig{
			Theme:     "auto",
			CodeStyle: "monokai",
		},
	}
}

// fillDefaults backfills zero values after a partial config file is loaded.
// A file that only sets `model` still gets a working endpoint.
func (c *Config) fillDefaults() {
	def := Default()

	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.Temperature == 0 {
		c.Temperature = def.Temperature
	}
	if c.Cache.TTLHours == 0 {
		c.Cache.TTLHours = def.Cache.TTLHours
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = def.Cache.MaxEntries
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.CodeStyle == "" {
		c.UI.CodeStyle = def.UI.CodeStyle
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the chatti config directory (~/.chatti).
// CHATTI_CONFIG_DIR overrides it, which tests rely on.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATTI_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatti"), nil
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the config directory with owner-only permissions.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, creating a default file on first run.
// Environment overrides are applied after the file is read, and the result
// is validated before being returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg = &Config{}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.New("failed to parse " + path + ": " + err.Error())
		}
		cfg.fillDefaults()
	case os.IsNotExist(err):
		// First run: write the defaults so the user has a file to edit.
		if err := cfg.SaveTo(path); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies CHATTI_* environment variables on top of the
// loaded values. Invalid values are ignored rather than fatal.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHATTI_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("CHATTI_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("CHATTI_STREAM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Stream = b
		}
	}
	if v := os.Getenv("CHATTI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
	if v := os.Getenv("CHATTI_CACHE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = b
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "config: " + e.Field + ": " + e.Message
}

// Validate checks the configuration for values that would break requests.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return &ValidationError{Field: "endpoint", Message: "must not be empty"}
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "endpoint", Message: "must be a valid http(s) URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "endpoint", Message: "scheme must be http or https"}
	}

	if strings.TrimSpace(c.Model) == "" {
		return &ValidationError{Field: "model", Message: "must not be empty"}
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return &ValidationError{
			Field:   "temperature",
			Message: "must be between 0.0 and 2.0, got " + util.FloatToString(c.Temperature),
		}
	}

	if c.Cache.TTLHours < 0 {
		return &ValidationError{Field: "cache.ttl_hours", Message: "must not be negative"}
	}
	if c.Cache.MaxEntries < 0 {
		return &ValidationError{Field: "cache.max_entries", Message: "must not be negative"}
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return &ValidationError{Field: "ui.theme", Message: "must be auto, dark or light"}
	}

	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration as TOML. The write is atomic and the file
// is created with owner-only permissions.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatti configuration\n")
	buf.WriteString("# endpoint:    chat completion URL\n")
	buf.WriteString("# model:       model name sent with every request\n")
	buf.WriteString("# stream:      stream tokens as they are generated\n")
	buf.WriteString("# temperature: sampling temperature, 0.0-2.0\n\n")

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}

	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide configuration, or nil before SetGlobal.
func Global() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCfg
}

// SetGlobal installs the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// ResetGlobalForTesting clears the global configuration.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = nil
}
