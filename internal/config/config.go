// Package config handles global zotpick configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/zotpick/config.yml.
type Config struct {
	ZoteroDB        string `yaml:"zotero_db,omitempty"`         // Source database path
	CacheDir        string `yaml:"cache_dir,omitempty"`         // Snapshot and cache file directory
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds,omitempty"` // Cache expiration window
	CiteTemplate    string `yaml:"cite_template,omitempty"`     // Citation template
	PreviewTemplate string `yaml:"preview_template,omitempty"`  // Preview template
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "zotpick"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultCacheTTLSeconds is the default cache expiration window.
	DefaultCacheTTLSeconds = 300
	// DefaultCiteTemplate is the default citation template.
	DefaultCiteTemplate = "{title} ({year})"
	// DefaultPreviewTemplate is the default preview template.
	DefaultPreviewTemplate = "{title}\n{authors} ({year}) {publication}"
)

// configCache caches the loaded config for the process.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/zotpick/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the configuration file, fills in defaults, and applies
// ZOTPICK_DB / ZOTPICK_CACHE_DIR environment overrides. A missing file
// is not an error; it yields the defaults.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	var cfg Config
	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if db := os.Getenv("ZOTPICK_DB"); db != "" {
		cfg.ZoteroDB = db
	}
	if dir := os.Getenv("ZOTPICK_CACHE_DIR"); dir != "" {
		cfg.CacheDir = dir
	}
	applyDefaults(&cfg)

	configCache = &cfg
	return &cfg, nil
}

// Reset clears the cached config. Useful for testing.
func Reset() {
	configCache = nil
}

// Save writes the configuration file, creating its directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// CacheTTL returns the cache expiration as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// applyDefaults fills unset fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.ZoteroDB == "" {
		cfg.ZoteroDB = defaultZoteroDB()
	} else {
		cfg.ZoteroDB = ExpandTilde(cfg.ZoteroDB)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	} else {
		cfg.CacheDir = ExpandTilde(cfg.CacheDir)
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.CiteTemplate == "" {
		cfg.CiteTemplate = DefaultCiteTemplate
	}
	if cfg.PreviewTemplate == "" {
		cfg.PreviewTemplate = DefaultPreviewTemplate
	}
}

// defaultZoteroDB returns Zotero's well-known database location.
func defaultZoteroDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Zotero", "zotero.sqlite")
}

// defaultCacheDir returns the cache directory.
// Respects XDG_CACHE_HOME, defaults to ~/.cache/zotpick.
func defaultCacheDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, ConfigDir)
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
