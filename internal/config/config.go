// Package config loads the smart-links TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds daemon and CLI configuration.
type Config struct {
	ListenAddr       string `toml:"listen_addr"`
	DataDir          string `toml:"data_dir"`
	CookiesDir       string `toml:"cookies_dir"`
	YtDlpPath        string `toml:"ytdlp_path"`
	Format           string `toml:"format"`
	MaxConcurrent    int    `toml:"max_concurrent"`
	ExtractTimeout   string `toml:"extract_timeout"`
	History          bool   `toml:"history"`
	HistoryRetention string `toml:"history_retention"`
	Debug            bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ListenAddr:       "127.0.0.1:8000",
		DataDir:          "~/.local/share/smart-links",
		CookiesDir:       "~/.local/share/smart-links/cookies",
		YtDlpPath:        "yt-dlp",
		Format:           "bestaudio/bestvideo",
		MaxConcurrent:    3,
		ExtractTimeout:   "2m",
		History:          true,
		HistoryRetention: "720h",
		Debug:            false,
	}
}

// Dir returns the XDG config directory for smart-links.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smart-links"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "smart-links"), nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the default config file and merges it with defaults.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr cannot be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if c.YtDlpPath == "" {
		return fmt.Errorf("ytdlp_path cannot be empty")
	}
	if c.MaxConcurrent < 1 || c.MaxConcurrent > 32 {
		return fmt.Errorf("max_concurrent must be between 1 and 32, got %d", c.MaxConcurrent)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.Retention(); err != nil {
		return err
	}
	return nil
}

// Timeout parses extract_timeout. Zero disables the limit.
func (c *Config) Timeout() (time.Duration, error) {
	return parseDuration("extract_timeout", c.ExtractTimeout)
}

// Retention parses history_retention. Zero keeps history forever.
func (c *Config) Retention() (time.Duration, error) {
	return parseDuration("history_retention", c.HistoryRetention)
}

// ExpandedDataDir resolves ~ in data_dir.
func (c *Config) ExpandedDataDir() (string, error) {
	return ExpandPath(c.DataDir)
}

// ExpandedCookiesDir resolves ~ in cookies_dir, defaulting to <data_dir>/cookies.
func (c *Config) ExpandedCookiesDir() (string, error) {
	if c.CookiesDir == "" {
		dataDir, err := c.ExpandedDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dataDir, "cookies"), nil
	}
	return ExpandPath(c.CookiesDir)
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return filepath.Abs(path)
}

func parseDuration(key, value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s cannot be negative", key)
	}
	return d, nil
}
