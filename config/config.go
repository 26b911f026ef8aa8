// ABOUTME: Client configuration layered from defaults, JSON file, .env, and environment
// ABOUTME: Stored at XDG config path; env vars prefixed RIWORA_ always win
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG directories.
	AppName = "riwora"

	// ConfigFileName is where we store local config.
	ConfigFileName = "config.json"

	// DefaultAPIURL is the REST base path of a locally running backend.
	DefaultAPIURL = "http://127.0.0.1:5001/api"

	DefaultSandboxAddr = "127.0.0.1:5001"
)

// Config holds client settings.
type Config struct {
	APIURL string `json:"api_url,omitempty" env:"RIWORA_API_URL"`

	// RequestTimeout bounds every HTTP call; zero means no timeout.
	RequestTimeout time.Duration `json:"request_timeout,omitempty" env:"RIWORA_REQUEST_TIMEOUT"`

	LogLevel string `json:"log_level,omitempty" env:"RIWORA_LOG_LEVEL"`

	// DataDir holds the session store.
	DataDir string `json:"data_dir,omitempty" env:"RIWORA_DATA_DIR"`

	SandboxAddr string `json:"sandbox_addr,omitempty" env:"RIWORA_SANDBOX_ADDR"`
	SandboxDB   string `json:"sandbox_db,omitempty" env:"RIWORA_SANDBOX_DB"`

	path string
}

// DefaultConfig returns a new config with sensible defaults.
// SandboxDB is left empty so it follows whichever DataDir wins the layering.
func DefaultConfig() *Config {
	return &Config{
		APIURL:      DefaultAPIURL,
		LogLevel:    "warn",
		DataDir:     filepath.Join(xdg.DataHome, AppName),
		SandboxAddr: DefaultSandboxAddr,
		path:        DefaultPath(),
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

// Load reads config from the default path. See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom layers defaults, the JSON file at path (if present), a .env file in
// the working directory, and finally the environment.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = def.APIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.SandboxAddr == "" {
		c.SandboxAddr = def.SandboxAddr
	}
	if c.SandboxDB == "" {
		c.SandboxDB = filepath.Join(c.DataDir, "sandbox.db")
	}
}

// Path returns the file this config was loaded from and saves to.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// SessionDir is the badger directory holding the persisted identity.
func (c *Config) SessionDir() string {
	return filepath.Join(c.DataDir, "session")
}

// Save persists the config to disk.
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SetAPIURL sets the REST base URL and saves.
func (c *Config) SetAPIURL(url string) error {
	c.APIURL = strings.TrimRight(url, "/")
	return c.Save()
}

// NewLogger builds the structured logger every component receives.
// Unknown levels fall back to warn.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          AppName,
		ReportTimestamp: true,
	})
}
