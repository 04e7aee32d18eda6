// Package environment resolves agentchat settings from environment variables
// and an optional YAML config file.
//
// Precedence, lowest to highest: built-in defaults, the config file, the
// process environment.
package environment

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
)

// Recognized environment variables.
const (
	EnvServerURL  = "SERVER_URL"
	EnvDebug      = "DEBUG"
	EnvLogLevel   = "AGENTCHAT_LOG_LEVEL"
	EnvConfigPath = "AGENTCHAT_CONFIG"
)

const defaultLogLevel = "info"

// Config holds resolved settings.
type Config struct {
	// ServerURL is the agent service base URL, without a trailing slash.
	ServerURL string

	// Debug enables diagnostic output. It never changes control flow.
	Debug bool

	// LogLevel is the zap level name used when Debug is off.
	LogLevel string
}

// fileConfig mirrors the YAML config file. Pointers distinguish unset keys.
type fileConfig struct {
	ServerURL *string `yaml:"serverUrl"`
	Debug     *bool   `yaml:"debug"`
	LogLevel  *string `yaml:"logLevel"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: agentapi.DefaultBaseURL,
		LogLevel:  defaultLogLevel,
	}
}

// ConfigPath returns the config file location: AGENTCHAT_CONFIG when set,
// otherwise fallback.
func ConfigPath(getenv func(string) string, fallback string) string {
	if p := strings.TrimSpace(getenv(EnvConfigPath)); p != "" {
		return p
	}
	return fallback
}

// Load builds a Config from the file at path (skipped when empty or
// missing) and the variables visible through getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if v := strings.TrimSpace(getenv(EnvServerURL)); v != "" {
		cfg.ServerURL = v
	}
	// Any non-empty DEBUG enables diagnostics, "0" and "false" included.
	if getenv(EnvDebug) != "" {
		cfg.Debug = true
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ServerURL != nil {
		c.ServerURL = strings.TrimSpace(*fc.ServerURL)
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.LogLevel != nil {
		c.LogLevel = strings.TrimSpace(*fc.LogLevel)
	}
	return nil
}

func (c *Config) validate() error {
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", c.ServerURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q: expected http(s)://host[:port]", c.ServerURL)
	}

	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// GetLogLevel returns the effective logging level. Debug always wins.
func GetLogLevel(cfg *Config) zap.AtomicLevel {
	if cfg.Debug {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zap.NewAtomicLevelAt(level)
}
