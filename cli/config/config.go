// Package config handles CLI configuration loading and management.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultTokenRef is the keystore entry used when token_ref is not set.
const DefaultTokenRef = "default"

// Config represents the CLI configuration.
type Config struct {
	// Endpoint overrides the Bot API base URL, e.g. a local Bot API server.
	Endpoint string `yaml:"endpoint,omitempty"`
	// TokenRef names the keystore entry holding the bot token.
	TokenRef string `yaml:"token_ref,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Env holds the environment overrides for the CLI.
type Env struct {
	ConfigPath string `envconfig:"TGBOT_CONFIG"`
	LogLevel   string `envconfig:"TGBOT_LOG_LEVEL"`
}

// LoadEnv reads TGBOT_* variables.
func LoadEnv() (Env, error) {
	var env Env
	err := envconfig.Process("", &env)
	return env, err
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.tgbot/config.yaml
// - Windows: %USERPROFILE%\.tgbot\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".tgbot", "config.yaml")
}

// ResolvePath picks the config file: the explicit flag value, then
// TGBOT_CONFIG, then DefaultConfigPath.
func ResolvePath(flag string, env Env) string {
	switch {
	case flag != "":
		return flag
	case env.ConfigPath != "":
		return env.ConfigPath
	default:
		return DefaultConfigPath()
	}
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overlays environment values onto the file configuration.
func (c *Config) ApplyEnv(env Env) {
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
}

// Token returns the keystore entry name for the bot token.
func (c *Config) Token() string {
	if c.TokenRef == "" {
		return DefaultTokenRef
	}
	return c.TokenRef
}

// Level parses LogLevel. Unknown or empty values yield slog.LevelWarn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
