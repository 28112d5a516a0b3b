package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path == "" {
		t.Error("DefaultConfigPath() returned empty string")
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, should end with config.yaml", path)
	}
	if os.Getenv("HOME") != "" || os.Getenv("USERPROFILE") != "" {
		if filepath.Base(filepath.Dir(path)) != ".tgbot" {
			t.Errorf("DefaultConfigPath() = %q, should be in .tgbot directory", path)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("LoadConfig() error = %v, want nil for missing file", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfig() returned nil config")
	}
	if cfg.Endpoint != "" || cfg.TokenRef != "" || cfg.LogLevel != "" {
		t.Errorf("LoadConfig() = %+v, want empty config", cfg)
	}
}

func TestLoadConfigValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `endpoint: http://localhost:8081/
token_ref: staging
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Endpoint != "http://localhost:8081/" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Token() != "staging" {
		t.Errorf("Token() = %q, want staging", cfg.Token())
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("endpoint: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on invalid YAML")
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{TokenRef: "prod", LogLevel: "info"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", loaded, cfg)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.Token() != DefaultTokenRef {
		t.Errorf("Token() = %q, want %q", cfg.Token(), DefaultTokenRef)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level() = %v, want warn", cfg.Level())
	}
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("TGBOT_CONFIG", "/tmp/other.yaml")
	t.Setenv("TGBOT_LOG_LEVEL", "ERROR")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := ResolvePath("", env); got != "/tmp/other.yaml" {
		t.Errorf("ResolvePath() = %q, want env path", got)
	}
	if got := ResolvePath("/explicit.yaml", env); got != "/explicit.yaml" {
		t.Errorf("ResolvePath() = %q, want flag path", got)
	}

	cfg := &Config{LogLevel: "debug"}
	cfg.ApplyEnv(env)
	if cfg.Level() != slog.LevelError {
		t.Errorf("Level() = %v, want error after overlay", cfg.Level())
	}
}

func TestResolvePathDefault(t *testing.T) {
	if got := ResolvePath("", Env{}); got != DefaultConfigPath() {
		t.Errorf("ResolvePath() = %q, want %q", got, DefaultConfigPath())
	}
}
