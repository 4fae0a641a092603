package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/noted/internal/config"
)

func writeConfig(t *testing.T, home string, data map[string]any) string {
	t.Helper()
	path := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	var raw []byte
	if data != nil {
		var err error
		raw, err = yaml.Marshal(data)
		if err != nil {
			t.Fatalf("failed to marshal config data: %v", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, nil)

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if cfg.APIURL != "http://localhost:8000" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Storage != config.StorageFile {
		t.Fatalf("unexpected storage %q", cfg.Storage)
	}
	if cfg.Feedback.Logout != 5*time.Second || cfg.Feedback.SignIn != 3*time.Second || cfg.Feedback.SignUp != 3*time.Second {
		t.Fatalf("unexpected feedback delays %+v", cfg.Feedback)
	}
	if cfg.Feedback.Copy != 2*time.Second {
		t.Fatalf("unexpected copy feedback delay %v", cfg.Feedback.Copy)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}

	want := filepath.Join(filepath.Dir(path), "session.yaml")
	if cfg.SessionFile != want {
		t.Fatalf("expected session file %q, got %q", want, cfg.SessionFile)
	}
	if cfg.GetConfigPath() != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.GetConfigPath())
	}
}

func TestLoadReadsFileValues(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, map[string]any{
		"api_url":         "https://notes.example.com",
		"storage":         "memory",
		"request_timeout": "2s",
		"log":             map[string]any{"level": "debug"},
		"feedback":        map[string]any{"logout": "1s", "copy": "500ms"},
		"rate_limit":      map[string]any{"rps": 2.5, "burst": 4},
	})

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if cfg.APIURL != "https://notes.example.com" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Storage != config.StorageMemory {
		t.Fatalf("unexpected storage %q", cfg.Storage)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout)
	}
	if cfg.Feedback.Logout != time.Second || cfg.Feedback.SignIn != 3*time.Second {
		t.Fatalf("unexpected feedback delays %+v", cfg.Feedback)
	}
	if cfg.Feedback.Copy != 500*time.Millisecond {
		t.Fatalf("unexpected copy feedback delay %v", cfg.Feedback.Copy)
	}
	if cfg.RateLimit.RPS != 2.5 || cfg.RateLimit.Burst != 4 {
		t.Fatalf("unexpected rate limit %+v", cfg.RateLimit)
	}
}

func TestLoadRejectsInvalidStorage(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, map[string]any{"storage": "s3"})

	_, err := config.Load(path, nil)
	var initErr *config.InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %v", err)
	}
	if initErr.Field != "storage" {
		t.Fatalf("expected storage field, got %q", initErr.Field)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, map[string]any{"log": map[string]any{"level": "loud"}})

	_, err := config.Load(path, nil)
	var initErr *config.InitError
	if !errors.As(err, &initErr) || initErr.Field != "log.level" {
		t.Fatalf("expected log.level InitError, got %v", err)
	}
}

func TestViperOverridesFile(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, map[string]any{"api_url": "https://file.example.com"})

	v := viper.New()
	v.Set("api_url", "https://flag.example.com")
	v.Set("log.level", "warn")

	cfg, err := config.Load(path, v)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.APIURL != "https://flag.example.com" {
		t.Fatalf("expected override, got %q", cfg.APIURL)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected warn, got %q", cfg.Log.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, nil)
	t.Setenv("NOTED_API_URL", "https://env.example.com")
	t.Setenv("NOTED_STORAGE", "memory")

	v := viper.New()
	config.BindEnv(v)

	cfg, err := config.Load(path, v)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Fatalf("expected env api url, got %q", cfg.APIURL)
	}
	if cfg.Storage != config.StorageMemory {
		t.Fatalf("expected memory storage, got %q", cfg.Storage)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := config.LoadDotEnv(dir); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NOTED_TEST_DOTENV=from-file\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("NOTED_TEST_DOTENV", "")
	os.Unsetenv("NOTED_TEST_DOTENV")

	if err := config.LoadDotEnv(dir); err != nil {
		t.Fatalf("expected .env to load: %v", err)
	}
	if got := os.Getenv("NOTED_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected from-file, got %q", got)
	}
}

func TestEnsureConfigExistsAndSave(t *testing.T) {
	home := t.TempDir()
	path := config.GetConfigPath(home)

	if err := config.EnsureConfigExists(path); err != nil {
		t.Fatalf("expected config to be created: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	cfg := config.Default(home)
	cfg.APIURL = "https://saved.example.com"
	if err := cfg.Save(); err != nil {
		t.Fatalf("expected save to succeed: %v", err)
	}

	loaded, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("expected reload to succeed: %v", err)
	}
	if loaded.APIURL != "https://saved.example.com" {
		t.Fatalf("expected saved api url, got %q", loaded.APIURL)
	}
	if loaded.Feedback.Logout != 5*time.Second {
		t.Fatalf("expected durations to round trip, got %v", loaded.Feedback.Logout)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.APIURL = ""
	if err := cfg.Save(); err == nil {
		t.Fatalf("expected save to fail without api url")
	}
}
