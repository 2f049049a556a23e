package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TICKTICK_TOKEN", "TICKTICK_BASE_URL", "TIMEZONE", "TICKTICK_FETCH_CONCURRENCY", "TICKTICK_HTTP_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != DefaultTimezone {
		t.Errorf("Expected timezone %s, got %s", DefaultTimezone, cfg.Timezone)
	}
	if cfg.BaseURL != "https://api.ticktick.com/open/v1" {
		t.Errorf("Unexpected base URL %s", cfg.BaseURL)
	}
	if cfg.FetchConcurrency != 8 || cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "timezone: Europe/Berlin\nfetch_concurrency: 3\nhttp_timeout: 5s\n"
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TICKTICK_TOKEN", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" || cfg.FetchConcurrency != 3 || cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("Expected file values, got %+v", cfg)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Expected token from environment, got %q", cfg.Token)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "Mars/Olympus") {
		t.Fatalf("Expected invalid timezone error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &Config{BaseURL: "http://localhost:9999", Timezone: "UTC", FetchConcurrency: 2, HTTPTimeout: time.Minute}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *out != *in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}
}
