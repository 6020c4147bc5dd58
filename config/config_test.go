package config_test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/arman-bd/httpmorph-go/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Profile == "" {
		t.Error("Profile should not be empty")
	}
	if cfg.ConnectTimeout <= 0 {
		t.Errorf("ConnectTimeout should be > 0, got %v", cfg.ConnectTimeout)
	}
	if cfg.ReadTimeout <= 0 {
		t.Errorf("ReadTimeout should be > 0, got %v", cfg.ReadTimeout)
	}
	if cfg.MaxIdleConnsTotal <= 0 {
		t.Errorf("MaxIdleConnsTotal should be > 0, got %d", cfg.MaxIdleConnsTotal)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	raw := map[string]interface{}{
		"profile":                "firefox",
		"os":                     "windows",
		"http2":                  true,
		"connect_timeout":        int64(5 * time.Second),
		"read_timeout":           int64(20 * time.Second),
		"max_redirects":          10,
		"proxy_url":              "http://proxy.example.com:8080",
		"proxy_file":             "",
		"max_idle_conns_per_host": 8,
		"max_idle_conns_total":   50,
		"idle_conn_timeout":      int64(30 * time.Second),
	}
	f, err := os.CreateTemp(t.TempDir(), "config*.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := json.NewEncoder(f).Encode(raw); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg, err := config.LoadConfig(f.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile != "firefox" {
		t.Errorf("got Profile=%q, want firefox", cfg.Profile)
	}
	if cfg.ProxyURL != "http://proxy.example.com:8080" {
		t.Errorf("got ProxyURL=%q, want http://proxy.example.com:8080", cfg.ProxyURL)
	}
	if cfg.MaxRedirects != 10 {
		t.Errorf("got MaxRedirects=%d, want 10", cfg.MaxRedirects)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := config.LoadConfig("/nonexistent/path/config.json")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad*.json")
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{not valid json}")
	f.Close()

	_, err = config.LoadConfig(f.Name())
	if err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}
