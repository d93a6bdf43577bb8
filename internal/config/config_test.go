package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.Host)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %s, want 30s", cfg.RequestTimeout)
	}
	if cfg.MaxRequestBodySize != 10*1024*1024 {
		t.Errorf("MaxRequestBodySize = %d, want 10MB", cfg.MaxRequestBodySize)
	}
	if cfg.StorageBackend != "http" {
		t.Errorf("StorageBackend = %q, want http", cfg.StorageBackend)
	}
	if cfg.HistoryDBDir == "" {
		t.Error("expected a default history directory")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("HISTORY_DB_DIR", "/tmp/chartscan-history")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Host)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %s, want 45s", cfg.RequestTimeout)
	}
	if cfg.HistoryDBDir != "/tmp/chartscan-history" {
		t.Errorf("HistoryDBDir = %q, want /tmp/chartscan-history", cfg.HistoryDBDir)
	}
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000"} {
		t.Run(port, func(t *testing.T) {
			t.Setenv("PORT", port)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("expected error for PORT=%q", port)
			}
		})
	}
}

func TestLoadFromEnv_InvalidStorageBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "ftp")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected error for unknown storage backend")
	}
}

func TestLoadFromEnv_AzureRequiresCredentials(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "azure")
	t.Setenv("AZURE_ACCOUNT_NAME", "")
	t.Setenv("AZURE_ACCOUNT_KEY", "")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected error for azure backend without credentials")
	}

	t.Setenv("AZURE_ACCOUNT_NAME", "charts")
	t.Setenv("AZURE_ACCOUNT_KEY", "c2VjcmV0")
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed with credentials: %v", err)
	}
	if cfg.AzureAccountName != "charts" {
		t.Errorf("AzureAccountName = %q, want charts", cfg.AzureAccountName)
	}
}

func TestLoadFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("IMAGE_FETCH_TIMEOUT", "not-a-duration")
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.ImageFetchTimeout != 15*time.Second {
		t.Errorf("ImageFetchTimeout = %s, want default 15s", cfg.ImageFetchTimeout)
	}
}

func TestServerAddress(t *testing.T) {
	cfg := &Config{Host: " 0.0.0.0 ", Port: " 8080 "}
	if got := cfg.ServerAddress(); got != "0.0.0.0:8080" {
		t.Errorf("ServerAddress() = %q, want 0.0.0.0:8080", got)
	}
}

func TestDefaultHistoryDir(t *testing.T) {
	dir := DefaultHistoryDir()
	if !strings.HasSuffix(dir, "chart-color-inspector") {
		t.Errorf("DefaultHistoryDir() = %q, want chart-color-inspector suffix", dir)
	}
}
