package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "")
		config := DefaultConfig()

		if config.Database.Path != "./plx.db" {
			t.Errorf("expected database path ./plx.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8089 {
			t.Errorf("expected server port 8089, got %d", config.Server.Port)
		}

		if config.API.BaseURL != "http://127.0.0.1:8089" {
			t.Errorf("expected api base URL http://127.0.0.1:8089, got %s", config.API.BaseURL)
		}

		if config.Server.SecurityPage {
			t.Error("expected security page to be disabled by default")
		}

		if config.Import.RateLimit != 2.0 {
			t.Errorf("expected import rate limit 2.0, got %v", config.Import.RateLimit)
		}
	})

	t.Run("Env Override", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "http://backend.local:9000")
		config := DefaultConfig()

		if config.API.BaseURL != "http://backend.local:9000" {
			t.Errorf("expected env base URL, got %s", config.API.BaseURL)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "")
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "")
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `log_level = "debug"

[api]
base_url = "http://localhost:9090"
timeout_seconds = 3

[server]
host = "0.0.0.0"
port = 8080
security_page = true
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://localhost:9090" {
			t.Errorf("expected base URL http://localhost:9090, got %s", config.API.BaseURL)
		}
		if config.API.Timeout() != 3*time.Second {
			t.Errorf("expected timeout 3s, got %v", config.API.Timeout())
		}
		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if !config.Server.SecurityPage {
			t.Error("expected security page to be enabled")
		}
		if config.Database.Path != "./plx.db" {
			t.Errorf("expected missing keys to keep defaults, got database path %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("Timeout Default", func(t *testing.T) {
		if got := (APIConfig{}).Timeout(); got != 10*time.Second {
			t.Errorf("expected default timeout 10s, got %v", got)
		}
	})
}
