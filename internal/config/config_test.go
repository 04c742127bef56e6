package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validConfig = `
app:
  name: storefront
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
theme:
  request_timeout: 2s
  schedules:
    - name: holiday
      cron: "0 6 1 12 *"
      preset: holiday-season
`

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	if err := os.WriteFile(path, []byte(validConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Fatalf("environment = %q, want development", cfg.App.Environment)
	}
	if cfg.App.BaseURL != "http://localhost:8080" {
		t.Fatalf("base url = %q", cfg.App.BaseURL)
	}
	if cfg.Theme.APIBaseURL != cfg.App.BaseURL {
		t.Fatalf("theme api base url = %q, want app base url", cfg.Theme.APIBaseURL)
	}
	if cfg.Theme.StoreKey != "theme-store" {
		t.Fatalf("store key = %q", cfg.Theme.StoreKey)
	}
	if cfg.Theme.RequestTimeout != 2*time.Second {
		t.Fatalf("request timeout = %v, want 2s", cfg.Theme.RequestTimeout)
	}
	if len(cfg.Theme.Schedules) != 1 || cfg.Theme.Schedules[0].Preset != "holiday-season" {
		t.Fatalf("unexpected schedules: %+v", cfg.Theme.Schedules)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	if err := os.WriteFile(path, []byte(validConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("THEME_API_BASE_URL=http://themes.internal:9000\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("PORT", "9090")
	t.Cleanup(func() { os.Unsetenv("THEME_API_BASE_URL") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.App.Port)
	}
	if cfg.Theme.APIBaseURL != "http://themes.internal:9000" {
		t.Fatalf("theme api base url = %q", cfg.Theme.APIBaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing_name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: "app name is required"},
		{name: "bad_driver", mutate: func(c *Config) { c.Database.Driver = "turso" }, wantErr: "unsupported database driver"},
		{name: "relative_api_url", mutate: func(c *Config) { c.Theme.APIBaseURL = "/api" }, wantErr: "absolute URL"},
		{name: "bad_cron", mutate: func(c *Config) { c.Theme.Schedules[0].Cron = "every day" }, wantErr: "invalid cron expression"},
		{name: "missing_preset", mutate: func(c *Config) { c.Theme.Schedules[0].Preset = "" }, wantErr: "preset is required"},
		{name: "duplicate_schedule", mutate: func(c *Config) {
			c.Theme.Schedules = append(c.Theme.Schedules, c.Theme.Schedules[0])
		}, wantErr: "duplicate name"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := Parse([]byte(validConfig))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			cfg.applyDefaults()
			test.mutate(cfg)

			err = cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Validate() error = %v, want %q", err, test.wantErr)
			}
		})
	}
}
