// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultStoreKey          = "theme-store"
	defaultRequestTimeout    = 5 * time.Second
	defaultShutdownTimeout   = 30 * time.Second
	defaultSavesPerHourPerIP = 30
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// ScheduleConfig activates a preset whenever Cron fires.
type ScheduleConfig struct {
	Name   string `yaml:"name"`
	Cron   string `yaml:"cron"`
	Preset string `yaml:"preset"`
}

type ThemeConfig struct {
	// StoreKey is the key the theme store snapshot is persisted under.
	StoreKey string `yaml:"store_key"`
	// APIBaseURL is where /api/themes lives. Defaults to the app's own base URL.
	APIBaseURL        string           `yaml:"api_base_url"`
	RequestTimeout    time.Duration    `yaml:"request_timeout"`
	SavesPerHourPerIP int              `yaml:"saves_per_hour_per_ip"`
	Schedules         []ScheduleConfig `yaml:"schedules"`
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		BaseURL         string        `yaml:"base_url"`
		StaticDir       string        `yaml:"static_dir"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		// TrustProxy takes the client IP from X-Forwarded-For and X-Real-IP.
		TrustProxy bool `yaml:"trust_proxy"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Theme ThemeConfig `yaml:"theme"`

	Features struct {
		EnableDebug bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML without touching the environment or applying defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("PORT must be an integer: %w", err)
		}
		c.App.Port = port
	}
	if value, ok := os.LookupEnv("ENVIRONMENT"); ok {
		c.App.Environment = value
	}
	if value, ok := os.LookupEnv("THEME_API_BASE_URL"); ok {
		c.Theme.APIBaseURL = value
	}
	if value, ok := os.LookupEnv("STATIC_DIR"); ok {
		c.App.StaticDir = value
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.BaseURL == "" && c.App.Port != 0 {
		c.App.BaseURL = fmt.Sprintf("http://localhost:%d", c.App.Port)
	}
	if c.App.StaticDir == "" {
		c.App.StaticDir = "build/bin/static"
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Theme.StoreKey == "" {
		c.Theme.StoreKey = defaultStoreKey
	}
	if c.Theme.APIBaseURL == "" {
		c.Theme.APIBaseURL = c.App.BaseURL
	}
	if c.Theme.RequestTimeout == 0 {
		c.Theme.RequestTimeout = defaultRequestTimeout
	}
	if c.Theme.SavesPerHourPerIP == 0 {
		c.Theme.SavesPerHourPerIP = defaultSavesPerHourPerIP
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Theme.APIBaseURL != "" {
		parsed, err := url.Parse(c.Theme.APIBaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("theme api_base_url must be an absolute URL")
		}
	}
	if c.Theme.RequestTimeout < 0 {
		return fmt.Errorf("theme request_timeout must not be negative")
	}
	if c.Theme.SavesPerHourPerIP < 0 {
		return fmt.Errorf("theme saves_per_hour_per_ip must not be negative")
	}

	names := make(map[string]struct{}, len(c.Theme.Schedules))
	for i, schedule := range c.Theme.Schedules {
		if schedule.Name == "" {
			return fmt.Errorf("theme schedule %d: name is required", i+1)
		}
		if _, ok := names[schedule.Name]; ok {
			return fmt.Errorf("theme schedule %q: duplicate name", schedule.Name)
		}
		names[schedule.Name] = struct{}{}
		if schedule.Preset == "" {
			return fmt.Errorf("theme schedule %q: preset is required", schedule.Name)
		}
		if _, err := cron.ParseStandard(schedule.Cron); err != nil {
			return fmt.Errorf("theme schedule %q: invalid cron expression: %w", schedule.Name, err)
		}
	}

	return nil
}
