package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Torn     TornConfig     `yaml:"torn"`
	Sync     SyncConfig     `yaml:"sync"`
	Report   ReportConfig   `yaml:"report"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
	Addr string `yaml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// TornConfig holds Torn API client configuration
type TornConfig struct {
	BaseURL           string        `yaml:"base_url"`
	APIKey            string        `yaml:"-"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Timeout           time.Duration `yaml:"timeout"`
}

// SyncConfig holds the cron schedules of the background refresh jobs
type SyncConfig struct {
	Enabled      bool   `yaml:"enabled"`
	LogSchedule  string `yaml:"log_schedule"`
	ItemSchedule string `yaml:"item_schedule"`
}

// ReportConfig holds report calculation defaults
type ReportConfig struct {
	WindowDays int `yaml:"window_days"`
}

// SecurityConfig holds secrets used to protect data at rest
type SecurityConfig struct {
	EncryptionKey string `yaml:"-"`
}

// Default returns the configuration used when neither a config file nor environment overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Path: "./data/trade_tracker.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Torn: TornConfig{
			BaseURL:           "https://api.torn.com",
			RequestsPerMinute: 60,
			Timeout:           15 * time.Second,
		},
		Sync: SyncConfig{
			Enabled:      true,
			LogSchedule:  "* * * * *",
			ItemSchedule: "0 3 * * *",
		},
		Report: ReportConfig{
			WindowDays: 30,
		},
	}
}

// Load reads configuration from an optional YAML file, environment variables and .env file.
// Precedence, lowest first: defaults, the YAML file named by CONFIG_FILE, environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile overlays the YAML file at path on top of the current values.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Torn.BaseURL = getEnv("TORN_BASE_URL", c.Torn.BaseURL)
	c.Torn.APIKey = getEnv("TORN_API_KEY", c.Torn.APIKey)
	c.Sync.LogSchedule = getEnv("SYNC_LOG_SCHEDULE", c.Sync.LogSchedule)
	c.Sync.ItemSchedule = getEnv("SYNC_ITEM_SCHEDULE", c.Sync.ItemSchedule)
	c.Security.EncryptionKey = getEnv("ENCRYPTION_KEY", c.Security.EncryptionKey)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = strings.Split(origins, ",")
	}

	var err error
	if c.Torn.RequestsPerMinute, err = getEnvInt("TORN_REQUESTS_PER_MINUTE", c.Torn.RequestsPerMinute); err != nil {
		return err
	}
	if c.Report.WindowDays, err = getEnvInt("REPORT_WINDOW_DAYS", c.Report.WindowDays); err != nil {
		return err
	}
	if v := os.Getenv("SYNC_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SYNC_ENABLED: %w", err)
		}
		c.Sync.Enabled = enabled
	}
	if v := os.Getenv("TORN_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TORN_TIMEOUT: %w", err)
		}
		c.Torn.Timeout = timeout
	}
	return nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Report.WindowDays <= 0 || c.Report.WindowDays > 365 {
		errs = append(errs, fmt.Errorf("report window must be between 1 and 365 days, got %d", c.Report.WindowDays))
	}
	if c.Torn.RequestsPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("torn requests per minute must be positive, got %d", c.Torn.RequestsPerMinute))
	}
	if c.Torn.BaseURL == "" {
		errs = append(errs, errors.New("torn base url is required"))
	}
	if c.Sync.Enabled && (c.Sync.LogSchedule == "" || c.Sync.ItemSchedule == "") {
		errs = append(errs, errors.New("sync schedules are required when sync is enabled"))
	}
	return errors.Join(errs...)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
