package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is loaded once at startup. Precedence, lowest first: defaults, the
// YAML file named by CONFIG_FILE, .env, process environment.
type Config struct {
	DatabaseURL       string `yaml:"database_url"`
	JWTSecret         string `yaml:"jwt_secret"`
	Port              string `yaml:"port"`
	Timezone          string `yaml:"timezone"`
	AllowedOrigins    string `yaml:"allowed_origins"`
	RedisURL          string `yaml:"redis_url"`
	FCMServiceAccount string `yaml:"fcm_service_account"`

	LogLevel      string `yaml:"log_level"`
	LogPath       string `yaml:"log_path"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`

	// PushRatePerMinute caps push requests per user per minute at the HTTP layer.
	PushRatePerMinute int `yaml:"push_rate_per_minute"`
	// CheckInHistoryLimit is how many past check-ins feed the streak calculation.
	CheckInHistoryLimit int `yaml:"checkin_history_limit"`
	// MaxPushesPerDay is the outbound push allowance per user per day.
	MaxPushesPerDay int `yaml:"max_pushes_per_day"`
}

func defaults() *Config {
	return &Config{
		DatabaseURL:         "consist.db",
		JWTSecret:           "your-secret-key-change-in-production",
		Port:                "8080",
		Timezone:            "UTC",
		AllowedOrigins:      "*",
		LogLevel:            "info",
		LogMaxSizeMB:        100,
		LogMaxBackups:       3,
		LogMaxAgeDays:       7,
		PushRatePerMinute:   30,
		CheckInHistoryLimit: 365,
		MaxPushesPerDay:     3,
	}
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.AllowedOrigins = getEnv("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.FCMServiceAccount = getEnv("FCM_SERVICE_ACCOUNT", cfg.FCMServiceAccount)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogPath = getEnv("LOG_PATH", cfg.LogPath)
	cfg.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", cfg.LogMaxSizeMB)
	cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", cfg.LogMaxBackups)
	cfg.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", cfg.LogMaxAgeDays)
	cfg.PushRatePerMinute = getEnvInt("PUSH_RATE_PER_MINUTE", cfg.PushRatePerMinute)
	cfg.CheckInHistoryLimit = getEnvInt("CHECKIN_HISTORY_LIMIT", cfg.CheckInHistoryLimit)
	cfg.MaxPushesPerDay = getEnvInt("MAX_PUSHES_PER_DAY", cfg.MaxPushesPerDay)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: TIMEZONE: %w", err)
	}
	if c.CheckInHistoryLimit < 1 {
		return fmt.Errorf("config: CHECKIN_HISTORY_LIMIT must be at least 1")
	}
	if c.MaxPushesPerDay < 1 || c.PushRatePerMinute < 1 {
		return fmt.Errorf("config: push limits must be positive")
	}
	return nil
}

// Location is the zone that decides where one calendar day ends.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
