package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Trend      TrendConfig      `yaml:"trend"`
	Nearby     NearbyConfig     `yaml:"nearby"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	EnableTimescale        bool   `yaml:"enable_timescale"`
}

// TrendConfig controls the background trend rebuild.
type TrendConfig struct {
	Enabled              bool          `yaml:"enabled"`
	RebuildIntervalHours int           `yaml:"rebuild_interval_hours"`
	RebuildInterval      time.Duration `yaml:"-"` // Ignored by YAML parser
	HistoryDays          int           `yaml:"history_days"`
	DefaultTimezone      string        `yaml:"default_timezone"`
}

// NearbyConfig holds the defaults for the nearby-gyms endpoint.
type NearbyConfig struct {
	RadiusKm   float64 `yaml:"radius_km"`
	MaxResults int     `yaml:"max_results"`
}

// AlertsConfig controls the quiet-gym alert watcher.
type AlertsConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
	QuietThreshold  float64       `yaml:"quiet_threshold"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Trend.RebuildIntervalHours <= 0 {
		cfg.Trend.RebuildIntervalHours = 24
	}
	cfg.Trend.RebuildInterval = time.Duration(cfg.Trend.RebuildIntervalHours) * time.Hour
	if cfg.Trend.HistoryDays <= 0 {
		cfg.Trend.HistoryDays = 90
	}
	if cfg.Trend.DefaultTimezone == "" {
		cfg.Trend.DefaultTimezone = "Australia/Perth"
	}

	if cfg.Nearby.RadiusKm <= 0 {
		cfg.Nearby.RadiusKm = 10
	}
	if cfg.Nearby.MaxResults <= 0 {
		cfg.Nearby.MaxResults = 5
	}

	if cfg.Alerts.IntervalSeconds <= 0 {
		cfg.Alerts.IntervalSeconds = 300
	}
	cfg.Alerts.Interval = time.Duration(cfg.Alerts.IntervalSeconds) * time.Second
	if cfg.Alerts.QuietThreshold <= 0 {
		cfg.Alerts.QuietThreshold = 30
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
