package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "configs/config.yaml"
	PathEnv     = "HOTEL_CONFIG_PATH"

	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server struct {
		Port                   int `yaml:"port"`
		ReadTimeoutSeconds     int `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds    int `yaml:"write_timeout_seconds"`
		IdleTimeoutSeconds     int `yaml:"idle_timeout_seconds"`
		ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"`
		Host         string `yaml:"host"`
		Port         string `yaml:"port"`
		User         string `yaml:"user"`
		Password     string `yaml:"password"`
		Name         string `yaml:"name"`
		SSLMode      string `yaml:"ssl_mode"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		Migrate      bool   `yaml:"migrate"`
	} `yaml:"database"`

	Redis struct {
		Address             string `yaml:"address"`
		Password            string `yaml:"password"`
		DB                  int    `yaml:"db"`
		RoomCacheTTLSeconds int    `yaml:"room_cache_ttl_seconds"`
	} `yaml:"redis"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
	} `yaml:"monitoring"`

	Reconciler struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"reconciler"`

	Broadcast struct {
		SubscriberBuffer int `yaml:"subscriber_buffer"`
	} `yaml:"broadcast"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		IdleTTLSeconds    int     `yaml:"idle_ttl_seconds"`
		MaxKeys           int     `yaml:"max_keys"`
	} `yaml:"rate_limit"`

	Rooms []RoomSeed `yaml:"rooms"`
}

// RoomSeed is a room loaded into the in-memory store at startup. It accepts
// the legacy price fields.
type RoomSeed struct {
	RoomNumber   string   `yaml:"room_number"`
	Type         string   `yaml:"type"`
	BasePrice    *float64 `yaml:"base_price"`
	CurrentPrice *float64 `yaml:"current_price"`
	Price        *float64 `yaml:"price"`
	Status       string   `yaml:"status"`
	Description  string   `yaml:"description"`
}

// Load reads .env (if present), then the YAML file at path with ${ENV}
// placeholders expanded, then applies env overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		return errors.New("rate_limit.requests_per_second must not be negative")
	}

	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")

	if host := os.Getenv("REDIS_HOST"); host != "" {
		port := os.Getenv("REDIS_PORT")
		if port == "" {
			port = "6379"
		}
		c.Redis.Address = host + ":" + port
	}
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	setString(&c.Log.Level, "LOG_LEVEL")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = 5
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = 10
	}
	if c.Server.IdleTimeoutSeconds <= 0 {
		c.Server.IdleTimeoutSeconds = 120
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = 5
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Database.User == "" {
		c.Database.User = "postgres"
	}
	if c.Database.Name == "" {
		c.Database.Name = "hotel_booking"
	}

	if c.Redis.RoomCacheTTLSeconds <= 0 {
		c.Redis.RoomCacheTTLSeconds = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Reconciler.IntervalSeconds <= 0 {
		c.Reconciler.IntervalSeconds = 60
	}
	if c.Broadcast.SubscriberBuffer <= 0 {
		c.Broadcast.SubscriberBuffer = 16
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 5
	}
	if c.RateLimit.IdleTTLSeconds <= 0 {
		c.RateLimit.IdleTTLSeconds = 600
	}
	if c.RateLimit.MaxKeys <= 0 {
		c.RateLimit.MaxKeys = 10000
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) RoomCacheTTL() time.Duration {
	return seconds(c.Redis.RoomCacheTTLSeconds)
}

func (c *Config) ReconcileInterval() time.Duration {
	return seconds(c.Reconciler.IntervalSeconds)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return seconds(c.Server.ShutdownTimeoutSeconds)
}

func (c *Config) RateLimiterIdleTTL() time.Duration {
	return seconds(c.RateLimit.IdleTTLSeconds)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (c *Config) ReadTimeout() time.Duration {
	return seconds(c.Server.ReadTimeoutSeconds)
}

func (c *Config) WriteTimeout() time.Duration {
	return seconds(c.Server.WriteTimeoutSeconds)
}

func (c *Config) IdleTimeout() time.Duration {
	return seconds(c.Server.IdleTimeoutSeconds)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
