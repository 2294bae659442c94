package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App           App           `yaml:"app"`
	HTTP          HTTP          `yaml:"http"`
	Backend       Backend       `yaml:"backend"`
	Cache         Cache         `yaml:"cache"`
	StatusLog     StatusLog     `yaml:"status_log"`
	Notifications Notifications `yaml:"notifications"`
	Dashboard     Dashboard     `yaml:"dashboard"`
	Telemetry     Telemetry     `yaml:"telemetry"`
}

type App struct {
	Name     string `yaml:"name"      env:"APP_NAME"      env-default:"storefront-gateway"`
	LogLevel string `yaml:"log_level" env:"APP_LOG_LEVEL" env-default:"info"`
}

type HTTP struct {
	Port            int           `yaml:"port"             env:"HTTP_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HTTP_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HTTP_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type Backend struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"BACKEND_TIMEOUT"  env-default:"10s"`
}

// Cache holds the catalog cache settings. An empty RedisAddr selects the
// in-process cache.
type Cache struct {
	RedisAddr  string        `yaml:"redis_addr"  env:"REDIS_ADDR"`
	CatalogTTL time.Duration `yaml:"catalog_ttl" env:"CATALOG_CACHE_TTL" env-default:"5m"`
}

// StatusLog points at the sqlite file recording status update attempts.
// An empty path disables the log.
type StatusLog struct {
	Path string `yaml:"path" env:"STATUS_LOG_PATH" env-default:"storefront-status.db"`
}

type Notifications struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"NOTIFICATION_POLL_INTERVAL" env-default:"30s"`
}

type Dashboard struct {
	TopProducts  int `yaml:"top_products"  env:"DASHBOARD_TOP_PRODUCTS"  env-default:"3"`
	RecentOrders int `yaml:"recent_orders" env:"DASHBOARD_RECENT_ORDERS" env-default:"3"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled"       env:"OTEL_ENABLED"                env-default:"false"`
	OTELEndpoint string `yaml:"otel_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
}

// Load reads an optional .env file, then an optional YAML file at path, and
// finally overlays the process environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for main packages.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch {
	case c.HTTP.Port <= 0:
		return fmt.Errorf("config: HTTP_PORT must be positive, got %d", c.HTTP.Port)
	case c.Backend.Timeout <= 0:
		return fmt.Errorf("config: BACKEND_TIMEOUT must be positive, got %s", c.Backend.Timeout)
	case c.Notifications.PollInterval <= 0:
		return fmt.Errorf("config: NOTIFICATION_POLL_INTERVAL must be positive, got %s", c.Notifications.PollInterval)
	case c.Dashboard.TopProducts < 0 || c.Dashboard.RecentOrders < 0:
		return errors.New("config: dashboard sizes must not be negative")
	}
	return nil
}
