package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransportREST   = "rest"
	TransportGRPC   = "grpc"
	TransportMemory = "memory"
)

type Config struct {
	HTTPAddr         string        `mapstructure:"HTTP_ADDR"`
	OrderTransport   string        `mapstructure:"ORDER_SERVICE_TRANSPORT"`
	OrderServiceURL  string        `mapstructure:"ORDER_SERVICE_URL"`
	OrderServiceAddr string        `mapstructure:"ORDER_SERVICE_ADDR"`
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	CatalogTTL       time.Duration `mapstructure:"CATALOG_TTL"`
	TabLogPath       string        `mapstructure:"TABLOG_PATH"`
	MutationTimeout  time.Duration `mapstructure:"MUTATION_TIMEOUT"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	ServiceName      string        `mapstructure:"OTEL_SERVICE_NAME"`
	OtelEnabled      bool          `mapstructure:"OTEL_ENABLED"`
}

var defaults = map[string]any{
	"HTTP_ADDR":               ":8080",
	"ORDER_SERVICE_TRANSPORT": TransportGRPC,
	"ORDER_SERVICE_URL":       "http://localhost:8081",
	"ORDER_SERVICE_ADDR":      "localhost:9090",
	"REDIS_ADDR":              "",
	"CATALOG_TTL":             "1m",
	"TABLOG_PATH":             "",
	"MUTATION_TIMEOUT":        "10s",
	"LOG_LEVEL":               "info",
	"OTEL_SERVICE_NAME":       "tab-gateway",
	"OTEL_ENABLED":            false,
}

// Load reads envFiles (missing files are skipped) into the environment, then
// builds the configuration from the environment and the defaults.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.OrderTransport {
	case TransportREST:
		if c.OrderServiceURL == "" {
			return errors.New("config: ORDER_SERVICE_URL is required for the rest transport")
		}
	case TransportGRPC:
		if c.OrderServiceAddr == "" {
			return errors.New("config: ORDER_SERVICE_ADDR is required for the grpc transport")
		}
	case TransportMemory:
	default:
		return fmt.Errorf("config: unknown ORDER_SERVICE_TRANSPORT %q", c.OrderTransport)
	}
	if c.MutationTimeout < 0 || c.CatalogTTL < 0 {
		return errors.New("config: durations must not be negative")
	}
	return nil
}
