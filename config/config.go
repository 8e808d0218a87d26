package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	DatabaseURL       string
	HTTPAddr          string
	LogLevel          string
	ConnectRetries    int
	ConnectRetryDelay time.Duration
	AllowedOrigins    []string
}

const (
	defaultHTTPAddr          = "127.0.0.1:1430"
	defaultLogLevel          = "info"
	defaultConnectRetries    = 5
	defaultConnectRetryDelay = 2 * time.Second
)

// Load reads configuration values from environment variables, applying defaults where necessary.
// A missing DATABASE_URL is not an error; check DatabaseConfigured.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:          getEnv("HTTP_ADDR", defaultHTTPAddr),
		LogLevel:          getEnv("LOG_LEVEL", defaultLogLevel),
		ConnectRetries:    defaultConnectRetries,
		ConnectRetryDelay: defaultConnectRetryDelay,
		AllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if raw := os.Getenv("DB_CONNECT_RETRIES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, eris.Errorf("invalid DB_CONNECT_RETRIES value: %s", raw)
		}
		cfg.ConnectRetries = n
	}

	if raw := os.Getenv("DB_CONNECT_RETRY_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid DB_CONNECT_RETRY_DELAY value: %s", raw)
		}
		cfg.ConnectRetryDelay = d
	}

	return cfg, nil
}

func (c *Config) DatabaseConfigured() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
