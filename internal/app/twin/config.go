package twin

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	platformpostgres "github.com/Apurer/petstore-contract-suite/internal/platform/postgres"
)

// Config carries environment-driven settings for the twin process.
type Config struct {
	Port string
	// Postgres.DSN empty keeps the twin in memory.
	Postgres platformpostgres.Config
	// SeedDisabled starts the twin empty and makes /admin/reset clear without reseeding.
	SeedDisabled bool
	ServiceName  string
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() (Config, error) {
	pg, err := LoadPostgresConfig()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Port:         envDefault("PORT", "9090"),
		Postgres:     pg,
		SeedDisabled: isTruthy(os.Getenv("TWIN_SEED_DISABLED")),
		ServiceName:  envDefault("OTEL_SERVICE_NAME", "petstore-twin"),
	}, nil
}

// LoadPostgresConfig reads POSTGRES_DSN and the optional POSTGRES_* pool limits.
// Unset limits stay zero and take the pool defaults when the connection opens.
func LoadPostgresConfig() (platformpostgres.Config, error) {
	cfg := platformpostgres.Config{DSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN"))}
	var err error
	if cfg.MaxOpenConns, err = envInt("POSTGRES_MAX_OPEN_CONNS"); err != nil {
		return cfg, err
	}
	if cfg.MaxIdleConns, err = envInt("POSTGRES_MAX_IDLE_CONNS"); err != nil {
		return cfg, err
	}
	if cfg.ConnMaxLifetime, err = envDuration("POSTGRES_CONN_MAX_LIFETIME"); err != nil {
		return cfg, err
	}
	if cfg.PingTimeout, err = envDuration("POSTGRES_PING_TIMEOUT"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: want a non-negative integer, got %q", key, raw)
	}
	return n, nil
}

func envDuration(key string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: want a duration such as 30s, got %q", key, raw)
	}
	return d, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
