// Package postgres opens the GORM connection pool behind the twin's persistent repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNoDSN is returned when Open is called without a connection string.
var ErrNoDSN = errors.New("postgres DSN is empty")

// Config sizes the pool. Zero values fall back to the defaults below.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
	// SlowQuery is the duration above which a statement is logged at warn level.
	SlowQuery time.Duration
}

const (
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 30 * time.Minute
	DefaultPingTimeout     = 5 * time.Second
	DefaultSlowQuery       = 200 * time.Millisecond
)

// WithDefaults fills unset limits. MaxIdleConns never exceeds MaxOpenConns.
func (c Config) WithDefaults() Config {
	c.DSN = strings.TrimSpace(c.DSN)
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	c.MaxIdleConns = min(c.MaxIdleConns, c.MaxOpenConns)
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = DefaultPingTimeout
	}
	if c.SlowQuery <= 0 {
		c.SlowQuery = DefaultSlowQuery
	}
	return c
}

// DB is an open pool. Close releases it.
type DB struct {
	*gorm.DB
	logger *slog.Logger
}

// Open dials PostgreSQL, applies the pool limits and pings within PingTimeout.
// GORM's own statement log goes through logger at warn level and above.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	cfg = cfg.WithDefaults()
	if cfg.DSN == "" {
		return nil, ErrNoDSN
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.New(slogWriter{logger}, gormlogger.Config{
			SlowThreshold:             cfg.SlowQuery,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			LogLevel:                  gormlogger.Warn,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("postgres pool opened",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
	)
	return &DB{DB: gdb, logger: logger}, nil
}

// Close releases the pool. It is safe on a nil DB.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	if err == nil {
		db.logger.Info("postgres pool closed")
	}
	return err
}

// slogWriter feeds GORM's printf-style logger into slog.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.logger.Warn("gorm", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}
