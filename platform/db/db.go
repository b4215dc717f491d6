// Package db opens the Postgres pool, runs migrations and connects Redis.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"serveportal_backend/platform/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pool defaults, applied unless the DSN sets pool_* parameters itself
const (
	defaultMaxConns          = 25
	defaultMinConns          = 5
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = 30 * time.Minute
	defaultHealthCheckPeriod = time.Minute
)

// NewPool connects and pings the database.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	dsn := cfg.GetDatabaseURL()
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	applyPoolDefaults(poolConfig, dsn)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func applyPoolDefaults(c *pgxpool.Config, dsn string) {
	set := func(param string) bool { return strings.Contains(dsn, param+"=") }
	if !set("pool_max_conns") {
		c.MaxConns = defaultMaxConns
	}
	if !set("pool_min_conns") {
		c.MinConns = defaultMinConns
	}
	if !set("pool_max_conn_lifetime") {
		c.MaxConnLifetime = defaultMaxConnLifetime
	}
	if !set("pool_max_conn_idle_time") {
		c.MaxConnIdleTime = defaultMaxConnIdleTime
	}
	if !set("pool_health_check_period") {
		c.HealthCheckPeriod = defaultHealthCheckPeriod
	}
}

// WithTx runs fn in a transaction that commits when fn returns nil.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, pool, fn)
}
