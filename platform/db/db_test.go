package db

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestApplyPoolDefaultsKeepsDSNSettings(t *testing.T) {
	dsn := "postgres://u:p@localhost:5432/serveportal?pool_max_conns=7"
	c, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	applyPoolDefaults(c, dsn)

	if c.MaxConns != 7 {
		t.Fatalf("expected DSN max conns to win, got %d", c.MaxConns)
	}
	if c.MinConns != defaultMinConns || c.MaxConnLifetime != time.Hour {
		t.Fatalf("expected defaults for unset params, got min=%d lifetime=%s", c.MinConns, c.MaxConnLifetime)
	}
}
