// Package database opens the Postgres handle shared by the doctor and audit
// stores and keeps the schema current.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ErrNotConfigured is returned by Health on a pool with no database behind it.
var ErrNotConfigured = errors.New("database not configured")

// Config holds database connection configuration. An empty URL disables
// Postgres and the service falls back to in-memory stores.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	// SkipMigrations leaves schema management to an external tool.
	SkipMigrations bool
}

func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}

// Pool owns the *sql.DB used by every Postgres store.
type Pool struct {
	db *sql.DB
}

// New opens the pool, verifies connectivity and applies pending migrations.
// It returns (nil, nil) when cfg.URL is empty. Connection stats are exported
// to reg as healthsphere_db_* when reg is non-nil.
func New(ctx context.Context, cfg Config, reg prometheus.Registerer) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := prepare(ctx, db, cfg); err != nil {
		_ = db.Close()
		return nil, err
	}
	if reg != nil {
		if err := reg.Register(collectors.NewDBStatsCollector(db, "healthsphere")); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("register db stats: %w", err)
		}
	}
	return &Pool{db: db}, nil
}

func prepare(ctx context.Context, db *sql.DB, cfg Config) error {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if cfg.SkipMigrations {
		return nil
	}
	return Migrate(ctx, db)
}

// FromDB wraps an existing handle, as tests do with sqlmock.
func FromDB(db *sql.DB) *Pool {
	return &Pool{db: db}
}

func (p *Pool) DB() *sql.DB {
	return p.db
}

// Health pings the database. It backs the "postgres" readiness check.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return ErrNotConfigured
	}
	return p.db.PingContext(ctx)
}

func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
