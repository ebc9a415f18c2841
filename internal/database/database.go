// Package database centralises sqlx connection helpers for the pool the
// mandatory database section describes.  The driver is picked from the
// URL scheme: `mysql://` (also MariaDB and anything speaking the MySQL
// wire protocol) or `sqlite3://` for single-node deployments.
//
// Public entry points:
//
//	Open(cfg)        – pool sized from the section's pool knobs.
//	Healthy(db)      – one-row liveness probe for boot-time sanity checks.
//
// Open pings the database before returning so callers can fail fast
// during bootstrap.  Callers should Close() the returned *sqlx.DB when no
// longer needed.
package database

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yanizio/packrat/internal/config"
)

// Open returns a *sqlx.DB for the pool cfg describes, with a 30-minute
// connection lifetime.
func Open(cfg config.Database) (*sqlx.DB, error) {
	driver, dsn, err := splitURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.PoolSize + cfg.PoolMaxOverflow)
	db.SetMaxIdleConns(cfg.PoolSize)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Healthy runs a one-row probe and reports whether the pool answers.
func Healthy(db *sqlx.DB) error {
	var one int
	return db.Get(&one, `SELECT 1`)
}

// splitURL maps a database URL onto a registered driver and its DSN.
func splitURL(url string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(url, "sqlite3://"):
		return "sqlite3", strings.TrimPrefix(url, "sqlite3://"), nil
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite3", strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "mysql://"):
		return "mysql", strings.TrimPrefix(url, "mysql://"), nil
	}
	return "", "", fmt.Errorf("database: unsupported URL scheme in %q", url)
}
