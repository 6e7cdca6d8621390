// Package archive keeps an informational history of every job the watcher
// has announced and a summary row per run. Strictly best-effort: the
// pipeline runs identically with the archive disabled or broken.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	pool *sql.DB
}

func Open(path string) (*DB, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	if err := migrate(pool); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return &DB{pool: pool}, nil
}

func (d *DB) Close() error {
	if d == nil || d.pool == nil {
		return nil
	}
	return d.pool.Close()
}

func migrate(pool *sql.DB) error {
	_, err := pool.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  identity        TEXT PRIMARY KEY,
  board           TEXT NOT NULL,
  title           TEXT NOT NULL,
  department      TEXT NOT NULL,
  team            TEXT NOT NULL,
  location        TEXT NOT NULL,
  is_remote       INTEGER NOT NULL DEFAULT 0,
  employment_type TEXT NOT NULL DEFAULT '',
  published_at    TEXT NOT NULL DEFAULT '',
  job_url         TEXT NOT NULL DEFAULT '',
  apply_url       TEXT NOT NULL DEFAULT '',
  first_seen      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_first_seen ON jobs(first_seen DESC);

CREATE TABLE IF NOT EXISTS runs (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  started_at  TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  first_run   INTEGER NOT NULL DEFAULT 0,
  skipped     INTEGER NOT NULL DEFAULT 0,
  fetched     INTEGER NOT NULL DEFAULT 0,
  new_jobs    INTEGER NOT NULL DEFAULT 0,
  removed     INTEGER NOT NULL DEFAULT 0,
  notified    INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}
