// Package sqlite stores snapshot slots in a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/soundtracker/pkg/core"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultFile is the database file name used under the system directory.
const DefaultFile = "soundtracker.db"

// Config holds the configuration for the SQLite repository.
type Config struct {
	DSN      string // sqlite://path/to.db or sqlite://:memory:
	ReadOnly bool
	Logger   *slog.Logger
}

// Repository implements core.Repository on a kv table.
type Repository struct {
	config Config
	path   string

	mu     sync.Mutex
	db     *sql.DB
	writes int
}

// NewRepository validates the DSN. The database is opened by Initialize.
func NewRepository(config Config) (*Repository, error) {
	path, err := parseDSN(config.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{config: config, path: path}, nil
}

// Initialize opens the database, applies pragmas and creates the table.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db != nil {
		return nil
	}

	if r.path != ":memory:" && !r.config.ReadOnly {
		dir := filepath.Dir(strings.SplitN(r.path, "?", 2)[0])
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", r.path)
	if err != nil {
		return fmt.Errorf("opening sqlite database: %w", err)
	}
	// A :memory: database lives per connection.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA journal_mode = WAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		db.Close()
		return fmt.Errorf("create kv table: %w", err)
	}

	r.db = db
	r.config.Logger.Debug("sqlite repository ready", "path", r.path)
	return nil
}

func (r *Repository) conn() (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil, fmt.Errorf("sqlite repository not initialized")
	}
	return r.db, nil
}

// Read returns the value stored under key, or core.ErrNotFound.
func (r *Repository) Read(ctx context.Context, key string) ([]byte, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var value []byte
	err = db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

// Write upserts the value under key.
func (r *Repository) Write(ctx context.Context, key string, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.conn()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	r.mu.Lock()
	r.writes++
	r.mu.Unlock()
	return nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path     string `json:"path"`
	Open     bool   `json:"open"`
	ReadOnly bool   `json:"read_only"`
	Writes   int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RepositoryState{
		Path:     r.path,
		Open:     r.db != nil,
		ReadOnly: r.config.ReadOnly,
		Writes:   r.writes,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var (
	_ core.Repository              = (*Repository)(nil)
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
