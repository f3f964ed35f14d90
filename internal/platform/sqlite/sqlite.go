// Package sqlite opens the engine database and carries transactions through context.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Executor is satisfied by both *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// Open opens or creates the database at path and applies migrations.
// A single connection serializes writers; transactions hold it until commit.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	// Several processes share the file: wait for their write locks and take
	// ours at BEGIN so a transaction never has to upgrade a read snapshot.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Conn returns the transaction bound to ctx, or db when there is none.
func Conn(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// TxManager implements tx.Manager over a *sql.DB. Nested calls join the outer transaction.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Within(ctx context.Context, fn func(context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rerr))
			}
		}
	}()
	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			blocked_apps TEXT NOT NULL,
			strict_mode INTEGER NOT NULL,
			active INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS profile_credentials (
			profile_id TEXT PRIMARY KEY,
			code_hash TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			strict_mode INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			blocked_attempt_count INTEGER NOT NULL DEFAULT 0,
			unlock_method TEXT,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			energy_gained INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_open ON sessions((ended_at IS NULL)) WHERE ended_at IS NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE TABLE IF NOT EXISTS blocked_attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			profile_id TEXT NOT NULL,
			package_name TEXT NOT NULL,
			occurred_at TEXT NOT NULL,
			was_unlocked INTEGER NOT NULL,
			unlock_method TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_blocked_attempts_session ON blocked_attempts(session_id);`,
		`CREATE TABLE IF NOT EXISTS ledger (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			level INTEGER NOT NULL,
			current_xp INTEGER NOT NULL,
			total_energy INTEGER NOT NULL,
			available_energy INTEGER NOT NULL,
			stars INTEGER NOT NULL,
			current_streak INTEGER NOT NULL,
			longest_streak INTEGER NOT NULL,
			total_blocking_minutes INTEGER NOT NULL,
			last_active_date TEXT,
			updated_at TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 0,
			CHECK (available_energy <= total_energy)
		);`,
		`CREATE TABLE IF NOT EXISTS companions (
			id TEXT PRIMARY KEY,
			species TEXT NOT NULL UNIQUE,
			evolution_state INTEGER NOT NULL,
			energy_invested INTEGER NOT NULL,
			evolved_at_invested INTEGER NOT NULL,
			captured_at TEXT NOT NULL,
			active INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS locations (
			id TEXT PRIMARY KEY,
			biome_id TEXT NOT NULL,
			discovered_at TEXT NOT NULL,
			energy_spent INTEGER NOT NULL,
			lore_read INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			progress INTEGER NOT NULL,
			target INTEGER NOT NULL,
			stars_reward INTEGER NOT NULL,
			unlocked_at TEXT
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// TimeLayout is fixed width so stored timestamps sort lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
