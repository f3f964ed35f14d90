package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	verifierout "github.com/javikin/umbral-sub003/internal/modules/verifier/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

type SQLiteCodeStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteCodeStore(db *sql.DB) verifierout.CodeStore {
	return &SQLiteCodeStore{db: db, now: time.Now}
}

func (s *SQLiteCodeStore) SaveHash(ctx context.Context, profileID, hash string) error {
	const stmt = `
INSERT INTO profile_credentials (profile_id, code_hash, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(profile_id) DO UPDATE SET
  code_hash=excluded.code_hash,
  updated_at=excluded.updated_at;
`
	if _, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, stmt, profileID, hash, sqlite.FormatTime(s.now())); err != nil {
		return fmt.Errorf("save unlock code: %w", err)
	}
	return nil
}

func (s *SQLiteCodeStore) FindHash(ctx context.Context, profileID string) (string, bool, error) {
	var hash string
	err := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT code_hash FROM profile_credentials WHERE profile_id = ?`, profileID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load unlock code: %w", err)
	}
	return hash, true, nil
}

func (s *SQLiteCodeStore) DeleteHash(ctx context.Context, profileID string) error {
	if _, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM profile_credentials WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("delete unlock code: %w", err)
	}
	return nil
}
