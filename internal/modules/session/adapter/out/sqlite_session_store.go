package out

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	sessionout "github.com/javikin/umbral-sub003/internal/modules/session/port/out"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) sessionout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

const sessionColumns = `id, profile_id, strict_mode, started_at, ended_at, blocked_attempt_count, unlock_method, duration_minutes, energy_gained`

func (s *SQLiteSessionStore) Create(ctx context.Context, session domain.Session) error {
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO sessions (`+sessionColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, sessionArgs(session)...)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return apperrors.ErrActiveSessionExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

const sessionAssignments = `
  profile_id = ?,
  strict_mode = ?,
  started_at = ?,
  ended_at = ?,
  blocked_attempt_count = ?,
  unlock_method = ?,
  duration_minutes = ?,
  energy_gained = ?`

func (s *SQLiteSessionStore) UpdateOpen(ctx context.Context, session domain.Session) error {
	args := sessionArgs(session)
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE sessions SET`+sessionAssignments+` WHERE id = ? AND ended_at IS NULL`,
		append(args[1:], session.ID)...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return expectOneRow(res, session.ID, apperrors.ErrNoActiveSession)
}

func (s *SQLiteSessionStore) Reopen(ctx context.Context, session domain.Session) error {
	if !session.Open() {
		return fmt.Errorf("%w: reopen needs an open session", apperrors.ErrInvalidInput)
	}
	args := sessionArgs(session)
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE sessions SET`+sessionAssignments+` WHERE id = ? AND ended_at IS NOT NULL`,
		append(args[1:], session.ID)...)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return apperrors.ErrActiveSessionExists
		}
		return fmt.Errorf("reopen session: %w", err)
	}
	return expectOneRow(res, session.ID, apperrors.ErrNotFound)
}

func (s *SQLiteSessionStore) RecordEnergy(ctx context.Context, sessionID string, energy int64) error {
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE sessions SET energy_gained = ? WHERE id = ? AND ended_at IS NOT NULL`, energy, sessionID)
	if err != nil {
		return fmt.Errorf("record session energy: %w", err)
	}
	return expectOneRow(res, sessionID, apperrors.ErrNotFound)
}

func expectOneRow(res sql.Result, sessionID string, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("session rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: session %s", sentinel, sessionID)
	}
	return nil
}

func (s *SQLiteSessionStore) FindOpen(ctx context.Context) (domain.Session, bool, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE ended_at IS NULL LIMIT 1`)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("find open session: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.Session{}, false, rows.Err()
	}
	session, err := scanSession(rows)
	if err != nil {
		return domain.Session{}, false, err
	}
	return session, true, nil
}

func (s *SQLiteSessionStore) AppendAttempt(ctx context.Context, attempt domain.BlockedAttempt) error {
	var method any
	if attempt.UnlockMethod != "" {
		method = string(attempt.UnlockMethod)
	}
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO blocked_attempts (session_id, profile_id, package_name, occurred_at, was_unlocked, unlock_method)
VALUES (?, ?, ?, ?, ?, ?)`,
		attempt.SessionID,
		attempt.ProfileID,
		attempt.PackageName,
		sqlite.FormatTime(attempt.OccurredAt),
		attempt.WasUnlocked,
		method,
	)
	if err != nil {
		return fmt.Errorf("insert blocked attempt: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Stats(ctx context.Context) (domain.Stats, error) {
	conn := sqlite.Conn(ctx, s.db)
	var stats domain.Stats
	err := conn.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(duration_minutes), 0)
FROM sessions WHERE ended_at IS NOT NULL`).Scan(&stats.CompletedSessions, &stats.TotalMinutes)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("session stats: %w", err)
	}
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocked_attempts`).Scan(&stats.TotalBlockedAttempts); err != nil {
		return domain.Stats{}, fmt.Errorf("attempt stats: %w", err)
	}
	return stats, nil
}

func (s *SQLiteSessionStore) History(ctx context.Context, limit int) ([]domain.Session, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `
SELECT `+sessionColumns+` FROM sessions
WHERE ended_at IS NOT NULL
ORDER BY ended_at DESC, id ASC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	out := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func sessionArgs(session domain.Session) []any {
	var endedAt, method any
	if !session.Open() {
		endedAt = sqlite.FormatTime(session.EndedAt)
	}
	if session.UnlockMethod != "" {
		method = string(session.UnlockMethod)
	}
	return []any{
		session.ID,
		session.ProfileID,
		session.StrictMode,
		sqlite.FormatTime(session.StartedAt),
		endedAt,
		session.BlockedAttemptCount,
		method,
		session.DurationMinutes,
		session.EnergyGained,
	}
}

func scanSession(rows *sql.Rows) (domain.Session, error) {
	var (
		session   domain.Session
		startedAt string
		endedAt   sql.NullString
		method    sql.NullString
	)
	err := rows.Scan(
		&session.ID,
		&session.ProfileID,
		&session.StrictMode,
		&startedAt,
		&endedAt,
		&session.BlockedAttemptCount,
		&method,
		&session.DurationMinutes,
		&session.EnergyGained,
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	session.StartedAt, err = sqlite.ParseTime(startedAt)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse started_at: %w", err)
	}
	if endedAt.Valid {
		session.EndedAt, err = sqlite.ParseTime(endedAt.String)
		if err != nil {
			return domain.Session{}, fmt.Errorf("parse ended_at: %w", err)
		}
	}
	if method.Valid {
		session.UnlockMethod = domain.UnlockMethod(method.String)
	}
	return session, nil
}
