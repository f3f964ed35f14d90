package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/javikin/umbral-sub003/internal/modules/ledger/domain"
	ledgerout "github.com/javikin/umbral-sub003/internal/modules/ledger/port/out"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteLedgerStore struct {
	db *sql.DB
}

func NewSQLiteLedgerStore(db *sql.DB) ledgerout.LedgerStore {
	return &SQLiteLedgerStore{db: db}
}

func (s *SQLiteLedgerStore) Load(ctx context.Context) (domain.Ledger, bool, error) {
	var (
		l         domain.Ledger
		lastDay   sql.NullString
		updatedAt string
	)
	err := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `
SELECT level, current_xp, total_energy, available_energy, stars, current_streak, longest_streak,
       total_blocking_minutes, last_active_date, updated_at, version
FROM ledger WHERE id = 1`).Scan(
		&l.Level, &l.CurrentXP, &l.TotalEnergy, &l.AvailableEnergy, &l.Stars,
		&l.CurrentStreak, &l.LongestStreak, &l.TotalBlockingMinutes, &lastDay, &updatedAt, &l.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ledger{}, false, nil
	}
	if err != nil {
		return domain.Ledger{}, false, fmt.Errorf("load ledger: %w", err)
	}
	if lastDay.Valid {
		day, err := time.Parse(dateLayout, lastDay.String)
		if err != nil {
			return domain.Ledger{}, false, fmt.Errorf("parse last active date: %w", err)
		}
		l.LastActiveDate = day
	}
	l.UpdatedAt, err = sqlite.ParseTime(updatedAt)
	if err != nil {
		return domain.Ledger{}, false, fmt.Errorf("parse ledger updated_at: %w", err)
	}
	return l, true, nil
}

func (s *SQLiteLedgerStore) Save(ctx context.Context, l domain.Ledger) error {
	if l.Version < 1 {
		return fmt.Errorf("save ledger: version %d: %w", l.Version, apperrors.ErrInvalidInput)
	}
	var lastDay any
	if !l.LastActiveDate.IsZero() {
		lastDay = l.LastActiveDate.Format(dateLayout)
	}
	args := []any{
		l.Level, l.CurrentXP, l.TotalEnergy, l.AvailableEnergy, l.Stars,
		l.CurrentStreak, l.LongestStreak, l.TotalBlockingMinutes,
		lastDay, sqlite.FormatTime(l.UpdatedAt), l.Version,
	}
	conn := sqlite.Conn(ctx, s.db)
	var (
		res sql.Result
		err error
	)
	if l.Version == 1 {
		res, err = conn.ExecContext(ctx, `
INSERT INTO ledger (level, current_xp, total_energy, available_energy, stars, current_streak,
                    longest_streak, total_blocking_minutes, last_active_date, updated_at, version, id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
ON CONFLICT(id) DO NOTHING`, args...)
	} else {
		res, err = conn.ExecContext(ctx, `
UPDATE ledger SET
  level = ?,
  current_xp = ?,
  total_energy = ?,
  available_energy = ?,
  stars = ?,
  current_streak = ?,
  longest_streak = ?,
  total_blocking_minutes = ?,
  last_active_date = ?,
  updated_at = ?,
  version = ?
WHERE id = 1 AND version = ?`, append(args, l.Version-1)...)
	}
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save ledger revision %d: %w", l.Version, apperrors.ErrConflict)
	}
	return nil
}
