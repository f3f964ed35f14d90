package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/javikin/umbral-sub003/internal/modules/achievement/domain"
	achievementout "github.com/javikin/umbral-sub003/internal/modules/achievement/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

type SQLiteAchievementStore struct {
	db *sql.DB
}

func NewSQLiteAchievementStore(db *sql.DB) achievementout.AchievementStore {
	return &SQLiteAchievementStore{db: db}
}

func (s *SQLiteAchievementStore) Get(ctx context.Context, id string) (domain.Progress, bool, error) {
	row := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `
SELECT id, category, progress, target, stars_reward, unlocked_at FROM achievements WHERE id = ?`, id)
	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Progress{}, false, nil
	}
	if err != nil {
		return domain.Progress{}, false, fmt.Errorf("get achievement: %w", err)
	}
	return p, true, nil
}

func (s *SQLiteAchievementStore) Save(ctx context.Context, p domain.Progress) error {
	var unlockedAt any
	if p.Unlocked() {
		unlockedAt = sqlite.FormatTime(p.UnlockedAt)
	}
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO achievements (id, category, progress, target, stars_reward, unlocked_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  category=excluded.category,
  progress=excluded.progress,
  target=excluded.target,
  stars_reward=excluded.stars_reward,
  unlocked_at=excluded.unlocked_at;`,
		p.ID, string(p.Category), p.Progress, p.Target, p.StarsReward, unlockedAt)
	if err != nil {
		return fmt.Errorf("upsert achievement: %w", err)
	}
	return nil
}

func (s *SQLiteAchievementStore) List(ctx context.Context) ([]domain.Progress, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `
SELECT id, category, progress, target, stars_reward, unlocked_at FROM achievements ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()
	out := []domain.Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(row scanner) (domain.Progress, error) {
	var (
		p          domain.Progress
		category   string
		unlockedAt sql.NullString
	)
	if err := row.Scan(&p.ID, &category, &p.Progress, &p.Target, &p.StarsReward, &unlockedAt); err != nil {
		return domain.Progress{}, err
	}
	p.Category = domain.Category(category)
	if unlockedAt.Valid {
		t, err := sqlite.ParseTime(unlockedAt.String)
		if err != nil {
			return domain.Progress{}, fmt.Errorf("parse unlocked_at: %w", err)
		}
		p.UnlockedAt = t
	}
	return p, nil
}
