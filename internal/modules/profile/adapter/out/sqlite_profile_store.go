package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/javikin/umbral-sub003/internal/modules/profile/domain"
	profileout "github.com/javikin/umbral-sub003/internal/modules/profile/port/out"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

type SQLiteProfileStore struct {
	db *sql.DB
}

func NewSQLiteProfileStore(db *sql.DB) profileout.ProfileStore {
	return &SQLiteProfileStore{db: db}
}

func (s *SQLiteProfileStore) Save(ctx context.Context, profile domain.Profile) error {
	apps, err := json.Marshal(profile.BlockedApps)
	if err != nil {
		return fmt.Errorf("marshal blocked apps: %w", err)
	}
	const stmt = `
INSERT INTO profiles (id, name, blocked_apps, strict_mode, active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  blocked_apps=excluded.blocked_apps,
  strict_mode=excluded.strict_mode,
  updated_at=excluded.updated_at;
`
	_, err = sqlite.Conn(ctx, s.db).ExecContext(ctx, stmt,
		profile.ID,
		profile.Name,
		string(apps),
		profile.StrictMode,
		profile.Active,
		sqlite.FormatTime(profile.CreatedAt),
		sqlite.FormatTime(profile.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Update rewrites an inactive profile. The active check and the write are one
// statement, so a concurrent session start cannot slip between them.
func (s *SQLiteProfileStore) Update(ctx context.Context, profile domain.Profile) error {
	apps, err := json.Marshal(profile.BlockedApps)
	if err != nil {
		return fmt.Errorf("marshal blocked apps: %w", err)
	}
	conn := sqlite.Conn(ctx, s.db)
	res, err := conn.ExecContext(ctx, `
UPDATE profiles SET name = ?, blocked_apps = ?, strict_mode = ?, updated_at = ?
WHERE id = ? AND active = 0`,
		profile.Name,
		string(apps),
		profile.StrictMode,
		sqlite.FormatTime(profile.UpdatedAt),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return s.explainNoop(ctx, conn, res, profile.ID)
}

func (s *SQLiteProfileStore) FindByID(ctx context.Context, id string) (domain.Profile, error) {
	row := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `
SELECT id, name, blocked_apps, strict_mode, active, created_at, updated_at
FROM profiles WHERE id = ?`, id)
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("%w: %s", apperrors.ErrProfileNotFound, id)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *SQLiteProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `
SELECT id, name, blocked_apps, strict_mode, active, created_at, updated_at
FROM profiles ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	out := []domain.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return out, nil
}

func (s *SQLiteProfileStore) Delete(ctx context.Context, id string) error {
	conn := sqlite.Conn(ctx, s.db)
	res, err := conn.ExecContext(ctx, `DELETE FROM profiles WHERE id = ? AND active = 0`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.explainNoop(ctx, conn, res, id); err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM profile_credentials WHERE profile_id = ?`, id); err != nil {
		return fmt.Errorf("delete profile credential: %w", err)
	}
	return nil
}

// explainNoop maps a guarded write that touched no row to not-found or active.
func (s *SQLiteProfileStore) explainNoop(ctx context.Context, conn sqlite.Executor, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("profile rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	var active bool
	err = conn.QueryRowContext(ctx, `SELECT active FROM profiles WHERE id = ?`, id).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrProfileNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	return fmt.Errorf("%w: profile %s is active", apperrors.ErrInvalidInput, id)
}

func (s *SQLiteProfileStore) SetActive(ctx context.Context, id string) error {
	if _, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `UPDATE profiles SET active = (id = ?)`, id); err != nil {
		return fmt.Errorf("set active profile: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) DeactivateAll(ctx context.Context) error {
	if _, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `UPDATE profiles SET active = 0 WHERE active <> 0`); err != nil {
		return fmt.Errorf("deactivate profiles: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (domain.Profile, error) {
	var (
		profile            domain.Profile
		apps               string
		createdAt, updated string
	)
	if err := row.Scan(&profile.ID, &profile.Name, &apps, &profile.StrictMode, &profile.Active, &createdAt, &updated); err != nil {
		return domain.Profile{}, err
	}
	if err := json.Unmarshal([]byte(apps), &profile.BlockedApps); err != nil {
		return domain.Profile{}, fmt.Errorf("decode blocked apps: %w", err)
	}
	var err error
	if profile.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return domain.Profile{}, fmt.Errorf("parse profile created_at: %w", err)
	}
	if profile.UpdatedAt, err = sqlite.ParseTime(updated); err != nil {
		return domain.Profile{}, fmt.Errorf("parse profile updated_at: %w", err)
	}
	return profile, nil
}
