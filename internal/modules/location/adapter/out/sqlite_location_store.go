package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/javikin/umbral-sub003/internal/modules/location/domain"
	locationout "github.com/javikin/umbral-sub003/internal/modules/location/port/out"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

type SQLiteLocationStore struct {
	db *sql.DB
}

func NewSQLiteLocationStore(db *sql.DB) locationout.LocationStore {
	return &SQLiteLocationStore{db: db}
}

func (s *SQLiteLocationStore) Insert(ctx context.Context, loc domain.Location) error {
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO locations (id, biome_id, discovered_at, energy_spent, lore_read)
VALUES (?, ?, ?, ?, ?)`,
		loc.ID, loc.BiomeID, sqlite.FormatTime(loc.DiscoveredAt), loc.EnergySpent, loc.LoreRead)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyDiscovered, loc.ID)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (s *SQLiteLocationStore) Get(ctx context.Context, id string) (domain.Location, bool, error) {
	row := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `
SELECT id, biome_id, discovered_at, energy_spent, lore_read FROM locations WHERE id = ?`, id)
	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get location: %w", err)
	}
	return loc, true, nil
}

func (s *SQLiteLocationStore) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `
SELECT id, biome_id, discovered_at, energy_spent, lore_read FROM locations ORDER BY discovered_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	out := []domain.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func (s *SQLiteLocationStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

func (s *SQLiteLocationStore) MarkLoreRead(ctx context.Context, id string) error {
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `UPDATE locations SET lore_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark lore read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: location %s", apperrors.ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(row scanner) (domain.Location, error) {
	var (
		loc          domain.Location
		discoveredAt string
	)
	if err := row.Scan(&loc.ID, &loc.BiomeID, &discoveredAt, &loc.EnergySpent, &loc.LoreRead); err != nil {
		return domain.Location{}, err
	}
	t, err := sqlite.ParseTime(discoveredAt)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse discovered_at: %w", err)
	}
	loc.DiscoveredAt = t
	return loc, nil
}
