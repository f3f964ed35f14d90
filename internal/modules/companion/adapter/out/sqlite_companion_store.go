package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/javikin/umbral-sub003/internal/modules/companion/domain"
	companionout "github.com/javikin/umbral-sub003/internal/modules/companion/port/out"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

const companionColumns = `id, species, evolution_state, energy_invested, evolved_at_invested, captured_at, active`

type SQLiteCompanionStore struct {
	db *sql.DB
}

func NewSQLiteCompanionStore(db *sql.DB) companionout.CompanionStore {
	return &SQLiteCompanionStore{db: db}
}

func (s *SQLiteCompanionStore) Insert(ctx context.Context, c domain.Companion) error {
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO companions (`+companionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Species, c.EvolutionState, c.EnergyInvested, c.EvolvedAtInvested, sqlite.FormatTime(c.CapturedAt), c.Active)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyCaptured, c.Species)
		}
		return fmt.Errorf("insert companion: %w", err)
	}
	return nil
}

// Save writes the progression fields of an existing companion in one statement.
func (s *SQLiteCompanionStore) Save(ctx context.Context, c domain.Companion) error {
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
UPDATE companions SET evolution_state = ?, energy_invested = ?, evolved_at_invested = ?
WHERE id = ?`, c.EvolutionState, c.EnergyInvested, c.EvolvedAtInvested, c.ID)
	if err != nil {
		return fmt.Errorf("update companion: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrCompanionNotFound, c.ID)
	}
	return nil
}

func (s *SQLiteCompanionStore) Get(ctx context.Context, id string) (domain.Companion, bool, error) {
	return s.findOne(ctx, `SELECT `+companionColumns+` FROM companions WHERE id = ?`, id)
}

func (s *SQLiteCompanionStore) FindBySpecies(ctx context.Context, species string) (domain.Companion, bool, error) {
	return s.findOne(ctx, `SELECT `+companionColumns+` FROM companions WHERE species = ?`, species)
}

func (s *SQLiteCompanionStore) findOne(ctx context.Context, query string, arg string) (domain.Companion, bool, error) {
	c, err := scanCompanion(sqlite.Conn(ctx, s.db).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Companion{}, false, nil
	}
	if err != nil {
		return domain.Companion{}, false, fmt.Errorf("get companion: %w", err)
	}
	return c, true, nil
}

func (s *SQLiteCompanionStore) List(ctx context.Context) ([]domain.Companion, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `SELECT `+companionColumns+` FROM companions ORDER BY captured_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list companions: %w", err)
	}
	defer rows.Close()
	out := []domain.Companion{}
	for rows.Next() {
		c, err := scanCompanion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan companion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteCompanionStore) SetActive(ctx context.Context, id string) error {
	if _, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `UPDATE companions SET active = (id = ?)`, id); err != nil {
		return fmt.Errorf("set active companion: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompanion(row scanner) (domain.Companion, error) {
	var (
		c          domain.Companion
		capturedAt string
	)
	if err := row.Scan(&c.ID, &c.Species, &c.EvolutionState, &c.EnergyInvested, &c.EvolvedAtInvested, &capturedAt, &c.Active); err != nil {
		return domain.Companion{}, err
	}
	t, err := sqlite.ParseTime(capturedAt)
	if err != nil {
		return domain.Companion{}, fmt.Errorf("parse captured_at: %w", err)
	}
	c.CapturedAt = t
	return c, nil
}
