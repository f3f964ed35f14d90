package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
)

// Location is immutable once discovered, except for the lore flag.
type Location struct {
	ID           string
	BiomeID      string
	DiscoveredAt time.Time
	EnergySpent  int64
	LoreRead     bool
}

func Discover(id, biomeID string, cost int64, now time.Time) (Location, error) {
	loc := Location{
		ID:           strings.TrimSpace(id),
		BiomeID:      strings.TrimSpace(biomeID),
		DiscoveredAt: now,
		EnergySpent:  cost,
	}
	return loc, loc.Validate()
}

func (l Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: location id is required", apperrors.ErrInvalidInput)
	}
	if l.BiomeID == "" {
		return fmt.Errorf("%w: biome id is required", apperrors.ErrInvalidInput)
	}
	if l.EnergySpent < 0 {
		return fmt.Errorf("%w: discovery cost must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}
