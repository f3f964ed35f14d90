package domain

import (
	"fmt"
	"time"

	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
)

const MaxEvolutionState = 3

type Companion struct {
	ID             string
	Species        string
	EvolutionState int
	EnergyInvested int64
	// EvolvedAtInvested is EnergyInvested at the last committed evolution.
	EvolvedAtInvested int64
	CapturedAt        time.Time
	Active            bool
}

// Thresholds holds the cumulative investment needed for state 2 and state 3.
type Thresholds struct {
	Second int64
	Third  int64
}

func NewThresholds(values []int64) (Thresholds, error) {
	if len(values) != 2 || values[0] <= 0 || values[1] <= values[0] {
		return Thresholds{}, fmt.Errorf("evolution thresholds must be two increasing positive values")
	}
	return Thresholds{Second: values[0], Third: values[1]}, nil
}

func (t Thresholds) EligibleState(invested int64) int {
	switch {
	case invested >= t.Third:
		return 3
	case invested >= t.Second:
		return 2
	default:
		return 1
	}
}

// Next returns the investment needed to leave state, or false at max evolution.
func (t Thresholds) Next(state int) (int64, bool) {
	switch state {
	case 1:
		return t.Second, true
	case 2:
		return t.Third, true
	default:
		return 0, false
	}
}

func New(id, species string, now time.Time) Companion {
	return Companion{ID: id, Species: species, EvolutionState: 1, CapturedAt: now}
}

type InvestResult struct {
	// CanNowEvolve is true when this investment crossed the next unattained threshold.
	CanNowEvolve  bool
	EligibleState int
}

// Invest adds amount to the companion and raises EvolutionState to the
// highest tier the new total reaches. The state never decreases.
func (c Companion) Invest(amount int64, t Thresholds) (Companion, InvestResult, error) {
	if c.EvolutionState >= MaxEvolutionState {
		return c, InvestResult{}, apperrors.ErrAlreadyMaxEvolution
	}
	if amount <= 0 {
		return c, InvestResult{}, fmt.Errorf("%w: invest amount must be positive", apperrors.ErrInvalidInput)
	}
	c.EnergyInvested += amount
	eligible := max(t.EligibleState(c.EnergyInvested), c.EvolutionState)
	crossed := eligible > c.EvolutionState
	if crossed {
		c.EvolutionState = eligible
		c.EvolvedAtInvested = c.EnergyInvested
	}
	return c, InvestResult{CanNowEvolve: crossed, EligibleState: eligible}, nil
}

// Evolve confirms the tier reached by the latest investment. Confirming
// again without further investment succeeds without change; a row whose
// state lags its investment is brought up to date.
func (c Companion) Evolve(t Thresholds) (Companion, bool, error) {
	eligible := t.EligibleState(c.EnergyInvested)
	if eligible > c.EvolutionState {
		c.EvolutionState = eligible
		c.EvolvedAtInvested = c.EnergyInvested
		return c, true, nil
	}
	if c.EvolutionState > 1 && c.EvolvedAtInvested == c.EnergyInvested {
		return c, false, nil
	}
	next, ok := t.Next(c.EvolutionState)
	if !ok {
		return c, false, apperrors.ErrAlreadyMaxEvolution
	}
	return c, false, apperrors.NewInsufficientEnergy(next, c.EnergyInvested)
}

type Species struct {
	ID           string
	Name         string
	MinLevel     int
	MinLocations int
}

type Catalog []Species

func (c Catalog) Find(id string) (Species, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Species{}, false
}

func (s Species) CheckRequirements(level, locations int) error {
	if level < s.MinLevel {
		return &apperrors.RequirementNotMetError{
			Requirement: "level",
			Description: fmt.Sprintf("%s needs player level %d (current %d)", s.Name, s.MinLevel, level),
		}
	}
	if locations < s.MinLocations {
		return &apperrors.RequirementNotMetError{
			Requirement: "locations",
			Description: fmt.Sprintf("%s needs %d discovered locations (current %d)", s.Name, s.MinLocations, locations),
		}
	}
	return nil
}
