package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrStrictModeViolation = errors.New("strict mode requires a verified credential")
	ErrInsufficientEnergy  = errors.New("insufficient energy")
	ErrAlreadyCaptured     = errors.New("companion already captured")
	ErrAlreadyMaxEvolution = errors.New("companion already at max evolution")
	ErrCompanionNotFound   = errors.New("companion not found")
	ErrAlreadyDiscovered   = errors.New("location already discovered")
	ErrRequirementNotMet   = errors.New("requirement not met")
	// ErrConflict reports a write based on a row another writer already replaced.
	ErrConflict = errors.New("concurrent modification")

	// ErrAlreadyActive is the name the session engine uses for a second start.
	ErrAlreadyActive = ErrActiveSessionExists
)

// InsufficientEnergyError carries the shortfall of a rejected spend.
// It matches ErrInsufficientEnergy under errors.Is.
type InsufficientEnergyError struct {
	Required  int64
	Available int64
	Shortage  int64
}

func NewInsufficientEnergy(required, available int64) *InsufficientEnergyError {
	return &InsufficientEnergyError{Required: required, Available: available, Shortage: required - available}
}

func (e *InsufficientEnergyError) Error() string {
	return fmt.Sprintf("insufficient energy: required=%d available=%d shortage=%d", e.Required, e.Available, e.Shortage)
}

func (e *InsufficientEnergyError) Is(target error) bool {
	return target == ErrInsufficientEnergy
}

// RequirementNotMetError names the capture precondition that failed.
type RequirementNotMetError struct {
	Requirement string
	Description string
}

func (e *RequirementNotMetError) Error() string {
	return fmt.Sprintf("requirement not met: %s: %s", e.Requirement, e.Description)
}

func (e *RequirementNotMetError) Is(target error) bool {
	return target == ErrRequirementNotMet
}
