package dto

import "time"

type CompanionOutput struct {
	ID             string
	Species        string
	SpeciesName    string
	EvolutionState int
	EnergyInvested int64
	// NextThreshold is zero at max evolution.
	NextThreshold int64
	CapturedAt    time.Time
	Active        bool
}

type InvestInput struct {
	CompanionID string
	Amount      int64
}

type InvestOutput struct {
	Companion       CompanionOutput
	CanNowEvolve    bool
	EligibleState   int
	EnergyRemaining int64
}

type EvolveOutput struct {
	Companion CompanionOutput
	// Evolved is false when the call replayed an evolution that was already committed.
	Evolved bool
}

type SpeciesOutput struct {
	ID           string
	Name         string
	MinLevel     int
	MinLocations int
	Captured     bool
}
