package dto

import "time"

type DiscoverInput struct {
	LocationID string
	BiomeID    string
	CostEnergy int64
}

type LocationOutput struct {
	ID           string
	BiomeID      string
	DiscoveredAt time.Time
	EnergySpent  int64
	LoreRead     bool
}

type DiscoverOutput struct {
	Location        LocationOutput
	EnergyRemaining int64
}
