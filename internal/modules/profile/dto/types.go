package dto

import "time"

type CreateInput struct {
	Name        string
	BlockedApps []string
	StrictMode  bool
}

type UpdateInput struct {
	ID          string
	Name        string
	BlockedApps []string
	StrictMode  bool
}

type ProfileOutput struct {
	ID          string
	Name        string
	BlockedApps []string
	StrictMode  bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
