package usecase

import (
	"fmt"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	"github.com/javikin/umbral-sub003/internal/modules/session/dto"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
)

func parseMethod(raw string) (domain.UnlockMethod, error) {
	method, err := domain.ParseUnlockMethod(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return method, nil
}

func toStateOutput(s domain.State) dto.StateOutput {
	return dto.StateOutput{
		Status:    string(s.Status),
		SessionID: s.SessionID,
		ProfileID: s.ProfileID,
		StartedAt: s.StartedAt,
		Strict:    s.Strict,
		Attempts:  s.Attempts,
	}
}

func toRewardEvent(r domain.Reward) dto.RewardEvent {
	return dto.RewardEvent{
		SessionID:       r.SessionID,
		ProfileID:       r.ProfileID,
		DurationMinutes: r.DurationMinutes,
		AttemptsBlocked: r.AttemptsBlocked,
		UnlockMethod:    string(r.UnlockMethod),
		EndedAt:         r.EndedAt,
		BaseEnergy:      r.Energy.BaseEnergy,
		Multiplier:      r.Energy.Multiplier,
		EnergyGained:    r.Energy.TotalEnergy,
		XPGained:        r.Energy.XPGained,
		NewLevel:        r.Energy.NewLevel,
		NewStreak:       r.Energy.NewStreak,
		AvailableEnergy: r.Energy.AvailableEnergy,
	}
}
