package in

import (
	"context"
	"fmt"

	achievementdto "github.com/javikin/umbral-sub003/internal/modules/achievement/dto"
	achievementin "github.com/javikin/umbral-sub003/internal/modules/achievement/port/in"
	companionin "github.com/javikin/umbral-sub003/internal/modules/companion/port/in"
	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
	locationin "github.com/javikin/umbral-sub003/internal/modules/location/port/in"
	sessionin "github.com/javikin/umbral-sub003/internal/modules/session/port/in"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
)

// RewardObserver turns session rewards into achievement progress. Counts are
// read fresh on every event, so a coalesced reward loses nothing.
type RewardObserver struct {
	sessions     sessionin.Usecase
	companions   companionin.Usecase
	locations    locationin.Usecase
	ledger       ledgerin.Usecase
	achievements achievementin.Usecase
	log          *logger.Logger
}

func NewRewardObserver(
	sessions sessionin.Usecase,
	companions companionin.Usecase,
	locations locationin.Usecase,
	ledger ledgerin.Usecase,
	achievements achievementin.Usecase,
	log *logger.Logger,
) *RewardObserver {
	return &RewardObserver{
		sessions:     sessions,
		companions:   companions,
		locations:    locations,
		ledger:       ledger,
		achievements: achievements,
		log:          log,
	}
}

// Run consumes rewards until ctx is done. Sync failures are logged and the
// loop keeps going.
func (o *RewardObserver) Run(ctx context.Context) {
	sub := o.sessions.SubscribeRewards()
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case reward, ok := <-sub.C:
			if !ok {
				return
			}
			if _, err := o.Sync(ctx); err != nil {
				o.log.Warn("achievement sync failed", "session", reward.SessionID, "error", err)
			}
		}
	}
}

// Sync records the current totals of every category and returns the
// achievements unlocked by this call.
func (o *RewardObserver) Sync(ctx context.Context) ([]achievementdto.AchievementOutput, error) {
	stats, err := o.sessions.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}
	companions, err := o.companions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count companions: %w", err)
	}
	locations, err := o.locations.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count locations: %w", err)
	}
	ledger := o.ledger.Snapshot()

	totals := []achievementdto.CategoryInput{
		{Category: "sessions", Value: int64(stats.CompletedSessions)},
		{Category: "blocked_attempts", Value: int64(stats.TotalBlockedAttempts)},
		{Category: "companions", Value: int64(companions)},
		{Category: "locations", Value: int64(locations)},
		{Category: "streak", Value: int64(ledger.LongestStreak)},
		{Category: "minutes", Value: ledger.TotalBlockingMinutes},
	}
	var unlocked []achievementdto.AchievementOutput
	for _, input := range totals {
		results, err := o.achievements.RecordCategory(ctx, input)
		if err != nil {
			return unlocked, fmt.Errorf("record %s: %w", input.Category, err)
		}
		for _, r := range results {
			if r.UnlockedNow {
				unlocked = append(unlocked, r.Achievement)
			}
		}
	}
	return unlocked, nil
}
