package dto

import "time"

type ProgressInput struct {
	AchievementID string
	Value         int64
}

type CategoryInput struct {
	Category string
	Value    int64
}

type AchievementOutput struct {
	ID          string
	Title       string
	Category    string
	Progress    int64
	Target      int64
	StarsReward int64
	Unlocked    bool
	UnlockedAt  time.Time
}

type RecordOutput struct {
	Achievement AchievementOutput
	// UnlockedNow is true only for the call that unlocked the achievement and paid its stars.
	UnlockedNow bool
}
