package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/achievement/domain"
)

type AchievementStore interface {
	Get(ctx context.Context, id string) (domain.Progress, bool, error)
	Save(ctx context.Context, progress domain.Progress) error
	List(ctx context.Context) ([]domain.Progress, error)
}

type StarCreditor interface {
	CreditStars(ctx context.Context, amount int64) error
}
