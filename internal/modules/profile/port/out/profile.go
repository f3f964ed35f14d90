package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/profile/domain"
)

type ProfileStore interface {
	Save(ctx context.Context, profile domain.Profile) error
	// Update and Delete refuse the active profile with apperrors.ErrInvalidInput.
	Update(ctx context.Context, profile domain.Profile) error
	FindByID(ctx context.Context, id string) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Delete(ctx context.Context, id string) error
	// SetActive marks id active and every other profile inactive in one statement.
	SetActive(ctx context.Context, id string) error
	DeactivateAll(ctx context.Context) error
}
