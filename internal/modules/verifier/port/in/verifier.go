package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/verifier/dto"
)

type Usecase interface {
	Verify(ctx context.Context, input dto.VerifyInput) (dto.VerifyOutput, error)
	SetCode(ctx context.Context, input dto.SetCodeInput) error
	ClearCode(ctx context.Context, profileID string) error
	Doctor(ctx context.Context) (dto.DoctorResult, error)
}
