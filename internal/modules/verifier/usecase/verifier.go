package usecase

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/verifier/dto"
	verifierin "github.com/javikin/umbral-sub003/internal/modules/verifier/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/verifier/service"
)

type Interactor struct {
	svc *service.VerifierService
}

func NewInteractor(svc *service.VerifierService) verifierin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Verify(ctx context.Context, input dto.VerifyInput) (dto.VerifyOutput, error) {
	result, err := i.svc.Verify(ctx, input.ProfileID, input.Method, input.Credential)
	if err != nil {
		return dto.VerifyOutput{}, err
	}
	return dto.VerifyOutput{Verified: result.Verified, Identity: result.Identity}, nil
}

func (i *Interactor) SetCode(ctx context.Context, input dto.SetCodeInput) error {
	return i.svc.SetCode(ctx, input.ProfileID, input.Code)
}

func (i *Interactor) ClearCode(ctx context.Context, profileID string) error {
	return i.svc.ClearCode(ctx, profileID)
}

func (i *Interactor) Doctor(ctx context.Context) (dto.DoctorResult, error) {
	return i.svc.Doctor(ctx), nil
}
