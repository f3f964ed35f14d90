package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/verifier/dto"
	verifierin "github.com/javikin/umbral-sub003/internal/modules/verifier/port/in"
)

type CLIHandler struct {
	usecase verifierin.Usecase
}

func NewCLIHandler(usecase verifierin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SetCode(ctx context.Context, profileID, code string) error {
	return h.usecase.SetCode(ctx, dto.SetCodeInput{ProfileID: profileID, Code: code})
}

func (h CLIHandler) ClearCode(ctx context.Context, profileID string) error {
	return h.usecase.ClearCode(ctx, profileID)
}

func (h CLIHandler) Check(ctx context.Context, profileID, method, credential string) (dto.VerifyOutput, error) {
	return h.usecase.Verify(ctx, dto.VerifyInput{ProfileID: profileID, Method: method, Credential: credential})
}

func (h CLIHandler) Doctor(ctx context.Context) (dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
