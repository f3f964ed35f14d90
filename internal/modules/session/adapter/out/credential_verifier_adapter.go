package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	sessionout "github.com/javikin/umbral-sub003/internal/modules/session/port/out"
	verifierdto "github.com/javikin/umbral-sub003/internal/modules/verifier/dto"
	verifierin "github.com/javikin/umbral-sub003/internal/modules/verifier/port/in"
)

type CredentialVerifierAdapter struct {
	verifier verifierin.Usecase
}

func NewCredentialVerifierAdapter(verifier verifierin.Usecase) sessionout.CredentialVerifier {
	return &CredentialVerifierAdapter{verifier: verifier}
}

func (a *CredentialVerifierAdapter) Verify(ctx context.Context, profileID string, method domain.UnlockMethod, credential string) (bool, error) {
	out, err := a.verifier.Verify(ctx, verifierdto.VerifyInput{
		ProfileID:  profileID,
		Method:     string(method),
		Credential: credential,
	})
	if err != nil {
		return false, err
	}
	return out.Verified, nil
}
