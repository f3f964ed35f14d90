package in

import (
	"context"

	sessiondto "github.com/javikin/umbral-sub003/internal/modules/session/dto"
	sessionin "github.com/javikin/umbral-sub003/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, profileID string) (sessiondto.StateOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{ProfileID: profileID})
}

func (h CLIHandler) Stop(ctx context.Context, method, credential string) (sessiondto.RewardEvent, error) {
	return h.usecase.Stop(ctx, sessiondto.StopInput{UnlockMethod: method, Credential: credential})
}

func (h CLIHandler) Timeout(ctx context.Context) (sessiondto.RewardEvent, error) {
	return h.usecase.ForceTimeoutStop(ctx)
}

func (h CLIHandler) Attempt(ctx context.Context, packageName string) (sessiondto.StateOutput, error) {
	return h.usecase.RecordAttempt(ctx, sessiondto.AttemptInput{PackageName: packageName})
}

func (h CLIHandler) Status() sessiondto.StateOutput {
	return h.usecase.State()
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	return h.usecase.History(ctx, limit)
}
