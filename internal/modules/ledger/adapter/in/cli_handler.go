package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/ledger/dto"
	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
)

type CLIHandler struct {
	usecase ledgerin.Usecase
}

func NewCLIHandler(usecase ledgerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show() dto.LedgerOutput {
	return h.usecase.Snapshot()
}

func (h CLIHandler) Reset(ctx context.Context) (dto.LedgerOutput, error) {
	return h.usecase.Reset(ctx)
}
