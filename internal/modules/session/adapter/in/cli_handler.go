package in

import (
	"context"

	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, input sessiondto.LogInput) (sessiondto.LogOutput, error) {
	return h.usecase.Log(ctx, input)
}

func (h CLIHandler) List(ctx context.Context, ownerID string) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx, ownerID)
}

func (h CLIHandler) ListAll(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListAll(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, ownerID string, ids []string) (sessiondto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, ownerID, ids...)
}

func (h CLIHandler) Subjects(ctx context.Context, ownerID string) ([]string, error) {
	return h.usecase.Subjects(ctx, ownerID)
}

func (h CLIHandler) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
