package in

import (
	"context"

	exportdto "studylog/internal/modules/export/dto"
	exportin "studylog/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) CSV(ctx context.Context, input exportdto.CSVInput) (exportdto.CSVOutput, error) {
	return h.usecase.CSV(ctx, input)
}

func (h CLIHandler) PDF(ctx context.Context, input exportdto.PDFInput) (exportdto.PDFOutput, error) {
	return h.usecase.PDF(ctx, input)
}

func (h CLIHandler) Dashboard(ctx context.Context, input exportdto.DashboardInput) (exportdto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx, input)
}
