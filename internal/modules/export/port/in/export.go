package in

import (
	"context"

	"studylog/internal/modules/export/dto"
)

type Usecase interface {
	CSV(ctx context.Context, input dto.CSVInput) (dto.CSVOutput, error)
	PDF(ctx context.Context, input dto.PDFInput) (dto.PDFOutput, error)
	Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error)
}
