package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/export/domain"
	exportdto "studylog/internal/modules/export/dto"
	exportin "studylog/internal/modules/export/port/in"
	exportout "studylog/internal/modules/export/port/out"
	statsdto "studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
	"studylog/internal/platform/clock"
	apperrors "studylog/internal/platform/errors"
)

const (
	defaultCSVBase = "study-history"
	defaultPDFBase = "study-report"
	stdoutBase     = "-"
)

type Deps struct {
	Clock     clock.Clock
	Location  *time.Location
	Stats     statsin.Usecase
	Files     exportout.FileSink
	Writer    exportout.DocumentWriter
	Inspector exportout.DocumentInspector
	Clipboard exportout.Clipboard
	Dashboard exportout.DashboardStore
	Logger    hclog.Logger
}

type Interactor struct {
	deps   Deps
	logger hclog.Logger
}

func NewInteractor(deps Deps) exportin.Usecase {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	logger := deps.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{deps: deps, logger: logger.Named("export")}
}

func (i *Interactor) rows(ctx context.Context, ownerID string) ([]domain.Row, error) {
	history, err := i.deps.Stats.History(ctx, statsdto.Query{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	rows := make([]domain.Row, 0, len(history.Sessions))
	for _, s := range history.Sessions {
		rows = append(rows, domain.Row{
			OwnerID:       s.OwnerID,
			Subject:       s.Subject,
			Date:          s.Date,
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			DurationHours: s.DurationHours,
			Notes:         s.Notes,
		})
	}
	return rows, nil
}

func (i *Interactor) CSV(ctx context.Context, input exportdto.CSVInput) (exportdto.CSVOutput, error) {
	rows, err := i.rows(ctx, input.OwnerID)
	if err != nil {
		return exportdto.CSVOutput{}, err
	}
	var buf bytes.Buffer
	if err := domain.WriteCSV(&buf, rows, input.OwnerID == "", i.deps.Location); err != nil {
		return exportdto.CSVOutput{}, err
	}
	out := exportdto.CSVOutput{Rows: len(rows), Content: buf.String()}

	base := input.Base
	if base == "" {
		base = defaultCSVBase
	}
	if base != stdoutBase {
		out.Path = domain.CSVFileName(base)
		if err := i.deps.Files.WriteFile(ctx, out.Path, buf.Bytes()); err != nil {
			return exportdto.CSVOutput{}, err
		}
	}
	if input.Copy {
		if i.deps.Clipboard == nil {
			return exportdto.CSVOutput{}, fmt.Errorf("%w: clipboard is not available", apperrors.ErrInvalidInput)
		}
		if err := i.deps.Clipboard.Copy(ctx, out.Content); err != nil {
			return exportdto.CSVOutput{}, fmt.Errorf("copy csv: %w", err)
		}
		out.Copied = true
	}
	i.logger.Info("csv exported", "owner", input.OwnerID, "rows", out.Rows, "path", out.Path, "copied", out.Copied)
	return out, nil
}

func (i *Interactor) PDF(ctx context.Context, input exportdto.PDFInput) (exportdto.PDFOutput, error) {
	if input.OwnerID == "" {
		return exportdto.PDFOutput{}, apperrors.ErrUnauthenticated
	}
	rows, err := i.rows(ctx, input.OwnerID)
	if err != nil {
		return exportdto.PDFOutput{}, err
	}
	overview, err := i.deps.Stats.Overview(ctx, statsdto.Query{OwnerID: input.OwnerID})
	if err != nil {
		return exportdto.PDFOutput{}, err
	}
	report, err := i.deps.Stats.Report(ctx, input.OwnerID)
	if err != nil {
		return exportdto.PDFOutput{}, err
	}

	now := i.deps.Clock.Now().In(i.deps.Location)
	doc := domain.Document{
		Title:      domain.DocumentTitle,
		UserName:   input.UserName,
		ExportedAt: now,
		Location:   i.deps.Location,
		Metrics: []string{
			goalLine(report.Goal),
			fmt.Sprintf("Total: %.2f hours", overview.TotalHours),
			fmt.Sprintf("Mean: %.2f h   Median: %.2f h   Mode: %.2f h", overview.Mean, overview.Median, overview.Mode),
		},
		Report: report.Lines,
		Rows:   rows,
	}
	base := input.Base
	if base == "" {
		base = defaultPDFBase
	}
	path := domain.PDFFileName(base, now)
	if err := i.deps.Writer.WritePDF(ctx, path, doc); err != nil {
		return exportdto.PDFOutput{}, err
	}
	pages, err := i.deps.Inspector.PageCount(ctx, path)
	if err != nil {
		return exportdto.PDFOutput{}, fmt.Errorf("verify %s: %w", path, err)
	}
	i.logger.Info("pdf exported", "owner", input.OwnerID, "rows", len(rows), "pages", pages, "path", path)
	return exportdto.PDFOutput{Path: path, Rows: len(rows), Pages: pages}, nil
}

func goalLine(goal statsdto.GoalStatusOutput) string {
	if !goal.HasGoal {
		return "Goal: not set"
	}
	return fmt.Sprintf("Goal: %.1f hours per %s, %.2f hours done (%d%%)", goal.GoalHours, goal.Period, goal.PeriodHours, goal.Percent)
}

func (i *Interactor) Dashboard(ctx context.Context, input exportdto.DashboardInput) (exportdto.DashboardOutput, error) {
	if input.OwnerID == "" {
		return exportdto.DashboardOutput{}, apperrors.ErrUnauthenticated
	}
	history, err := i.deps.Stats.History(ctx, statsdto.Query{OwnerID: input.OwnerID})
	if err != nil {
		return exportdto.DashboardOutput{}, err
	}
	var lines []string
	if len(history.Sessions) > 0 {
		report, err := i.deps.Stats.Report(ctx, input.OwnerID)
		if err != nil {
			return exportdto.DashboardOutput{}, err
		}
		lines = report.Lines
	}
	section := domain.DashboardSection(input.UserName, i.deps.Clock.Now().In(i.deps.Location), lines)
	path, err := i.deps.Dashboard.WriteSection(ctx, section)
	if err != nil {
		return exportdto.DashboardOutput{}, err
	}
	i.logger.Debug("dashboard updated", "owner", input.OwnerID, "path", path)
	return exportdto.DashboardOutput{Path: path, Lines: len(lines)}, nil
}
