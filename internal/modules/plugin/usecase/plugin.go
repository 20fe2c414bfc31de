package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"studylog/internal/modules/plugin/domain"
	"studylog/internal/modules/plugin/dto"
	pluginin "studylog/internal/modules/plugin/port/in"
	"studylog/internal/modules/plugin/service"
	statsdto "studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
	apperrors "studylog/internal/platform/errors"
)

type Interactor struct {
	svc       *service.PluginService
	stats     statsin.Usecase
	vaultPath string
}

func NewInteractor(svc *service.PluginService, stats statsin.Usecase, vaultPath string) pluginin.Usecase {
	return &Interactor{svc: svc, stats: stats, vaultPath: vaultPath}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	diagnoses, err := i.svc.Doctor(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoctorResult, 0, len(diagnoses))
	for _, d := range diagnoses {
		result := dto.DoctorResult{
			Name:            d.Manifest.Name,
			BinaryReachable: d.BinaryReachable,
			ChecksumValid:   d.ChecksumValid,
			LifecycleOK:     d.LifecycleOK,
		}
		if d.Err != nil {
			result.Error = d.Err.Error()
		}
		out = append(out, result)
	}
	return out, nil
}

func (i *Interactor) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	commands, err := i.svc.ListCommands(ctx, pluginName)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommandInfo, 0, len(commands))
	for _, c := range commands {
		out = append(out, dto.CommandInfo{ID: c.ID, Title: c.Title, Description: c.Description, Kind: string(c.Kind), TimeoutMS: c.TimeoutMS})
	}
	return out, nil
}

func (i *Interactor) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	manifest, command, err := i.svc.Command(ctx, input.PluginName, input.CommandID)
	if err != nil {
		return dto.RunOutput{}, err
	}
	payload := input.InputJSON
	if command.Kind == domain.CapabilityReport {
		if payload, err = i.statsInput(ctx, input.OwnerID, input.Period); err != nil {
			return dto.RunOutput{}, err
		}
	}
	result, err := i.svc.Run(ctx, manifest, command, domain.RunRequest{
		InputJSON: payload,
		Context:   domain.RunContext{VaultPath: i.vaultPath, OwnerID: input.OwnerID, Period: input.Period},
	})
	if err != nil {
		return dto.RunOutput{}, err
	}
	return dto.RunOutput{
		PluginName: manifest.Name,
		CommandID:  command.ID,
		Kind:       string(command.Kind),
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		OutputJSON: result.OutputJSON,
		ExitCode:   result.ExitCode,
	}, nil
}

func (i *Interactor) statsInput(ctx context.Context, ownerID, period string) (string, error) {
	if ownerID == "" {
		return "", apperrors.ErrUnauthenticated
	}
	overview, err := i.stats.Overview(ctx, statsdto.Query{OwnerID: ownerID, Period: period})
	if err != nil {
		return "", err
	}
	report, err := i.stats.Report(ctx, ownerID)
	if err != nil {
		return "", err
	}
	in := domain.StatsInput{
		OwnerID:      ownerID,
		Period:       overview.Period,
		Sessions:     overview.Sessions,
		TotalHours:   overview.TotalHours,
		Mean:         overview.Mean,
		Median:       overview.Median,
		Mode:         overview.Mode,
		MostWeekday:  overview.MostWeekday,
		LeastWeekday: overview.LeastWeekday,
		Favorite:     overview.Favorite,
		Report:       report.Lines,
	}
	if !overview.From.IsZero() {
		in.From = overview.From.Format("2006-01-02")
	}
	if !overview.To.IsZero() {
		in.To = overview.To.Format("2006-01-02")
	}
	if overview.HasAverage {
		avg := overview.DailyAverage
		in.DailyAverage = &avg
	}
	for _, w := range overview.Weekdays {
		in.Weekdays = append(in.Weekdays, domain.NamedHours{Name: w.Weekday, Hours: w.Hours})
	}
	for _, s := range overview.Subjects {
		in.Subjects = append(in.Subjects, domain.NamedHours{Name: s.Subject, Hours: s.Hours})
	}
	if g := report.Goal; g.HasGoal {
		in.Goal = &domain.GoalInput{Hours: g.GoalHours, Period: g.Period, Percent: g.Percent, Met: g.MetGoal}
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode stats input: %w", err)
	}
	return string(raw), nil
}
