package in_test

import (
	"context"
	"errors"
	"testing"

	pluginin "studylog/internal/modules/plugin/adapter/in"
	"studylog/internal/modules/plugin/dto"
	apperrors "studylog/internal/platform/errors"
)

type recordingUsecase struct {
	got dto.RunInput
	out dto.RunOutput
}

func (r *recordingUsecase) List(context.Context) ([]dto.PluginInfo, error)     { return nil, nil }
func (r *recordingUsecase) Doctor(context.Context) ([]dto.DoctorResult, error) { return nil, nil }
func (r *recordingUsecase) ListCommands(context.Context, string) ([]dto.CommandInfo, error) {
	return nil, nil
}

func (r *recordingUsecase) Run(_ context.Context, input dto.RunInput) (dto.RunOutput, error) {
	r.got = input
	return r.out, nil
}

func TestRunDefaultsPeriodAndIndentsOutput(t *testing.T) {
	t.Parallel()
	uc := &recordingUsecase{out: dto.RunOutput{OutputJSON: `{"ok":true}`}}
	out, err := pluginin.NewCLIHandler(uc).Run(context.Background(), dto.RunInput{PluginName: " weekly-digest ", CommandID: "digest"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if uc.got.Period != "month" || uc.got.PluginName != "weekly-digest" {
		t.Fatalf("unexpected forwarded input %+v", uc.got)
	}
	if out.OutputJSON != "{\n  \"ok\": true\n}" {
		t.Fatalf("expected indented output, got %q", out.OutputJSON)
	}
}

func TestRunRejectsMalformedInput(t *testing.T) {
	t.Parallel()
	uc := &recordingUsecase{}
	_, err := pluginin.NewCLIHandler(uc).Run(context.Background(), dto.RunInput{PluginName: "p", CommandID: "c", InputJSON: "{nope"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if uc.got.PluginName != "" {
		t.Fatalf("usecase must not run for malformed input")
	}
}
