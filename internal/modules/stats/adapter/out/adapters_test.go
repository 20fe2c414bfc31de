package out_test

import (
	"context"
	"testing"

	goaldto "studylog/internal/modules/goal/dto"
	statsout "studylog/internal/modules/stats/adapter/out"
	"studylog/internal/modules/stats/domain"
	apperrors "studylog/internal/platform/errors"
)

type fakeGoals struct {
	scopes []string
	goals  map[string]float64
}

func (f *fakeGoals) Set(context.Context, string, float64) (goaldto.GoalOutput, error) {
	return goaldto.GoalOutput{}, nil
}

func (f *fakeGoals) Get(_ context.Context, scope string) (goaldto.GoalOutput, error) {
	f.scopes = append(f.scopes, scope)
	hours, ok := f.goals[scope]
	if !ok {
		return goaldto.GoalOutput{}, apperrors.ErrNotFound
	}
	return goaldto.GoalOutput{Scope: scope, Hours: hours}, nil
}

func (f *fakeGoals) Clear(context.Context, string) error { return nil }

func TestGoalSourceAdapterMapsScopesAndMissingGoals(t *testing.T) {
	t.Parallel()
	goals := &fakeGoals{goals: map[string]float64{"user:u-1": 12, "global": 40}}
	source := statsout.NewGoalSourceAdapter(goals)

	hours, ok, err := source.Goal(context.Background(), "u-1")
	if err != nil || !ok || hours != 12 {
		t.Fatalf("expected user goal 12, got %.1f %v %v", hours, ok, err)
	}
	hours, ok, err = source.Goal(context.Background(), "")
	if err != nil || !ok || hours != 40 {
		t.Fatalf("expected global goal 40, got %.1f %v %v", hours, ok, err)
	}
	if _, ok, err := source.Goal(context.Background(), "u-2"); err != nil || ok {
		t.Fatalf("missing goal must be ok=false without error, got %v %v", ok, err)
	}
	if goals.scopes[0] != "user:u-1" || goals.scopes[1] != "global" {
		t.Fatalf("unexpected scopes %v", goals.scopes)
	}
}

func TestMustacheRendererCustomTemplate(t *testing.T) {
	t.Parallel()
	renderer, err := statsout.NewMustacheRenderer("Best day: {{most}}\n\nFavorite: {{{favorite}}}\n{{#met}}done{{/met}}")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	lines, err := renderer.Render(context.Background(), domain.ReportData{
		Favorite: "R&D",
		Progress: domain.GoalProgress(1, 5),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(lines) != 2 || lines[0] != "Best day: none" || lines[1] != "Favorite: R&D" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestMustacheRendererRejectsBrokenTemplate(t *testing.T) {
	t.Parallel()
	if _, err := statsout.NewMustacheRenderer("{{#open}}never closed"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMustacheRendererReusesTemplateAcrossRenders(t *testing.T) {
	t.Parallel()
	renderer, err := statsout.NewMustacheRenderer("{{#met}}met{{/met}}{{#behind}}at {{percent}}%{{/behind}}")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	for _, tc := range []struct {
		progress domain.Progress
		want     string
	}{
		{domain.GoalProgress(1, 4), "at 25%"},
		{domain.GoalProgress(5, 4), "met"},
		{domain.GoalProgress(2, 4), "at 50%"},
	} {
		lines, err := renderer.Render(context.Background(), domain.ReportData{Progress: tc.progress})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if len(lines) != 1 || lines[0] != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, lines)
		}
	}
}
