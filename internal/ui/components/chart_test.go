package components_test

import (
	"strings"
	"testing"

	"studylog/internal/ui/components"
)

func TestBarChartScalesToWidth(t *testing.T) {
	t.Parallel()
	out := components.BarChart([]components.Bar{{Label: "Monday", Value: 4}, {Label: "Tue", Value: 2}, {Label: "Wed", Value: 0}}, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
	if strings.Count(lines[0], "█") != 10 || strings.Count(lines[1], "█") != 5 || strings.Count(lines[2], "█") != 0 {
		t.Fatalf("unexpected scaling:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "Tue    ") || !strings.HasSuffix(lines[0], " 4.00") {
		t.Fatalf("unexpected labels:\n%s", out)
	}
}

func TestBarChartEmpty(t *testing.T) {
	t.Parallel()
	if out := components.BarChart(nil, 10); !strings.Contains(out, "no data") {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

func TestSparkline(t *testing.T) {
	t.Parallel()
	if got := components.Sparkline([]float64{0, 1, 2, 4}); got != " ▂▄█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := components.Sparkline([]float64{0, 0}); got != "  " {
		t.Fatalf("expected blanks, got %q", got)
	}
}

func TestProgressBarClamps(t *testing.T) {
	t.Parallel()
	if got := components.ProgressBar(150, 10); strings.Count(got, "█") != 10 || strings.Contains(got, "░") {
		t.Fatalf("expected full bar, got %q", got)
	}
	if got := components.ProgressBar(30, 10); strings.Count(got, "█") != 3 || strings.Count(got, "░") != 7 {
		t.Fatalf("expected 3/10 bar, got %q", got)
	}
}
