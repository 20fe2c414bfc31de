package out

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"

	"studylog/internal/modules/stats/domain"
	statsout "studylog/internal/modules/stats/port/out"
)

// DefaultReportTemplate renders one report line per non-empty output line.
const DefaultReportTemplate = `You studied most on {{most}}.
Your longest session was {{longest}} hours.
The subject you studied most was {{{favorite}}}.
{{#met}}Congratulations! You exceeded your goal by {{surplus}} hours.{{/met}}
{{#behind}}You are at {{percent}}% of your goal.{{/behind}}
{{#outlook}}{{daysLeft}} days and {{hoursLeft}} hours left to reach your goal. You need {{perDay}} hours/day.{{/outlook}}
`

type MustacheRenderer struct {
	tmpl *mustache.Template
}

// NewMustacheRenderer uses tmpl, or DefaultReportTemplate when tmpl is empty.
func NewMustacheRenderer(tmpl string) (statsout.ReportRenderer, error) {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultReportTemplate
	}
	parsed, err := mustache.ParseString(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &MustacheRenderer{tmpl: parsed}, nil
}

func (r *MustacheRenderer) Render(_ context.Context, data domain.ReportData) ([]string, error) {
	view := map[string]any{
		"most":      data.Most.Name(),
		"longest":   fmt.Sprintf("%.2f", data.Longest),
		"favorite":  data.Favorite,
		"met":       data.Progress.HasGoal && data.Progress.MetGoal,
		"behind":    data.Progress.HasGoal && !data.Progress.MetGoal,
		"surplus":   fmt.Sprintf("%.1f", data.Progress.Surplus()),
		"percent":   data.Progress.Percent,
		"outlook":   data.ShowOutlook,
		"daysLeft":  data.Outlook.DaysLeft,
		"hoursLeft": fmt.Sprintf("%.1f", data.Outlook.HoursLeft),
		"perDay":    fmt.Sprintf("%.2f", data.Outlook.HoursPerDay),
	}
	rendered, err := r.tmpl.Render(view)
	if err != nil {
		return nil, fmt.Errorf("render report template: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(rendered, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
