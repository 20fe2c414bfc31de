package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"studylog/internal/ui/theme"
)

// Bar is one labelled value of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
}

// BarChart renders one line per bar, scaled so the largest value fills width
// cells. Values are printed with two decimals after the bar.
func BarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return theme.Muted.Render("no data")
	}
	if width < 1 {
		width = 1
	}
	labelW, top := 0, 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		top = max(top, b.Value)
	}
	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		cells := 0
		if top > 0 {
			cells = int(b.Value/top*float64(width) + 0.5)
		}
		label := b.Label + strings.Repeat(" ", labelW-lipgloss.Width(b.Label))
		lines = append(lines, fmt.Sprintf("%s %s %.2f", label, theme.Bar.Render(strings.Repeat("█", cells)), b.Value))
	}
	return strings.Join(lines, "\n")
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps values onto eight block heights. Zero stays blank.
func Sparkline(values []float64) string {
	top := 0.0
	for _, v := range values {
		top = max(top, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		switch {
		case v <= 0 || top == 0:
			out[i] = ' '
		default:
			idx := int(v / top * float64(len(sparkLevels)-1))
			out[i] = sparkLevels[idx]
		}
	}
	return string(out)
}

// ProgressBar renders percent (clamped to 0..100) as a filled gauge.
func ProgressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return theme.Good.Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", width-filled))
}
