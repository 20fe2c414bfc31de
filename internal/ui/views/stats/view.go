package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "studylog/internal/modules/stats/dto"
	"studylog/internal/ui/components"
	"studylog/internal/ui/theme"
)

type Port interface {
	Overview(ctx context.Context, query statsdto.Query) (statsdto.OverviewOutput, error)
	Report(ctx context.Context, ownerID string) (statsdto.ReportOutput, error)
}

type LoadedMsg struct {
	Overview statsdto.OverviewOutput
	Report   statsdto.ReportOutput
	Err      error
}

var periodKeys = map[string]string{
	"w": "week",
	"m": "month",
	"a": "all",
}

type Model struct {
	port     Port
	query    statsdto.Query
	body     viewport.Model
	spinner  spinner.Model
	overview statsdto.OverviewOutput
	report   statsdto.ReportOutput
	loading  bool
	err      error
	width    int
	height   int
}

func New(port Port, ownerID string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Fg).Padding(0, 1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{
		port:    port,
		query:   statsdto.Query{OwnerID: ownerID, Period: "month"},
		body:    vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Reload() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		ctx := context.Background()
		overview, err := m.port.Overview(ctx, query)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		report, err := m.port.Report(ctx, query.OwnerID)
		return LoadedMsg{Overview: overview, Report: report, Err: err}
	}
}

// SetFilter changes the period or subject; empty values keep the current one.
func (m *Model) SetFilter(period, subject string) tea.Cmd {
	if period != "" {
		m.query.Period = period
	}
	if subject != "" {
		m.query.Subject = subject
	}
	m.loading = true
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = msg.Height - 2
		m.body.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		m.overview = msg.Overview
		m.report = msg.Report
		m.body.SetContent(m.render())
		m.body.GotoTop()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if period, ok := periodKeys[msg.String()]; ok {
			cmd := m.SetFilter(period, "")
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Computing statistics…")
	}
	header := theme.Title.Render("Statistics") + "  " +
		theme.Muted.Render(fmt.Sprintf("period: %s  subject: %s  (w/m/a)", m.query.Period, subjectLabel(m.query.Subject)))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.body.View())
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render(m.err.Error())
	}
	o := m.overview
	chartW := max(10, m.width/3)
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %d   %s %.2f h   %s %s\n",
		theme.Muted.Render("sessions"), o.Sessions,
		theme.Muted.Render("total"), o.TotalHours,
		theme.Muted.Render("daily average"), average(o))
	fmt.Fprintf(&sb, "%s %.2f h   %s %.2f h   %s %.2f h   %s %.2f h\n\n",
		theme.Muted.Render("mean"), o.Mean,
		theme.Muted.Render("median"), o.Median,
		theme.Muted.Render("mode"), o.Mode,
		theme.Muted.Render("longest"), o.LongestHours)

	if g := m.report.Goal; g.HasGoal {
		fmt.Fprintf(&sb, "%s %s %d%%  %.2f / %.1f h\n\n",
			theme.Title.Render("Goal"), components.ProgressBar(g.Percent, chartW), g.Percent, g.PeriodHours, g.GoalHours)
	}

	weekdays := make([]components.Bar, len(o.Weekdays))
	for i, w := range o.Weekdays {
		weekdays[i] = components.Bar{Label: w.Weekday, Value: w.Hours}
	}
	sb.WriteString(theme.Title.Render("By weekday") + "\n" + components.BarChart(weekdays, chartW) + "\n\n")

	subjects := make([]components.Bar, len(o.Subjects))
	for i, s := range o.Subjects {
		subjects[i] = components.Bar{Label: s.Subject, Value: s.Hours}
	}
	sb.WriteString(theme.Title.Render("By subject") + "\n" + components.BarChart(subjects, chartW) + "\n\n")

	sb.WriteString(theme.Title.Render("Hour of day") + "\n" + theme.Bar.Render(components.Sparkline(o.HourOfDay[:])) + "\n")
	sb.WriteString(theme.Muted.Render("0     6     12    18   23") + "\n\n")

	buckets := make([]components.Bar, len(o.Histogram))
	for i, b := range o.Histogram {
		buckets[i] = components.Bar{Label: b.Label, Value: float64(b.Count)}
	}
	sb.WriteString(theme.Title.Render("Session lengths") + "\n" + components.BarChart(buckets, chartW) + "\n\n")

	if len(m.report.Lines) > 0 {
		sb.WriteString(theme.Title.Render("Report") + "\n")
		for _, line := range m.report.Lines {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

func average(o statsdto.OverviewOutput) string {
	if !o.HasAverage {
		return "n/a"
	}
	return fmt.Sprintf("%.2f h", o.DailyAverage)
}

func subjectLabel(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
