package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	accountdto "studylog/internal/modules/account/dto"
	statsdto "studylog/internal/modules/stats/dto"
	"studylog/internal/ui/components"
	"studylog/internal/ui/theme"
)

type Port interface {
	Dashboard(ctx context.Context) (statsdto.DashboardOutput, error)
	ListUsers(ctx context.Context) ([]accountdto.UserOutput, error)
}

type LoadedMsg struct {
	Dashboard statsdto.DashboardOutput
	Users     []accountdto.UserOutput
	Err       error
}

type userItem struct{ user accountdto.UserOutput }

func (i userItem) Title() string { return i.user.Name + "  " + theme.Muted.Render(i.user.Role) }
func (i userItem) Description() string {
	return fmt.Sprintf("%s  %d sessions  joined %s", i.user.Email, i.user.Sessions, humanize.Time(i.user.RegisteredAt))
}
func (i userItem) FilterValue() string { return i.user.Name + " " + i.user.Email }

type Model struct {
	port      Port
	users     list.Model
	summary   viewport.Model
	spinner   spinner.Model
	dashboard statsdto.DashboardOutput
	loading   bool
	err       error
	width     int
	height    int
}

func New(port Port) Model {
	l := list.New(nil, theme.Delegate(), 0, 0)
	l.Title = "Users"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = theme.Detail

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{port: port, users: l, summary: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		dashboard, err := m.port.Dashboard(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		users, err := m.port.ListUsers(ctx)
		return LoadedMsg{Dashboard: dashboard, Users: users, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.users.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 4 / 10
		m.users.SetSize(listW, m.height)
		m.summary.Width = m.width - listW - 4
		m.summary.Height = m.height - 4
		m.summary.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		m.dashboard = msg.Dashboard
		items := make([]list.Item, len(msg.Users))
		for i, u := range msg.Users {
			items[i] = userItem{user: u}
		}
		cmds = append(cmds, m.users.SetItems(items))
		m.summary.SetContent(m.render())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !m.loading {
		var cmd tea.Cmd
		m.users, cmd = m.users.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading dashboard…")
	}
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.users.View())
	summaryPane := theme.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(m.summary.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, summaryPane)
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render(m.err.Error())
	}
	d := m.dashboard
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Dashboard") + "\n\n")
	fmt.Fprintf(&sb, "users with sessions  %d\n", d.Owners)
	fmt.Fprintf(&sb, "sessions             %s\n", humanize.Comma(int64(d.Overview.Sessions)))
	fmt.Fprintf(&sb, "hours                %.2f\n", d.Overview.TotalHours)
	fmt.Fprintf(&sb, "favorite subject     %s\n\n", orNone(d.Overview.Favorite))

	if d.Goal.HasGoal {
		fmt.Fprintf(&sb, "%s %s %d%%\n\n", theme.Title.Render("Global goal"), components.ProgressBar(d.Goal.Percent, 20), d.Goal.Percent)
	}

	top := make([]components.Bar, len(d.Top))
	for i, o := range d.Top {
		top[i] = components.Bar{Label: m.ownerName(o.OwnerID), Value: o.Hours}
	}
	sb.WriteString(theme.Title.Render("Top students") + "\n" + components.BarChart(top, 20) + "\n\n")

	activity := make([]float64, len(d.Activity))
	for i, day := range d.Activity {
		activity[i] = day.Hours
	}
	sb.WriteString(theme.Title.Render("Activity") + "\n" + theme.Bar.Render(components.Sparkline(activity)) + "\n")
	return sb.String()
}

func (m Model) ownerName(id string) string {
	for _, item := range m.users.Items() {
		if u, ok := item.(userItem); ok && u.user.ID == id {
			return u.user.Name
		}
	}
	return id
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
