package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "studylog/internal/modules/account/dto"
	exportdto "studylog/internal/modules/export/dto"
	goaldto "studylog/internal/modules/goal/dto"
	goalin "studylog/internal/modules/goal/port/in"
	plugindto "studylog/internal/modules/plugin/dto"
	sessiondto "studylog/internal/modules/session/dto"
	statsdto "studylog/internal/modules/stats/dto"
	"studylog/internal/ui/components"
	"studylog/internal/ui/theme"
	adminview "studylog/internal/ui/views/admin"
	pluginsview "studylog/internal/ui/views/plugins"
	sessionsview "studylog/internal/ui/views/sessions"
	statsview "studylog/internal/ui/views/stats"
)

type sessionPort interface {
	Log(ctx context.Context, input sessiondto.LogInput) (sessiondto.LogOutput, error)
	Delete(ctx context.Context, ownerID string, ids ...string) (sessiondto.DeleteOutput, error)
}

type goalPort interface {
	Set(ctx context.Context, scope string, hours float64) (goaldto.GoalOutput, error)
	Clear(ctx context.Context, scope string) error
}

type statsPort interface {
	Overview(ctx context.Context, query statsdto.Query) (statsdto.OverviewOutput, error)
	History(ctx context.Context, query statsdto.Query) (statsdto.HistoryOutput, error)
	Report(ctx context.Context, ownerID string) (statsdto.ReportOutput, error)
	Dashboard(ctx context.Context) (statsdto.DashboardOutput, error)
	NotifyGoalReached(ctx context.Context, ownerID string, date time.Time, addedHours float64) (statsdto.NotifyOutput, error)
}

type accountPort interface {
	ListUsers(ctx context.Context) ([]accountdto.UserOutput, error)
}

type pluginPort interface {
	List(ctx context.Context) ([]plugindto.PluginInfo, error)
	ListCommands(ctx context.Context, pluginName string) ([]plugindto.CommandInfo, error)
	Run(ctx context.Context, input plugindto.RunInput) (plugindto.RunOutput, error)
}

type exportPort interface {
	Dashboard(ctx context.Context, input exportdto.DashboardInput) (exportdto.DashboardOutput, error)
}

// Ports bundles the use-cases the TUI drives.
type Ports struct {
	Sessions sessionPort
	Goals    goalPort
	Stats    statsPort
	Accounts accountPort
	Plugins  pluginPort
	Export   exportPort
}

type tabID int

const (
	tabSessions tabID = iota
	tabStats
	tabPlugins
	tabAdmin
)

var tabLabels = map[tabID]string{
	tabSessions: "Sessions",
	tabStats:    "Statistics",
	tabPlugins:  "Plugins",
	tabAdmin:    "Admin",
}

// actionDoneMsg reports a palette action; reload asks every tab to refresh.
type actionDoneMsg struct {
	status string
	err    error
	reload bool
}

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Period  key.Binding
	Enter   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Period:  key.NewBinding(key.WithKeys("w", "m", "a"), key.WithHelp("w/m/a", "stats period")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run plugin command")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Period, k.Enter},
		{k.Help, k.Palette, k.Quit},
	}
}

// Model is the root model. It routes tabs, runs palette commands and shows
// the help overlay; rendering is left to the sub-views.
type Model struct {
	ports    Ports
	user     accountdto.UserOutput
	location *time.Location

	sessionsView sessionsview.Model
	statsView    statsview.Model
	pluginView   pluginsview.Model
	adminView    adminview.Model

	tabs      []tabID
	activeTab int
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// NewModel builds the TUI for the logged-in user. The Admin tab is only
// present for administrators.
func NewModel(ports Ports, user accountdto.UserOutput, location *time.Location) Model {
	if location == nil {
		location = time.Local
	}
	tabs := []tabID{tabSessions, tabStats, tabPlugins}
	if user.Role == "admin" {
		tabs = append(tabs, tabAdmin)
	}
	return Model{
		ports:        ports,
		user:         user,
		location:     location,
		sessionsView: sessionsview.New(ports.Stats, user.ID),
		statsView:    statsview.New(ports.Stats, user.ID),
		pluginView:   pluginsview.New(ports.Plugins, user.ID),
		adminView:    adminview.New(adminPortBridge{stats: ports.Stats, accounts: ports.Accounts}),
		tabs:         tabs,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "logged in as " + user.Name,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sessionsView.Init(), m.statsView.Init(), m.pluginView.Init()}
	if m.hasAdmin() {
		cmds = append(cmds, m.adminView.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = theme.Bad.Render(msg.err.Error())
			return m, nil
		}
		m.status = msg.status
		if msg.reload {
			return m, m.reloadAll()
		}
		return m, nil

	// Loaded messages go to their owning view regardless of the active tab.
	case sessionsview.HistoryLoadedMsg:
		var cmd tea.Cmd
		m.sessionsView, cmd = m.sessionsView.Update(msg)
		return m, cmd
	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd
	case adminview.LoadedMsg:
		var cmd tea.Cmd
		m.adminView, cmd = m.adminView.Update(msg)
		return m, cmd
	case pluginsview.PluginsLoadedMsg, pluginsview.CommandsLoadedMsg, pluginsview.RunDoneMsg:
		var cmd tea.Cmd
		m.pluginView, cmd = m.pluginView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var cmd tea.Cmd
	switch m.tabs[m.activeTab] {
	case tabSessions:
		m.sessionsView, cmd = m.sessionsView.Update(msg)
	case tabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case tabPlugins:
		m.pluginView, cmd = m.pluginView.Update(msg)
	case tabAdmin:
		m.adminView, cmd = m.adminView.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.tabs[m.activeTab] {
	case tabSessions:
		return m.sessionsView.View()
	case tabStats:
		return m.statsView.View()
	case tabPlugins:
		return m.pluginView.View()
	case tabAdmin:
		return m.adminView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[tab] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[tab] + " ")
		}
	}
	bar := "studylog  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Panel).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Good.Render("● "+m.user.Name) + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Panel).Width(m.width).Render(bar)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "session:log":
		logInput, err := parseLogCommand(parts[1:], m.location)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		logInput.OwnerID = m.user.ID
		return m, m.logSessionCmd(logInput)

	case "session:delete":
		ids := parts[1:]
		if len(ids) == 0 {
			if id, ok := m.sessionsView.SelectedID(); ok {
				ids = []string{id}
			}
		}
		if len(ids) == 0 {
			m.status = "usage: session:delete <id>"
			return m, nil
		}
		return m, m.deleteSessionsCmd(ids)

	case "stats:period":
		if len(parts) < 2 {
			m.status = "usage: stats:period <week|month|all>"
			return m, nil
		}
		m.pluginView.SetPeriod(parts[1])
		return m, tea.Batch(m.sessionsView.SetFilter(parts[1], ""), m.statsView.SetFilter(parts[1], ""))

	case "stats:subject":
		if len(parts) < 2 {
			m.status = "usage: stats:subject <name|all>"
			return m, nil
		}
		subject := strings.Join(parts[1:], " ")
		return m, tea.Batch(m.sessionsView.SetFilter("", subject), m.statsView.SetFilter("", subject))

	case "goal:set":
		if len(parts) < 2 {
			m.status = "usage: goal:set <hours>"
			return m, nil
		}
		hours, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid hours: " + parts[1]
			return m, nil
		}
		return m, m.setGoalCmd(hours)

	case "goal:clear":
		return m, m.clearGoalCmd()

	case "plugin:run":
		if len(parts) < 3 {
			m.status = "usage: plugin:run <plugin> <command>"
			return m, nil
		}
		m.activeTab = m.tabIndex(tabPlugins)
		return m, m.pluginView.RunCommand(parts[1], parts[2])

	case "export:dashboard":
		return m, m.exportDashboardCmd()

	case "refresh":
		return m, m.reloadAll()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// parseLogCommand reads "<subject> <YYYY-MM-DD> <HH:MM> <HH:MM> [notes...]".
func parseLogCommand(args []string, loc *time.Location) (sessiondto.LogInput, error) {
	if len(args) < 4 {
		return sessiondto.LogInput{}, fmt.Errorf("usage: session:log <subject> <YYYY-MM-DD> <HH:MM> <HH:MM> [notes]")
	}
	date, err := time.ParseInLocation("2006-01-02", args[1], loc)
	if err != nil {
		return sessiondto.LogInput{}, fmt.Errorf("invalid date %q", args[1])
	}
	return sessiondto.LogInput{
		Subject:   args[0],
		Date:      date,
		StartTime: args[2],
		EndTime:   args[3],
		Notes:     strings.Join(args[4:], " "),
	}, nil
}

func (m Model) hasAdmin() bool {
	return m.tabIndex(tabAdmin) >= 0
}

func (m Model) tabIndex(tab tabID) int {
	for i, t := range m.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

func (m Model) subViewFiltering() bool {
	switch m.tabs[m.activeTab] {
	case tabSessions:
		return m.sessionsView.Filtering()
	case tabPlugins:
		return m.pluginView.Filtering()
	case tabAdmin:
		return m.adminView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.sessionsView, _ = m.sessionsView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.pluginView, _ = m.pluginView.Update(sz)
	if m.hasAdmin() {
		m.adminView, _ = m.adminView.Update(sz)
	}
}

func (m Model) reloadAll() tea.Cmd {
	cmds := []tea.Cmd{m.sessionsView.Reload(), m.statsView.Reload()}
	if m.hasAdmin() {
		cmds = append(cmds, m.adminView.Reload())
	}
	return tea.Batch(cmds...)
}

func (m Model) logSessionCmd(input sessiondto.LogInput) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out, err := m.ports.Sessions.Log(ctx, input)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		status := fmt.Sprintf("logged %.2f h of %s", out.DurationHours, out.Subject)
		if notice, err := m.ports.Stats.NotifyGoalReached(ctx, input.OwnerID, out.Date, out.DurationHours); err == nil && notice.Message != "" {
			status += "  " + notice.Message
		}
		return actionDoneMsg{status: status, reload: true}
	}
}

func (m Model) deleteSessionsCmd(ids []string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Sessions.Delete(context.Background(), m.user.ID, ids...)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("deleted %d session(s)", out.Deleted), reload: true}
	}
}

func (m Model) setGoalCmd(hours float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Goals.Set(context.Background(), goalin.UserScope(m.user.ID), hours)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("goal set to %.1f hours", out.Hours), reload: true}
	}
}

func (m Model) clearGoalCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.ports.Goals.Clear(context.Background(), goalin.UserScope(m.user.ID)); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "goal cleared", reload: true}
	}
}

func (m Model) exportDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Export.Dashboard(context.Background(), exportdto.DashboardInput{OwnerID: m.user.ID, UserName: m.user.Name})
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "dashboard written to " + out.Path}
	}
}

type adminPortBridge struct {
	stats    statsPort
	accounts accountPort
}

func (b adminPortBridge) Dashboard(ctx context.Context) (statsdto.DashboardOutput, error) {
	return b.stats.Dashboard(ctx)
}

func (b adminPortBridge) ListUsers(ctx context.Context) ([]accountdto.UserOutput, error) {
	return b.accounts.ListUsers(ctx)
}
