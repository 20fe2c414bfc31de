package plugins

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "studylog/internal/modules/plugin/dto"
	"studylog/internal/ui/theme"
)

type Port interface {
	List(ctx context.Context) ([]plugindto.PluginInfo, error)
	ListCommands(ctx context.Context, pluginName string) ([]plugindto.CommandInfo, error)
	Run(ctx context.Context, input plugindto.RunInput) (plugindto.RunOutput, error)
}

type PluginsLoadedMsg struct {
	Plugins []plugindto.PluginInfo
	Err     error
}

type CommandsLoadedMsg struct {
	PluginName string
	Commands   []plugindto.CommandInfo
	Err        error
}

type RunDoneMsg struct {
	Out plugindto.RunOutput
	Err error
}

type pluginItem struct{ info plugindto.PluginInfo }

func (i pluginItem) Title() string { return i.info.Name + " " + theme.Muted.Render(i.info.Version) }
func (i pluginItem) Description() string {
	state := "enabled"
	if !i.info.Enabled {
		state = "disabled"
	}
	return state + "  " + strings.Join(i.info.Capabilities, ", ")
}
func (i pluginItem) FilterValue() string { return i.info.Name }

type commandItem struct{ cmd plugindto.CommandInfo }

func (i commandItem) Title() string       { return i.cmd.Title }
func (i commandItem) Description() string { return "[" + i.cmd.Kind + "] " + i.cmd.Description }
func (i commandItem) FilterValue() string { return i.cmd.ID + " " + i.cmd.Title }

type pane int

const (
	panePlugins pane = iota
	paneCommands
	paneOutput
)

type Model struct {
	port       Port
	pane       pane
	pluginList list.Model
	cmdList    list.Model
	output     viewport.Model
	spinner    spinner.Model
	plugin     string
	ownerID    string
	period     string
	loading    bool
	width      int
	height     int
}

func newList(title string) list.Model {
	l := list.New(nil, theme.Delegate(), 0, 0)
	l.Title = title
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	return l
}

// New creates the Plugins tab. Report commands run against ownerID's
// statistics for the current period.
func New(port Port, ownerID string) Model {
	vp := viewport.New(0, 0)
	vp.Style = theme.Detail

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{
		port:       port,
		pluginList: newList("Plugins"),
		cmdList:    newList("Commands"),
		output:     vp,
		spinner:    sp,
		ownerID:    ownerID,
		period:     "month",
		loading:    true,
	}
}

// SetPeriod changes the period report commands summarize.
func (m *Model) SetPeriod(period string) {
	if period != "" {
		m.period = period
	}
}

func (m Model) Filtering() bool {
	switch m.pane {
	case panePlugins:
		return m.pluginList.FilterState() == list.Filtering
	case paneCommands:
		return m.cmdList.FilterState() == list.Filtering
	}
	return false
}

// RunCommand runs a command directly, as the palette does.
func (m *Model) RunCommand(pluginName, commandID string) tea.Cmd {
	m.loading = true
	m.plugin = pluginName
	return tea.Batch(m.runCmd(commandID), m.spinner.Tick)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPluginsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pluginList.SetSize(m.width, m.height-2)
		m.cmdList.SetSize(m.width*4/10, m.height-2)
		m.output.Width = m.width - 4
		m.output.Height = m.height - 4

	case PluginsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.showError("Error loading plugins", msg.Err)
			return m, nil
		}
		items := make([]list.Item, len(msg.Plugins))
		for i, p := range msg.Plugins {
			items[i] = pluginItem{info: p}
		}
		cmds = append(cmds, m.pluginList.SetItems(items))
		m.pane = panePlugins

	case CommandsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.showError("Error loading commands", msg.Err)
			return m, nil
		}
		items := make([]list.Item, len(msg.Commands))
		for i, c := range msg.Commands {
			items[i] = commandItem{cmd: c}
		}
		cmds = append(cmds, m.cmdList.SetItems(items))
		m.pane = paneCommands

	case RunDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.showError("Error", msg.Err)
			return m, nil
		}
		m.output.SetContent(renderOutput(msg.Out))
		m.output.GotoTop()
		m.pane = paneOutput

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case msg.String() == "esc" && m.pane == paneOutput:
			m.pane = paneCommands
			return m, nil
		case msg.String() == "esc" && m.pane == paneCommands && !m.Filtering():
			m.pane = panePlugins
			return m, nil
		case msg.String() == "enter" && m.pane == panePlugins && !m.Filtering():
			if item, ok := m.pluginList.SelectedItem().(pluginItem); ok {
				m.plugin = item.info.Name
				m.loading = true
				return m, tea.Batch(m.loadCommandsCmd(item.info.Name), m.spinner.Tick)
			}
		case msg.String() == "enter" && m.pane == paneCommands && !m.Filtering():
			if item, ok := m.cmdList.SelectedItem().(commandItem); ok {
				m.loading = true
				return m, tea.Batch(m.runCmd(item.cmd.ID), m.spinner.Tick)
			}
		}
	}

	var cmd tea.Cmd
	switch m.pane {
	case panePlugins:
		m.pluginList, cmd = m.pluginList.Update(msg)
	case paneCommands:
		m.cmdList, cmd = m.cmdList.Update(msg)
	case paneOutput:
		m.output, cmd = m.output.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Working…")
	}
	plugin := m.plugin
	if plugin == "" {
		plugin = "(none)"
	}
	header := theme.Title.Render("Plugins") + "  " + theme.Muted.Render("plugin: "+plugin+"  period: "+m.period)
	bodyH := max(1, m.height-2)

	var body string
	switch m.pane {
	case panePlugins:
		body = m.pluginList.View()
	case paneCommands:
		listW := m.width * 4 / 10
		listPane := lipgloss.NewStyle().Width(listW).Height(bodyH).Render(m.cmdList.View())
		hint := theme.Pane.Width(m.width - listW - 2).Height(bodyH - 2).
			Render(theme.Muted.Render("enter: run  esc: back to plugins"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, listPane, hint)
	case paneOutput:
		body = lipgloss.JoinVertical(lipgloss.Left, theme.Muted.Render("esc: back to commands"), m.output.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *Model) showError(prefix string, err error) {
	m.output.SetContent(theme.Hot.Render(prefix + ": " + err.Error()))
	m.pane = paneOutput
}

func renderOutput(out plugindto.RunOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%s:%s  exit=%d", out.PluginName, out.CommandID, out.ExitCode)) + "\n\n")
	if out.Stdout != "" {
		sb.WriteString(out.Stdout + "\n")
	}
	if out.Stderr != "" {
		sb.WriteString(theme.Hot.Render("stderr:\n") + out.Stderr + "\n")
	}
	if out.OutputJSON != "" {
		sb.WriteString(theme.Muted.Render("output JSON:\n") + out.OutputJSON + "\n")
	}
	return sb.String()
}

func (m Model) loadPluginsCmd() tea.Cmd {
	return func() tea.Msg {
		plugins, err := m.port.List(context.Background())
		return PluginsLoadedMsg{Plugins: plugins, Err: err}
	}
}

func (m Model) loadCommandsCmd(pluginName string) tea.Cmd {
	return func() tea.Msg {
		cmds, err := m.port.ListCommands(context.Background(), pluginName)
		return CommandsLoadedMsg{PluginName: pluginName, Commands: cmds, Err: err}
	}
}

func (m Model) runCmd(commandID string) tea.Cmd {
	input := plugindto.RunInput{
		PluginName: m.plugin,
		CommandID:  commandID,
		OwnerID:    m.ownerID,
		Period:     m.period,
	}
	return func() tea.Msg {
		out, err := m.port.Run(context.Background(), input)
		return RunDoneMsg{Out: out, Err: err}
	}
}
