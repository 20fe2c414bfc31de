package sessions

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

	statsdto "studylog/internal/modules/stats/dto"
	"studylog/internal/ui/theme"
)

// Port is the slice of the stats use-case the history tab reads from.
type Port interface {
	History(ctx context.Context, query statsdto.Query) (statsdto.HistoryOutput, error)
}

type HistoryLoadedMsg struct {
	History statsdto.HistoryOutput
	Err     error
}

type sessionItem struct {
	row statsdto.SessionRow
}

func (i sessionItem) Title() string {
	return i.row.Date.Format("2006-01-02") + " " + i.row.StartTime + "  " + i.row.Subject
}

func (i sessionItem) Description() string {
	desc := fmt.Sprintf("%.2f h", i.row.DurationHours)
	if i.row.Notes != "" {
		desc += "  " + firstLine(i.row.Notes)
	}
	return desc
}

func (i sessionItem) FilterValue() string { return i.row.Subject + " " + i.row.Notes }

type Model struct {
	port    Port
	query   statsdto.Query
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	total   float64
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port, ownerID string) Model {
	l := list.New(nil, theme.Delegate(), 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = theme.Detail

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{
		port:    port,
		query:   statsdto.Query{OwnerID: ownerID, Period: "all"},
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the history for the current filter.
func (m Model) Reload() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		history, err := m.port.History(context.Background(), query)
		return HistoryLoadedMsg{History: history, Err: err}
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
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case HistoryLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.detail.SetContent(theme.Bad.Render(msg.Err.Error()))
			return m, nil
		}
		m.total = msg.History.TotalHours
		items := make([]list.Item, len(msg.History.Sessions))
		for i, row := range msg.History.Sessions {
			items[i] = sessionItem{row: row}
		}
		m.list.Title = fmt.Sprintf("History (%s)", m.query.Period)
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		prev := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prev {
			m.detail.SetContent(m.renderDetail())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading sessions…")
	}
	listW := m.width * 5 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Background(theme.Panel).
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedID returns the id of the highlighted session.
func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(sessionItem); ok {
		return item.row.ID, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	m.list.SetSize(listW, m.height)
	m.detail.Width = m.width - listW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n\n", theme.Title.Render("Total"), humanize.FormatFloat("#,###.##", m.total)+" h")
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		sb.WriteString(theme.Muted.Render("No sessions logged for this filter."))
		return sb.String()
	}
	r := item.row
	sb.WriteString(theme.Title.Render(r.Subject) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + r.ID + "\n")
	sb.WriteString(theme.Muted.Render("date:     ") + r.Date.Format("Monday, 2006-01-02") + "\n")
	sb.WriteString(theme.Muted.Render("time:     ") + r.StartTime + " - " + r.EndTime + "\n")
	sb.WriteString(theme.Muted.Render("duration: ") + fmt.Sprintf("%.2f h", r.DurationHours) + "\n")
	if r.Notes != "" {
		sb.WriteString("\n" + r.Notes + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(":session:delete "+r.ID))
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
