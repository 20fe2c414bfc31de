package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studylog/internal/ui/theme"
)

type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// PaletteCommand is one entry offered by the palette. Usage is shown after
// the name and never inserted on completion.
type PaletteCommand struct {
	Name  string
	Usage string
}

// Commands understood by app.Model.executePalette.
var PaletteCommands = []PaletteCommand{
	{Name: "session:log", Usage: "<subject> <YYYY-MM-DD> <HH:MM> <HH:MM> [notes]"},
	{Name: "session:delete", Usage: "<id>"},
	{Name: "stats:period", Usage: "<week|month|all>"},
	{Name: "stats:subject", Usage: "<name|all>"},
	{Name: "goal:set", Usage: "<hours>"},
	{Name: "goal:clear"},
	{Name: "plugin:run", Usage: "<plugin> <command>"},
	{Name: "export:dashboard"},
	{Name: "refresh"},
}

const maxSuggestions = 6

var (
	overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(theme.Warn).
		Background(theme.Panel).
		Foreground(theme.Fg).
		Padding(0, 1)
	chosen = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
)

type Palette struct {
	input   textinput.Model
	open    bool
	cursor  int
	width   int
	matches []PaletteCommand
}

func NewPalette() Palette {
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = "type a command, tab completes"
	in.CharLimit = 256
	return Palette{input: in, matches: suggest("")}
}

func (p Palette) Visible() bool { return p.open }

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.cursor = 0
	p.input.SetValue("")
	p.matches = suggest("")
	return p.input.Focus()
}

func (p *Palette) close() {
	p.open = false
	p.input.Blur()
}

// suggest returns commands whose name starts with the first typed word,
// falling back to substring matches.
func suggest(typed string) []PaletteCommand {
	word, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(typed)), " ")
	var prefix, contains []PaletteCommand
	for _, c := range PaletteCommands {
		switch {
		case strings.HasPrefix(c.Name, word):
			prefix = append(prefix, c)
		case strings.Contains(c.Name, word):
			contains = append(contains, c)
		}
	}
	out := append(prefix, contains...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: value} }
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down", "ctrl+n":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil
		case "tab":
			p.complete()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.matches = suggest(p.input.Value())
	p.cursor = min(p.cursor, max(len(p.matches)-1, 0))
	return p, cmd
}

// complete replaces the typed command word with the highlighted suggestion
// and keeps any arguments already entered.
func (p *Palette) complete() {
	if len(p.matches) == 0 {
		return
	}
	_, args, hasArgs := strings.Cut(strings.TrimLeft(p.input.Value(), " "), " ")
	value := p.matches[p.cursor].Name + " "
	if hasArgs {
		value += args
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.matches = suggest(value)
	p.cursor = 0
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	lines := []string{theme.Title.Render("Command"), p.input.View()}
	if len(p.matches) > 0 {
		lines = append(lines, "")
	}
	for i, c := range p.matches {
		row := "  " + c.Name
		if i == p.cursor {
			row = chosen.Render("▸ " + c.Name)
		}
		if c.Usage != "" {
			row += " " + theme.Muted.Render(c.Usage)
		}
		lines = append(lines, row)
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return overlay.Width(w - 2).Render(strings.Join(lines, "\n"))
}
