package theme

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Latte on light terminals, Mocha on dark ones.
var (
	Panel  = lipgloss.AdaptiveColor{Light: "#e6e9ef", Dark: "#181825"}
	Border = lipgloss.AdaptiveColor{Light: "#bcc0cc", Dark: "#45475a"}
	Fg     = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"}
	Subtle = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"}
	Accent = lipgloss.AdaptiveColor{Light: "#7287fd", Dark: "#b4befe"}
	Info   = lipgloss.AdaptiveColor{Light: "#209fb5", Dark: "#74c7ec"}
	Warn   = lipgloss.AdaptiveColor{Light: "#fe640b", Dark: "#fab387"}
	Ok     = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	Err    = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
)

var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(Panel).
		Foreground(Fg).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Info).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtle)
	Hot   = lipgloss.NewStyle().Foreground(Warn).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Ok)
	Bad   = lipgloss.NewStyle().Foreground(Err)
	Bar   = lipgloss.NewStyle().Foreground(Accent)

	// Detail is the body style of viewport panes.
	Detail = lipgloss.NewStyle().Background(Panel).Foreground(Fg).Padding(1)
)

// Delegate returns the list delegate shared by every list pane.
func Delegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(Accent).BorderForeground(Accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(Info).BorderForeground(Accent)
	return d
}
