// Package theme holds the lipgloss styles shared by the terminal views.
package theme

import "github.com/charmbracelet/lipgloss"

// Styles with adaptive colors for light/dark backgrounds
var (
	Accent = lipgloss.AdaptiveColor{Light: "63", Dark: "205"}
	Muted  = lipgloss.AdaptiveColor{Light: "240", Dark: "250"}

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		MarginLeft(2)

	Help = lipgloss.NewStyle().
		Foreground(Muted)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
		Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "10"}).
		Bold(true)

	Spinner = lipgloss.NewStyle().
		Foreground(Accent)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "63", Dark: "63"}).
		Padding(1, 2)

	ActiveInput = lipgloss.NewStyle().
		Foreground(Accent)

	InactiveInput = lipgloss.NewStyle().
		Foreground(Muted)

	ActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("63")).
		Padding(0, 1)

	InactiveTab = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)
)
