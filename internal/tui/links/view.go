package links

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elsanchez/smart-links/internal/tui/theme"
)

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(theme.Title.Render("Fetching links") + "\n\n")
		b.WriteString("  " + m.spinner.View() + " " + m.url + "\n")

	case m.result == nil:
		b.WriteString(theme.Title.Render(m.url) + "\n")

	default:
		b.WriteString(theme.Title.Render(m.result.Title) + "\n\n")
		b.WriteString("  " + m.viewTabs() + "\n\n")
		b.WriteString(m.lists[m.active].View() + "\n")
		if url := m.selectedURL(); url != "" {
			b.WriteString(theme.Help.Render("  "+truncate(url, m.width-4)) + "\n")
		}
	}

	if m.errorMessage != "" {
		b.WriteString("\n" + theme.Error.Render("Error: "+m.errorMessage) + "\n")
	} else if m.statusMessage != "" {
		b.WriteString("\n" + theme.Success.Render(m.statusMessage) + "\n")
	}

	b.WriteString("\n" + theme.Help.Render("  tab switch • / filter • enter/c copy url • q quit"))

	return b.String()
}

func (m Model) viewTabs() string {
	labels := [2]string{
		fmt.Sprintf("Video (%d)", len(m.lists[tabVideo].Items())),
		fmt.Sprintf("Audio (%d)", len(m.lists[tabAudio].Items())),
	}

	tabs := make([]string, len(labels))
	for i, label := range labels {
		if tab(i) == m.active {
			tabs[i] = theme.ActiveTab.Render(label)
		} else {
			tabs[i] = theme.InactiveTab.Render(label)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
