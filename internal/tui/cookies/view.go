package cookies

import (
	"fmt"
	"strings"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/tui/theme"
)

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.currentView {
	case viewImport:
		content = m.viewImport()
	case viewValidation:
		content = m.viewValidation()
	case viewHelp:
		content = m.viewHelp()
	default:
		content = m.viewList()
	}

	// Add status/error messages
	if m.errorMessage != "" {
		content += "\n" + theme.Error.Render("Error: "+m.errorMessage)
	} else if m.statusMessage != "" {
		content += "\n" + theme.Success.Render(m.statusMessage)
	}

	if m.loading {
		content += "\n" + m.spinner.View() + " Loading..."
	}

	return content
}

func validationIcon(status string) string {
	switch status {
	case domain.ValidationStatusValid:
		return "✓"
	case domain.ValidationStatusExpired:
		return "⚠"
	case domain.ValidationStatusInvalid:
		return "✗"
	default:
		return "?"
	}
}

// viewList renders the account list, grouped by platform
func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("🍪 Cookie Accounts") + "\n\n")

	if len(m.accounts) == 0 {
		b.WriteString("  No accounts found. Press 'i' to import cookies.\n")
	} else {
		// Las cuentas llegan ordenadas por plataforma
		platform := ""
		for i, acc := range m.accounts {
			if acc.Platform != platform {
				if platform != "" {
					b.WriteString("\n")
				}
				platform = acc.Platform
				b.WriteString(fmt.Sprintf("  %s:\n", platform))
			}

			cursor := "  "
			if i == m.cursor {
				cursor = "▸ "
			}

			active := "  "
			if acc.IsActive {
				active = "⭐"
			}

			b.WriteString(fmt.Sprintf("  %s%s %s %-20s\n", cursor, active, validationIcon(acc.ValidationStatus), acc.Name))

			if i == m.cursor && acc.ValidationError != nil {
				b.WriteString("       " + theme.Help.Render(*acc.ValidationError) + "\n")
			}
		}
	}

	help := "\n" + theme.Help.Render("  ↑/k up • ↓/j down • i import • v validate • a activate • d delete • ? help • q quit")

	return b.String() + help
}

// viewImport renders the import form
func (m Model) viewImport() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Import Cookie File") + "\n\n")

	label := func(field int, text string) string {
		if m.focusedField == field {
			return theme.ActiveInput.Render("  " + text)
		}
		return theme.InactiveInput.Render("  " + text)
	}

	checkbox := func(field int, checked bool, text string) string {
		box := "[ ]"
		if checked {
			box = "[✓]"
		}
		return label(field, box+" "+text)
	}

	b.WriteString(label(fieldPath, "Cookie File Path:") + "\n")
	b.WriteString("  " + m.pathInput.View() + "\n\n")
	b.WriteString(label(fieldPlatform, "Platform (optional):") + "\n")
	b.WriteString("  " + m.platformInput.View() + "\n\n")
	b.WriteString(label(fieldName, "Account Name (optional):") + "\n")
	b.WriteString("  " + m.nameInput.View() + "\n\n")
	b.WriteString(checkbox(fieldActivate, m.importActivate, "Set as active") + "\n")
	b.WriteString(checkbox(fieldValidate, m.importValidate, "Validate cookies") + "\n")

	help := theme.Help.Render("  Tab next field • Enter import • Esc cancel • Space toggle checkbox")

	return theme.Box.Render(b.String()) + "\n\n" + help
}

// viewValidation renders the validation results
func (m Model) viewValidation() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Validation Results") + "\n\n")

	counts := make(map[string]int)

	b.WriteString(fmt.Sprintf("  %-12s %-20s %-10s %s\n", "Platform", "Account", "Status", "Message"))
	b.WriteString("  " + strings.Repeat("─", 70) + "\n")

	for _, acc := range m.accounts {
		result, ok := m.validationResults[acc.ID]
		if !ok {
			continue
		}
		counts[result.Status]++

		b.WriteString(fmt.Sprintf("  %-12s %-20s %s %-8s %s\n",
			acc.Platform,
			acc.Name,
			validationIcon(result.Status),
			result.Status,
			result.Message,
		))
	}

	b.WriteString(fmt.Sprintf("\n  Summary: %d valid, %d expired, %d invalid\n",
		counts[domain.ValidationStatusValid],
		counts[domain.ValidationStatusExpired],
		counts[domain.ValidationStatusInvalid],
	))

	return b.String() + "\n" + theme.Help.Render("  Press any key to return to list")
}

// viewHelp renders the help screen
func (m Model) viewHelp() string {
	help := `
  Navigation:
    ↑/k        Move up
    ↓/j        Move down
    q          Quit

  Actions:
    i          Import a cookie file
    v          Validate expiration of every account
    a          Make the selected account active for its platform
    d          Delete the selected account
    ?          Show this help

  Import form:
    Tab        Next field
    Shift+Tab  Previous field
    Space      Toggle checkbox
    Enter      Import
    Esc        Cancel

  The active account of a platform is passed to yt-dlp with --cookies
  when a link from that platform is looked up.
`

	return theme.Title.Render("Help") + "\n" + help + "\n" + theme.Help.Render("  Press any key to return")
}
