package cookies

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/smart-links/internal/cookies"
)

var (
	quitKey     = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	upKey       = key.NewBinding(key.WithKeys("up", "k"))
	downKey     = key.NewBinding(key.WithKeys("down", "j"))
	importKey   = key.NewBinding(key.WithKeys("i"))
	validateKey = key.NewBinding(key.WithKeys("v"))
	activateKey = key.NewBinding(key.WithKeys("a"))
	deleteKey   = key.NewBinding(key.WithKeys("d"))
	helpKey     = key.NewBinding(key.WithKeys("?"))
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Clear previous messages on keypress
		m.errorMessage = ""
		m.statusMessage = ""
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.accounts = msg.accounts
		if m.cursor >= len(m.accounts) {
			m.cursor = max(len(m.accounts)-1, 0)
		}
		return m, nil

	case importCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ Imported " + msg.account.Platform + "/" + msg.account.Name
		m.currentView = viewList
		m.resetImportForm()
		return m, loadAccounts(m.accountRepo)

	case validationCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
		}
		if msg.results != nil {
			m.validationResults = msg.results
			m.currentView = viewValidation
		}
		return m, loadAccounts(m.accountRepo)

	case deleteCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ Account deleted"
		return m, loadAccounts(m.accountRepo)

	case activateCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ " + msg.account.Platform + "/" + msg.account.Name + " is now active"
		return m, loadAccounts(m.accountRepo)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case viewList:
		return m.handleListKeys(msg)
	case viewImport:
		return m.handleImportKeys(msg)
	case viewValidation, viewHelp:
		// Any key returns to list
		m.currentView = viewList
		return m, nil
	}
	return m, nil
}

// handleListKeys handles keys in the list view
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, quitKey):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, upKey):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, downKey):
		if m.cursor < len(m.accounts)-1 {
			m.cursor++
		}

	case key.Matches(msg, importKey):
		m.currentView = viewImport
		m.focusedField = fieldPath
		m.updateImportFocus()

	case key.Matches(msg, validateKey):
		if len(m.accounts) > 0 {
			m.loading = true
			return m, validateAccounts(m.validator, m.accountRepo, m.accounts)
		}

	case key.Matches(msg, activateKey):
		if acc := m.selected(); acc != nil {
			m.loading = true
			return m, activateAccount(m.accountRepo, acc)
		}

	case key.Matches(msg, deleteKey):
		if acc := m.selected(); acc != nil {
			m.loading = true
			return m, deleteAccount(m.accountRepo, acc.ID)
		}

	case key.Matches(msg, helpKey):
		m.currentView = viewHelp
	}

	return m, nil
}

// handleImportKeys handles keys in the import view
func (m Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.currentView = viewList
		m.resetImportForm()
		return m, nil

	case "tab", "down":
		m.focusedField = (m.focusedField + 1) % fieldCount
		m.updateImportFocus()
		return m, nil

	case "shift+tab", "up":
		m.focusedField = (m.focusedField + fieldCount - 1) % fieldCount
		m.updateImportFocus()
		return m, nil

	case " ":
		// Space solo alterna checkboxes; en los inputs se escribe normal
		switch m.focusedField {
		case fieldActivate:
			m.importActivate = !m.importActivate
			return m, nil
		case fieldValidate:
			m.importValidate = !m.importValidate
			return m, nil
		}

	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			m.errorMessage = "Cookie file path is required"
			return m, nil
		}

		opts := cookies.ImportOptions{
			FilePath: path,
			Platform: strings.TrimSpace(m.platformInput.Value()),
			Name:     strings.TrimSpace(m.nameInput.Value()),
			Activate: m.importActivate,
			Validate: m.importValidate,
		}

		m.loading = true
		return m, importCookie(m.importer, opts)
	}

	// Update focused input
	var cmd tea.Cmd
	switch m.focusedField {
	case fieldPath:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case fieldPlatform:
		m.platformInput, cmd = m.platformInput.Update(msg)
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	}

	return m, cmd
}

// updateImportFocus updates which input field is focused
func (m *Model) updateImportFocus() {
	m.pathInput.Blur()
	m.platformInput.Blur()
	m.nameInput.Blur()

	switch m.focusedField {
	case fieldPath:
		m.pathInput.Focus()
	case fieldPlatform:
		m.platformInput.Focus()
	case fieldName:
		m.nameInput.Focus()
	}
}

func (m *Model) resetImportForm() {
	m.pathInput.SetValue("")
	m.platformInput.SetValue("")
	m.nameInput.SetValue("")
	m.importActivate = false
	m.importValidate = true
	m.focusedField = fieldPath
}
