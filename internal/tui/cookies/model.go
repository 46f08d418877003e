// Package cookies is the terminal manager for cookie accounts.
package cookies

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/smart-links/internal/cookies"
	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/repository"
	"github.com/elsanchez/smart-links/internal/tui/theme"
)

// view represents different screens in the TUI
type view int

const (
	viewList view = iota
	viewImport
	viewValidation
	viewHelp
)

// Campos del formulario de import, en orden de tab
const (
	fieldPath = iota
	fieldPlatform
	fieldName
	fieldActivate
	fieldValidate
	fieldCount
)

// Model is the Bubbletea model for the cookie manager
type Model struct {
	// Navigation
	currentView view
	width       int
	height      int
	quitting    bool

	// Dependencies
	accountRepo repository.AccountRepository
	importer    *cookies.CookieImporter
	validator   *cookies.CookieValidator

	// State
	accounts []*domain.Account
	cursor   int

	// Components
	pathInput     textinput.Model
	platformInput textinput.Model
	nameInput     textinput.Model
	spinner       spinner.Model

	// Import state
	importActivate bool
	importValidate bool
	focusedField   int

	// Validation state
	validationResults map[int64]*cookies.ValidationResult

	// UI state
	loading       bool
	statusMessage string
	errorMessage  string
}

// NewModel creates a new cookie manager model; imported files are copied to cookiesDir
func NewModel(accountRepo repository.AccountRepository, cookiesDir string) Model {
	pathInput := textinput.New()
	pathInput.Placeholder = "Path to cookie file"
	pathInput.CharLimit = 256
	pathInput.Width = 60

	platformInput := textinput.New()
	platformInput.Placeholder = "Platform (auto-detect if empty)"
	platformInput.CharLimit = 50
	platformInput.Width = 40

	nameInput := textinput.New()
	nameInput.Placeholder = "Account name (auto-generate if empty)"
	nameInput.CharLimit = 50
	nameInput.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	return Model{
		currentView:       viewList,
		accountRepo:       accountRepo,
		importer:          cookies.NewCookieImporter(accountRepo, cookiesDir),
		validator:         cookies.NewCookieValidator(),
		pathInput:         pathInput,
		platformInput:     platformInput,
		nameInput:         nameInput,
		spinner:           s,
		validationResults: make(map[int64]*cookies.ValidationResult),
		importValidate:    true,
		loading:           true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadAccounts(m.accountRepo),
		m.spinner.Tick,
	)
}

// selected returns the account under the cursor, if any
func (m Model) selected() *domain.Account {
	if m.cursor < 0 || m.cursor >= len(m.accounts) {
		return nil
	}
	return m.accounts[m.cursor]
}
