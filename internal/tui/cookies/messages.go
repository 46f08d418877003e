package cookies

import (
	"github.com/elsanchez/smart-links/internal/cookies"
	"github.com/elsanchez/smart-links/internal/domain"
)

// Message types for async operations

type accountsLoadedMsg struct {
	accounts []*domain.Account
	err      error
}

type importCompleteMsg struct {
	account *domain.Account
	err     error
}

type validationCompleteMsg struct {
	results map[int64]*cookies.ValidationResult
	err     error
}

type deleteCompleteMsg struct {
	err error
}

type activateCompleteMsg struct {
	account *domain.Account
	err     error
}
