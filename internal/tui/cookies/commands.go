package cookies

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/smart-links/internal/cookies"
	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/repository"
)

// Async commands that return tea.Msg

// loadAccounts lista las cuentas agrupadas por plataforma
func loadAccounts(repo repository.AccountRepository) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		platforms, err := repo.ListPlatforms(ctx)
		if err != nil {
			return accountsLoadedMsg{err: err}
		}

		var all []*domain.Account
		for _, platform := range platforms {
			accounts, err := repo.GetAll(ctx, platform)
			if err != nil {
				return accountsLoadedMsg{err: err}
			}
			all = append(all, accounts...)
		}

		return accountsLoadedMsg{accounts: all}
	}
}

func importCookie(importer *cookies.CookieImporter, opts cookies.ImportOptions) tea.Cmd {
	return func() tea.Msg {
		account, err := importer.Import(context.Background(), opts)
		return importCompleteMsg{account: account, err: err}
	}
}

// validateAccounts revisa la expiración de cada cuenta y guarda el resultado
func validateAccounts(validator *cookies.CookieValidator, repo repository.AccountRepository, accounts []*domain.Account) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		results := make(map[int64]*cookies.ValidationResult, len(accounts))

		for _, acc := range accounts {
			result, err := validator.ValidateAccount(acc)
			if err != nil {
				return validationCompleteMsg{err: err}
			}
			results[acc.ID] = result

			var validationErr *string
			if !result.IsValid {
				validationErr = &result.Message
			}
			if err := repo.UpdateValidation(ctx, acc.ID, result.Status, validationErr); err != nil {
				return validationCompleteMsg{results: results, err: err}
			}
		}

		return validationCompleteMsg{results: results}
	}
}

func deleteAccount(repo repository.AccountRepository, id int64) tea.Cmd {
	return func() tea.Msg {
		return deleteCompleteMsg{err: repo.Delete(context.Background(), id)}
	}
}

func activateAccount(repo repository.AccountRepository, acc *domain.Account) tea.Cmd {
	return func() tea.Msg {
		err := repo.SetActive(context.Background(), acc.Platform, acc.Name)
		return activateCompleteMsg{account: acc, err: err}
	}
}
