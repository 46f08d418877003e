package links

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/smart-links/internal/domain"
)

// Message types for async operations

type linksLoadedMsg struct {
	result *domain.ExtractionResult
	err    error
}

type copiedMsg struct {
	url string
	err error
}

const fetchTimeout = 5 * time.Minute

func fetchLinks(fetch Fetcher) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		result, err := fetch(ctx)
		return linksLoadedMsg{result: result, err: err}
	}
}

func copyURL(write func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{url: url, err: write(url)}
	}
}
