// Package links is a terminal viewer for the links of a single video.
package links

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/tui/theme"
)

// Fetcher obtiene el resultado a mostrar
type Fetcher func(ctx context.Context) (*domain.ExtractionResult, error)

type tab int

const (
	tabVideo tab = iota
	tabAudio
)

const (
	defaultWidth  = 80
	defaultHeight = 20
)

// Model is the Bubbletea model for the links viewer
type Model struct {
	url            string
	fetch          Fetcher
	writeClipboard func(string) error

	result *domain.ExtractionResult
	lists  [2]list.Model
	active tab

	spinner  spinner.Model
	loading  bool
	quitting bool
	width    int
	height   int

	statusMessage string
	errorMessage  string
}

// NewModel creates a viewer that loads the links of url with fetch
func NewModel(url string, fetch Fetcher) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	m := Model{
		url:            url,
		fetch:          fetch,
		writeClipboard: clipboard.WriteAll,
		spinner:        s,
		loading:        true,
		width:          defaultWidth,
		height:         defaultHeight,
	}
	m.lists[tabVideo] = newList("Video")
	m.lists[tabAudio] = newList("Audio")

	return m
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), defaultWidth, defaultHeight)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("link", "links")
	return l
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchLinks(m.fetch))
}

// Result returns the loaded result, nil while loading or on error
func (m Model) Result() *domain.ExtractionResult {
	return m.result
}

// videoItem implements list.Item for a video+audio link
type videoItem struct {
	link domain.VideoLink
}

func (i videoItem) Title() string       { return i.link.Resolution }
func (i videoItem) Description() string { return i.link.Size }
func (i videoItem) FilterValue() string { return i.link.Resolution + " " + i.link.Size }

// audioItem implements list.Item for an audio-only link
type audioItem struct {
	link domain.AudioLink
}

func (i audioItem) Title() string       { return i.link.Bitrate }
func (i audioItem) Description() string { return i.link.Size }
func (i audioItem) FilterValue() string { return i.link.Bitrate + " " + i.link.Size }

// selectedURL returns the URL of the highlighted link in the active tab
func (m Model) selectedURL() string {
	switch item := m.lists[m.active].SelectedItem().(type) {
	case videoItem:
		return item.link.URL
	case audioItem:
		return item.link.URL
	}
	return ""
}
