package links

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	quitKey    = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	nextTabKey = key.NewBinding(key.WithKeys("tab", "right", "l"))
	prevTabKey = key.NewBinding(key.WithKeys("shift+tab", "left", "h"))
	copyKey    = key.NewBinding(key.WithKeys("enter", "c"))
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.lists {
			m.lists[i].SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case linksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.setResult(msg)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errorMessage = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ Copied to clipboard"
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Mientras se filtra, todas las teclas van a la lista
	if m.lists[m.active].FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.lists[m.active], cmd = m.lists[m.active].Update(msg)
		return m, cmd
	}

	m.errorMessage = ""
	m.statusMessage = ""

	switch {
	case key.Matches(msg, quitKey):
		m.quitting = true
		return m, tea.Quit

	case m.loading:
		return m, nil

	case key.Matches(msg, nextTabKey), key.Matches(msg, prevTabKey):
		// Solo hay dos tabs
		if m.active == tabVideo {
			m.active = tabAudio
		} else {
			m.active = tabVideo
		}
		return m, nil

	case key.Matches(msg, copyKey):
		url := m.selectedURL()
		if url == "" {
			return m, nil
		}
		return m, copyURL(m.writeClipboard, url)
	}

	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

func (m *Model) setResult(msg linksLoadedMsg) {
	m.result = msg.result

	video := make([]list.Item, 0, len(msg.result.VideoLinks))
	for _, link := range msg.result.VideoLinks {
		video = append(video, videoItem{link: link})
	}
	m.lists[tabVideo].SetItems(video)

	audio := make([]list.Item, 0, len(msg.result.AudioLinks))
	for _, link := range msg.result.AudioLinks {
		audio = append(audio, audioItem{link: link})
	}
	m.lists[tabAudio].SetItems(audio)

	// Sin links de video, empezar en audio
	if len(video) == 0 && len(audio) > 0 {
		m.active = tabAudio
	}
}
