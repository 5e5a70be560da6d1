package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jabberjabberjabber/llm-jukebox/internal/jukebox"
	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	FetchView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	engine *jukebox.Engine

	width  int
	height int

	trackList list.Model
	input     textinput.Model
	status    string
	busy      bool
	err       error

	help help.Model
	keys keyMap
}

type libraryLoadedMsg struct {
	tracks []*models.Track
	err    error
}

type outcomeMsg struct {
	outcome jukebox.Outcome
}

// NewModel creates a new TUI model over the engine.
func NewModel(ctx context.Context, engine *jukebox.Engine) *Model {
	input := textinput.New()
	input.Placeholder = "artist and song name"
	input.CharLimit = 200

	trackList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	trackList.Title = "Music Library"
	trackList.SetShowHelp(false)

	return &Model{
		ctx:       ctx,
		view:      LibraryView,
		engine:    engine,
		trackList: trackList,
		input:     input,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init initializes the TUI by loading the library.
func (m *Model) Init() tea.Cmd {
	return m.loadLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.trackList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case FetchView:
			return m.handleFetchKeys(msg)
		}

	case libraryLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.trackList.SetItems(trackItems(msg.tracks))
		return m, nil

	case outcomeMsg:
		m.busy = false
		m.status = msg.outcome.Message
		// Any outcome can change the catalog: downloads add, evictions remove
		return m, m.loadLibrary()
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LibraryView:
		return m.renderLibrary()
	case FetchView:
		return m.renderFetch()
	default:
		return ""
	}
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trackList.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if m.busy {
			return m, nil
		}
		if item, ok := m.trackList.SelectedItem().(trackItem); ok {
			m.busy = true
			m.status = fmt.Sprintf("Playing %s...", item.track.Title)
			return m, m.playTrack(item.track.ID)
		}
	case "s":
		return m, m.stopPlayback()
	case "x":
		if item, ok := m.trackList.SelectedItem().(trackItem); ok {
			return m, m.removeTrack(item.track)
		}
	case "r":
		m.status = ""
		return m, m.loadLibrary()
	case "f":
		m.view = FetchView
		m.input.SetValue("")
		return m, m.input.Focus()
	}

	return m.updateList(msg)
}

func (m *Model) handleFetchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LibraryView
		m.input.Blur()
		return m, nil
	case "enter":
		query := m.input.Value()
		if query == "" || m.busy {
			return m, nil
		}
		m.busy = true
		m.status = fmt.Sprintf("Fetching %q...", query)
		m.view = LibraryView
		m.input.Blur()
		return m, m.fetchAndPlay(query)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) renderLibrary() string {
	view := m.trackList.View() + "\n"

	if now := m.engine.NowPlaying(); now != nil {
		view += styles.ok.Render(fmt.Sprintf("♪ %s - %s", now.Artist, now.Title)) + "\n"
	}

	if m.status != "" {
		if m.busy {
			view += styles.warn.Render(m.status) + "\n"
		} else {
			view += styles.help.Render(m.status) + "\n"
		}
	}

	return view + m.help.View(m.keys)
}

func (m *Model) renderFetch() string {
	return styles.title.Render("Fetch a song") + "\n\n" +
		m.input.View() + "\n\n" +
		styles.help.Render("enter to fetch • esc to cancel")
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.engine.ListLibrary(jukebox.ListOptions{Limit: 500})
		return libraryLoadedMsg{tracks: tracks, err: err}
	}
}

func (m *Model) playTrack(id string) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: m.engine.PlayFromLibrary(id)}
	}
}

func (m *Model) fetchAndPlay(query string) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: m.engine.FetchAndPlay(m.ctx, query)}
	}
}

func (m *Model) stopPlayback() tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: m.engine.Stop()}
	}
}

func (m *Model) removeTrack(track *models.Track) tea.Cmd {
	return func() tea.Msg {
		outcome := jukebox.Outcome{
			Status:  jukebox.StatusInfo,
			Message: fmt.Sprintf("Removed %q from the library.", track.Title),
		}
		if err := m.engine.Remove(track.ID); err != nil {
			outcome = jukebox.Outcome{
				Status:  jukebox.StatusFailed,
				Message: fmt.Sprintf("Could not remove %q: %v", track.Title, err),
			}
		}
		return outcomeMsg{outcome: outcome}
	}
}
