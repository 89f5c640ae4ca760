package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/config"
	"github.com/raaga-player/raaga/internal/library"
	"github.com/raaga-player/raaga/internal/state"
	"github.com/raaga-player/raaga/internal/transport"
	"github.com/raaga-player/raaga/internal/ui/queuepanel"
	"github.com/raaga-player/raaga/internal/ui/styles"
	"github.com/raaga-player/raaga/internal/ui/tracklist"
)

// ViewMode selects what the main panel shows.
type ViewMode int

const (
	ViewSearch ViewMode = iota
	ViewLiked
	ViewRecent
	ViewPlaylists
	ViewPlaylistTracks
)

// String returns the view title.
func (v ViewMode) String() string {
	switch v {
	case ViewSearch:
		return "Search"
	case ViewLiked:
		return "Liked"
	case ViewRecent:
		return "Recent"
	case ViewPlaylists:
		return "Playlists"
	case ViewPlaylistTracks:
		return "Playlist"
	default:
		return "Unknown"
	}
}

// FocusTarget identifies which component receives key input.
type FocusTarget int

const (
	FocusMain FocusTarget = iota
	FocusQueue
	FocusSearchInput
	FocusPrompt
	FocusPicker
)

// Deps bundles the collaborators the model needs.
type Deps struct {
	Controller *transport.Controller
	Catalog    *catalog.Client
	Library    *library.Store
	States     state.Interface
	Logger     *log.Logger
}

// Model is the root application model containing all UI state.
type Model struct {
	cfg *config.Config
	log *log.Logger

	controller *transport.Controller
	sub        *transport.Subscription
	catalog    *catalog.Client
	library    *library.Store
	states     state.Interface

	view  ViewMode
	focus FocusTarget
	keys  keyMap

	searchInput textinput.Model
	results     tracklist.Model
	queuePanel  queuepanel.Model

	// promptInput collects a new playlist name.
	promptInput textinput.Model

	// picker state for "add to playlist"
	pickerCursor int
	pickerTrack  *catalog.Track

	// playlistCursor indexes the playlists view; activePlaylist is the one
	// opened in ViewPlaylistTracks.
	playlistCursor   int
	activePlaylistID string

	// searchVersion stamps each keystroke so stale debounce timers and
	// out-of-date results can be ignored.
	searchVersion int
	searching     bool
	lastQuery     string

	// searchResults caches the latest hits so switching views and back
	// does not lose them.
	searchResults []catalog.Track

	theme    string
	errorMsg string

	width         int
	height        int
	mainWidth     int
	contentHeight int
}

// New creates the root model. The controller must already be running.
func New(cfg *config.Config, deps Deps) Model {
	search := textinput.New()
	search.Placeholder = "search songs..."
	search.CharLimit = 120

	prompt := textinput.New()
	prompt.Placeholder = "playlist name"
	prompt.CharLimit = 60

	styles.SetTheme(cfg.Theme)

	m := Model{
		cfg:         cfg,
		log:         deps.Logger,
		controller:  deps.Controller,
		sub:         deps.Controller.Subscribe(),
		catalog:     deps.Catalog,
		library:     deps.Library,
		states:      deps.States,
		keys:        newKeyMap(),
		searchInput: search,
		promptInput: prompt,
		results:     tracklist.New(),
		queuePanel:  queuepanel.New(),
		theme:       cfg.Theme,
	}
	m.results.SetLikedFn(deps.Library.IsLiked)
	m.queuePanel.SetModes(deps.Controller.Shuffled(), deps.Controller.RepeatMode())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.watchTransport(), textinput.Blink)
}

// debounceDelay returns the configured search debounce window.
func (m Model) debounceDelay() time.Duration {
	return time.Duration(m.cfg.SearchDebounceMS) * time.Millisecond
}

// savePlayerPrefs writes the playback preferences through to the state store.
func (m *Model) savePlayerPrefs() {
	ps := state.PlayerState{
		Volume:     m.controller.Volume(),
		Muted:      m.controller.Muted(),
		Shuffled:   m.controller.Shuffled(),
		RepeatMode: int(m.controller.RepeatMode()),
		Theme:      m.theme,
	}
	if err := m.states.SavePlayer(ps); err != nil {
		m.log.Error("save player preferences", "err", err)
	}
}
