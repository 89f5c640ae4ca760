package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raaga-player/raaga/internal/errmsg"
	"github.com/raaga-player/raaga/internal/transport"
	"github.com/raaga-player/raaga/internal/ui/playerbar"
	"github.com/raaga-player/raaga/internal/ui/queuepanel"
	"github.com/raaga-player/raaga/internal/ui/styles"
)

const seekStep = 5 * time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case StateChangedMsg:
		return m, m.watchTransport()

	case TrackChangedMsg:
		m.queuePanel.SetQueue(m.controller.QueueTracks(), msg.Index)
		m.syncPlayingID()
		return m, m.watchTransport()

	case PositionChangedMsg:
		return m, m.watchTransport()

	case QueueChangedMsg:
		m.queuePanel.SetQueue(msg.Tracks, msg.Index)
		m.syncPlayingID()
		return m, m.watchTransport()

	case ModeChangedMsg:
		m.queuePanel.SetModes(msg.Shuffled, msg.RepeatMode)
		m.savePlayerPrefs()
		return m, m.watchTransport()

	case VolumeChangedMsg:
		m.savePlayerPrefs()
		return m, m.watchTransport()

	case PlayerErrorMsg:
		op := errmsg.OpPlaybackStart
		if msg.Kind == transport.ResolutionFailure {
			op = errmsg.OpStreamResolve
		}
		context := ""
		if msg.Track != nil {
			context = msg.Track.Title
		}
		m.errorMsg = errmsg.FormatWith(op, context, msg.Err)
		m.log.Error("playback failure", "kind", msg.Kind, "err", msg.Err)
		return m, m.watchTransport()

	case TransportClosedMsg:
		return m, tea.Quit

	case SearchDebounceMsg:
		if msg.Version != m.searchVersion {
			return m, nil
		}
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		if err := m.library.RecordSearch(query); err != nil {
			m.log.Error("record search", "err", err)
		}
		m.searching = true
		m.lastQuery = query
		return m, m.searchCmd(query)

	case SearchResultsMsg:
		if msg.Query != m.lastQuery {
			return m, nil
		}
		m.searching = false
		m.searchResults = msg.Tracks
		if m.view == ViewSearch {
			m.results.SetTracks(msg.Tracks)
			m.syncPlayingID()
		}
		return m, nil

	case SearchErrorMsg:
		if msg.Query != m.lastQuery {
			return m, nil
		}
		m.searching = false
		m.errorMsg = errmsg.FormatWith(errmsg.OpSearch, msg.Query, msg.Err)
		return m, nil

	case AlbumTracksMsg:
		m.view = ViewSearch
		m.focus = FocusMain
		m.searchResults = msg.Tracks
		m.results.SetTracks(msg.Tracks)
		m.syncPlayingID()
		return m, nil

	case AlbumErrorMsg:
		m.errorMsg = errmsg.Format(errmsg.OpAlbumLoad, msg.Err)
		return m, nil

	case SuggestionsMsg:
		m.view = ViewSearch
		m.focus = FocusMain
		m.searchResults = msg.Tracks
		m.results.SetTracks(msg.Tracks)
		m.syncPlayingID()
		return m, nil

	case SuggestionsErrorMsg:
		m.errorMsg = errmsg.Format(errmsg.OpSuggestions, msg.Err)
		return m, nil

	case queuepanel.JumpToTrackMsg:
		if err := m.controller.JumpTo(msg.Index); err != nil {
			m.errorMsg = errmsg.Format(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case queuepanel.RemoveTrackMsg:
		if err := m.controller.Dequeue(msg.Index); err != nil {
			m.errorMsg = errmsg.Format(errmsg.OpQueueRemove, err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) && m.focus != FocusSearchInput && m.focus != FocusPrompt {
		return m, tea.Quit
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	m.errorMsg = ""

	switch m.focus {
	case FocusSearchInput:
		return m.handleSearchInputKey(msg)
	case FocusPrompt:
		return m.handlePromptKey(msg)
	case FocusPicker:
		return m.handlePickerKey(msg)
	case FocusQueue:
		return m.handleQueueKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.searchInput.Blur()
		m.focus = FocusMain
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.searchInput.Blur()
		m.focus = FocusMain
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchVersion++
		if err := m.library.RecordSearch(query); err != nil {
			m.log.Error("record search", "err", err)
		}
		m.searching = true
		m.lastQuery = query
		return m, m.searchCmd(query)
	}

	if msg.String() == "ctrl+x" {
		if err := m.library.ClearSearchHistory(); err != nil {
			m.log.Error("clear search history", "err", err)
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.searchVersion++
		return m, tea.Batch(cmd, debounceCmd(m.searchVersion, m.debounceDelay()))
	}
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.promptInput.Blur()
		m.promptInput.SetValue("")
		m.focus = FocusMain
		return m, nil
	case key.Matches(msg, m.keys.enter):
		name := strings.TrimSpace(m.promptInput.Value())
		m.promptInput.Blur()
		m.promptInput.SetValue("")
		m.focus = FocusMain
		if name == "" {
			return m, nil
		}
		if _, err := m.library.CreatePlaylist(name); err != nil {
			m.errorMsg = errmsg.FormatWith(errmsg.OpPlaylistCreate, name, err)
		}
		m.refreshList()
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	playlists := m.library.Playlists()
	switch {
	case key.Matches(msg, m.keys.back):
		m.focus = FocusMain
		m.pickerTrack = nil
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.pickerCursor < len(playlists)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, m.keys.enter):
		if m.pickerTrack != nil && m.pickerCursor < len(playlists) {
			pl := playlists[m.pickerCursor]
			if err := m.library.AddToPlaylist(pl.ID, *m.pickerTrack); err != nil {
				m.errorMsg = errmsg.FormatWith(errmsg.OpPlaylistAddTrack, pl.Name, err)
			}
		}
		m.focus = FocusMain
		m.pickerTrack = nil
		m.refreshList()
	}
	return m, nil
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.focus), key.Matches(msg, m.keys.back):
		m.focus = FocusMain
		m.queuePanel.SetFocused(false)
		return m, nil
	}
	if handled, model, cmd := m.handleTransportKey(msg); handled {
		return model, cmd
	}

	var cmd tea.Cmd
	m.queuePanel, cmd = m.queuePanel.Update(msg)
	return m, cmd
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.focus):
		m.focus = FocusQueue
		m.queuePanel.SetFocused(true)
		return m, nil

	case key.Matches(msg, m.keys.search):
		m.view = ViewSearch
		m.focus = FocusSearchInput
		m.refreshList()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.viewNext):
		m.cycleView()
		return m, nil

	case key.Matches(msg, m.keys.back):
		if m.view == ViewPlaylistTracks {
			m.view = ViewPlaylists
			m.activePlaylistID = ""
			m.refreshList()
		}
		return m, nil

	case key.Matches(msg, m.keys.theme):
		if m.theme == "dark" {
			m.theme = "light"
		} else {
			m.theme = "dark"
		}
		styles.SetTheme(m.theme)
		m.savePlayerPrefs()
		return m, nil

	case key.Matches(msg, m.keys.create):
		m.focus = FocusPrompt
		return m, m.promptInput.Focus()
	}

	if handled, model, cmd := m.handleTransportKey(msg); handled {
		return model, cmd
	}

	if m.view == ViewPlaylists {
		return m.handlePlaylistsKey(msg)
	}
	return m.handleListKey(msg)
}

// handleTransportKey handles the playback keys shared by the main and queue
// focus targets. The bool reports whether the key was consumed.
func (m Model) handleTransportKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.toggle):
		m.controller.Toggle()
	case key.Matches(msg, m.keys.next):
		m.controller.Next()
	case key.Matches(msg, m.keys.previous):
		m.controller.Previous()
	case key.Matches(msg, m.keys.seekFwd):
		m.controller.Seek(m.controller.Position() + seekStep)
	case key.Matches(msg, m.keys.seekBack):
		m.controller.Seek(m.controller.Position() - seekStep)
	case key.Matches(msg, m.keys.volumeUp):
		m.controller.SetVolume(m.controller.Volume() + 0.05)
	case key.Matches(msg, m.keys.volumeDown):
		m.controller.SetVolume(m.controller.Volume() - 0.05)
	case key.Matches(msg, m.keys.mute):
		m.controller.ToggleMute()
	case key.Matches(msg, m.keys.shuffle):
		m.controller.ToggleShuffle()
	case key.Matches(msg, m.keys.repeat):
		m.controller.CycleRepeat()
	default:
		return false, m, nil
	}
	return true, m, nil
}

// handleListKey handles cursor movement and track actions for the track list
// views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.results.MoveUp()
	case key.Matches(msg, m.keys.down):
		m.results.MoveDown()
	case key.Matches(msg, m.keys.top):
		m.results.MoveTop()
	case key.Matches(msg, m.keys.bottom):
		m.results.MoveBottom()

	case key.Matches(msg, m.keys.enter):
		if m.results.Len() == 0 {
			return m, nil
		}
		if err := m.controller.SetQueue(m.results.Tracks(), m.results.Cursor()); err != nil {
			m.errorMsg = errmsg.Format(errmsg.OpQueueSet, err)
		}

	case key.Matches(msg, m.keys.enqueue):
		if t := m.results.Selected(); t != nil {
			m.controller.Enqueue(*t)
		}

	case key.Matches(msg, m.keys.like):
		if t := m.results.Selected(); t != nil {
			if _, err := m.library.ToggleLiked(*t); err != nil {
				m.errorMsg = errmsg.FormatWith(errmsg.OpLikeToggle, t.Title, err)
			}
			if m.view == ViewLiked {
				m.refreshList()
			}
		}

	case key.Matches(msg, m.keys.album):
		t := m.results.Selected()
		if t == nil {
			return m, nil
		}
		if t.AlbumID == "" {
			m.errorMsg = "No album information for this track."
			return m, nil
		}
		return m, m.albumCmd(t.AlbumID)

	case key.Matches(msg, m.keys.suggest):
		if t := m.results.Selected(); t != nil {
			return m, m.suggestionsCmd(t.ID)
		}

	case key.Matches(msg, m.keys.playlist):
		t := m.results.Selected()
		if t == nil {
			return m, nil
		}
		if len(m.library.Playlists()) == 0 {
			m.errorMsg = "No playlists yet. Press 'c' to create one."
			return m, nil
		}
		m.pickerTrack = t
		m.pickerCursor = 0
		m.focus = FocusPicker

	case key.Matches(msg, m.keys.remove):
		if m.view == ViewPlaylistTracks && m.activePlaylistID != "" {
			if t := m.results.Selected(); t != nil {
				if err := m.library.RemoveFromPlaylist(m.activePlaylistID, t.ID); err != nil {
					m.errorMsg = errmsg.FormatWith(errmsg.OpPlaylistRemove, t.Title, err)
				}
				m.refreshList()
			}
		}
	}
	return m, nil
}

// handlePlaylistsKey handles the playlists overview, which cursors over
// playlists rather than tracks.
func (m Model) handlePlaylistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	playlists := m.library.Playlists()
	switch {
	case key.Matches(msg, m.keys.up):
		if m.playlistCursor > 0 {
			m.playlistCursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.playlistCursor < len(playlists)-1 {
			m.playlistCursor++
		}
	case key.Matches(msg, m.keys.top):
		m.playlistCursor = 0
	case key.Matches(msg, m.keys.bottom):
		if len(playlists) > 0 {
			m.playlistCursor = len(playlists) - 1
		}
	case key.Matches(msg, m.keys.enter):
		if m.playlistCursor < len(playlists) {
			m.view = ViewPlaylistTracks
			m.activePlaylistID = playlists[m.playlistCursor].ID
			m.refreshList()
		}
	case key.Matches(msg, m.keys.remove):
		if m.playlistCursor < len(playlists) {
			pl := playlists[m.playlistCursor]
			if err := m.library.DeletePlaylist(pl.ID); err != nil {
				m.errorMsg = errmsg.FormatWith(errmsg.OpPlaylistDelete, pl.Name, err)
			}
			if m.playlistCursor >= len(m.library.Playlists()) {
				m.playlistCursor = len(m.library.Playlists()) - 1
			}
			if m.playlistCursor < 0 {
				m.playlistCursor = 0
			}
		}
	}
	return m, nil
}

// cycleView advances Search -> Liked -> Recent -> Playlists -> Search.
func (m *Model) cycleView() {
	switch m.view {
	case ViewSearch:
		m.view = ViewLiked
	case ViewLiked:
		m.view = ViewRecent
	case ViewRecent:
		m.view = ViewPlaylists
	default:
		m.view = ViewSearch
	}
	m.refreshList()
}

// refreshList repopulates the track list from the current view's source.
func (m *Model) refreshList() {
	switch m.view {
	case ViewSearch:
		m.results.SetTracks(m.searchResults)
	case ViewLiked:
		m.results.SetTracks(m.library.Liked())
	case ViewRecent:
		m.results.SetTracks(m.library.Recent())
	case ViewPlaylistTracks:
		for _, pl := range m.library.Playlists() {
			if pl.ID == m.activePlaylistID {
				m.results.SetTracks(pl.Tracks)
				return
			}
		}
		m.results.SetTracks(nil)
	}
	m.syncPlayingID()
}

// syncPlayingID refreshes the play marker on the track list.
func (m *Model) syncPlayingID() {
	id := ""
	if t := m.controller.CurrentTrack(); t != nil {
		id = t.ID
	}
	m.results.SetPlayingID(id)
}

// layout distributes the window between the main panel, queue panel and
// player bar.
func (m *Model) layout() {
	queueWidth := m.width / 3
	if queueWidth > 44 {
		queueWidth = 44
	}
	if queueWidth < 24 {
		queueWidth = 24
	}
	mainWidth := m.width - queueWidth

	// header + search line + error/help line + player bar
	contentHeight := m.height - 3 - playerbar.Height
	if contentHeight < 0 {
		contentHeight = 0
	}

	m.mainWidth = mainWidth
	m.contentHeight = contentHeight
	m.results.SetSize(mainWidth-4, contentHeight-2)
	m.queuePanel.SetSize(queueWidth, contentHeight)
}
