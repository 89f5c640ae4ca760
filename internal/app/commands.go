package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const searchTimeout = 15 * time.Second

// watchTransport returns a command that waits for the next controller event.
// It listens on all subscription channels and converts events to tea.Msg.
func (m Model) watchTransport() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return TrackChangedMsg(e)
		case e := <-sub.PositionChanged:
			return PositionChangedMsg(e)
		case e := <-sub.QueueChanged:
			return QueueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ModeChangedMsg(e)
		case e := <-sub.VolumeChanged:
			return VolumeChangedMsg(e)
		case e := <-sub.Error:
			return PlayerErrorMsg(e)
		case <-sub.Done:
			return TransportClosedMsg{}
		}
	}
}

// debounceCmd arms the search debounce window for one keystroke version.
func debounceCmd(version int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return SearchDebounceMsg{Version: version}
	})
}

// searchCmd runs a catalog search in the background.
func (m Model) searchCmd(query string) tea.Cmd {
	client := m.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		tracks, err := client.SearchTracks(ctx, query)
		if err != nil {
			return SearchErrorMsg{Query: query, Err: err}
		}
		return SearchResultsMsg{Query: query, Tracks: tracks}
	}
}

// albumCmd fetches the full track list of an album.
func (m Model) albumCmd(albumID string) tea.Cmd {
	client := m.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		tracks, err := client.AlbumTracks(ctx, albumID)
		if err != nil {
			return AlbumErrorMsg{Err: err}
		}
		return AlbumTracksMsg{AlbumID: albumID, Tracks: tracks}
	}
}

// suggestionsCmd fetches tracks related to the given one.
func (m Model) suggestionsCmd(trackID string) tea.Cmd {
	client := m.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		tracks, err := client.Suggestions(ctx, trackID)
		if err != nil {
			return SuggestionsErrorMsg{Err: err}
		}
		return SuggestionsMsg{SourceID: trackID, Tracks: tracks}
	}
}
