// Package app contains the root TUI model and its messages.
package app

import (
	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/transport"
)

// Transport event wrappers. One watch command listens on the subscription
// and converts whatever arrives into a tea.Msg; Update re-arms the watch.

// StateChangedMsg mirrors transport.StateChange.
type StateChangedMsg transport.StateChange

// TrackChangedMsg mirrors transport.TrackChange.
type TrackChangedMsg transport.TrackChange

// PositionChangedMsg mirrors transport.PositionChange.
type PositionChangedMsg transport.PositionChange

// QueueChangedMsg mirrors transport.QueueChange.
type QueueChangedMsg transport.QueueChange

// ModeChangedMsg mirrors transport.ModeChange.
type ModeChangedMsg transport.ModeChange

// VolumeChangedMsg mirrors transport.VolumeChange.
type VolumeChangedMsg transport.VolumeChange

// PlayerErrorMsg mirrors transport.ErrorEvent.
type PlayerErrorMsg transport.ErrorEvent

// TransportClosedMsg is sent when the controller shuts down.
type TransportClosedMsg struct{}

// SearchDebounceMsg fires after the debounce window. Version identifies the
// keystroke that armed it; stale versions are ignored.
type SearchDebounceMsg struct {
	Version int
}

// SearchResultsMsg delivers catalog search results.
type SearchResultsMsg struct {
	Query  string
	Tracks []catalog.Track
}

// SearchErrorMsg delivers a failed catalog search.
type SearchErrorMsg struct {
	Query string
	Err   error
}

// AlbumTracksMsg delivers the tracks of an opened album.
type AlbumTracksMsg struct {
	AlbumID string
	Tracks  []catalog.Track
}

// AlbumErrorMsg delivers a failed album fetch.
type AlbumErrorMsg struct {
	Err error
}

// SuggestionsMsg delivers related tracks for the browse action.
type SuggestionsMsg struct {
	SourceID string
	Tracks   []catalog.Track
}

// SuggestionsErrorMsg delivers a failed suggestions fetch.
type SuggestionsErrorMsg struct {
	Err error
}
