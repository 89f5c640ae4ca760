package transport

import (
	"time"

	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/queue"
)

// State is the user-visible transport state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// ErrorKind classifies playback failures.
type ErrorKind int

const (
	// ResolutionFailure: no playable URL could be found for the track. The
	// queue position is kept; the controller never auto-skips, since
	// skipping silently could loop forever over a broken catalog.
	ResolutionFailure ErrorKind = iota
	// PlaybackError: the engine reported a failure after a successful bind.
	// The current track stays selected so the user can retry or skip.
	PlaybackError
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ResolutionFailure:
		return "resolution failure"
	case PlaybackError:
		return "playback error"
	default:
		return "unknown"
	}
}

// StateChange is emitted when the transport state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when the current track changes. Current is nil
// when the queue becomes empty.
type TrackChange struct {
	Previous      *catalog.Track
	Current       *catalog.Track
	PreviousIndex int
	Index         int
}

// PositionChange is emitted on position updates and seeks.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// QueueChange is emitted when the queue contents change.
type QueueChange struct {
	Tracks []catalog.Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode queue.RepeatMode
	Shuffled   bool
}

// VolumeChange is emitted when volume or mute state changes.
type VolumeChange struct {
	Volume float64
	Muted  bool
}

// ErrorEvent is emitted when playback fails. The queue and library are
// never cleared by an error.
type ErrorEvent struct {
	Kind  ErrorKind
	Track *catalog.Track
	Err   error
}
