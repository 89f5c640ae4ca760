// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Search operations
	OpSearch      Op = "search"
	OpSuggestions Op = "load suggestions"
	OpAlbumLoad   Op = "load album"
	OpTrackLoad   Op = "load track details"

	// Queue operations
	OpQueueSet    Op = "set queue"
	OpQueueAdd    Op = "add to queue"
	OpQueueRemove Op = "remove from queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpStreamResolve Op = "resolve stream"

	// Library operations
	OpLibraryLoad Op = "load library"
	OpLibrarySave Op = "save library"
	OpLikeToggle  Op = "update liked tracks"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"

	// Preferences
	OpPlayerLoad Op = "load player preferences"
	OpPlayerSave Op = "save player preferences"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
