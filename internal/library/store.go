// Package library manages the user's liked tracks, recent plays, playlists
// and search history, persisting every mutation write-through.
package library

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/state"
	"github.com/raaga-player/raaga/internal/transport"
)

const (
	maxRecent        = 50
	maxSearchHistory = 10
)

// Store holds the in-memory library and writes it through to the state store
// after every mutation.
type Store struct {
	mu     sync.Mutex
	states state.Interface
	log    *log.Logger
	snap   state.LibrarySnapshot
}

// NewStore loads the persisted library and returns a store over it.
func NewStore(st state.Interface, logger *log.Logger) (*Store, error) {
	snap, err := st.GetLibrary()
	if err != nil {
		return nil, err
	}
	return &Store{states: st, log: logger, snap: *snap}, nil
}

// Verify Store satisfies the transport history hook at compile time.
var _ transport.History = (*Store)(nil)

func (s *Store) save() error {
	return s.states.SaveLibrary(s.snap)
}

// Liked returns the liked tracks, newest first.
func (s *Store) Liked() []catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Track(nil), s.snap.Liked...)
}

// Recent returns the recent plays, most recent first.
func (s *Store) Recent() []catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Track(nil), s.snap.Recent...)
}

// Playlists returns all playlists in creation order.
func (s *Store) Playlists() []state.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]state.Playlist, len(s.snap.Playlists))
	for i, p := range s.snap.Playlists {
		out[i] = p
		out[i].Tracks = append([]catalog.Track(nil), p.Tracks...)
	}
	return out
}

// SearchHistory returns past search queries, most recent first.
func (s *Store) SearchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.snap.SearchHistory...)
}

// IsLiked reports whether the track id is in the liked set.
func (s *Store) IsLiked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.snap.Liked {
		if t.ID == id {
			return true
		}
	}
	return false
}

// ToggleLiked adds the track to the liked set, or removes it when already
// present. Returns true when the track is liked after the call.
func (s *Store) ToggleLiked(track catalog.Track) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.snap.Liked {
		if t.ID == track.ID {
			s.snap.Liked = append(s.snap.Liked[:i], s.snap.Liked[i+1:]...)
			return false, s.save()
		}
	}
	s.snap.Liked = append([]catalog.Track{track}, s.snap.Liked...)
	return true, s.save()
}

// RecordPlay front-inserts the track into recent plays, deduplicating by id
// and keeping at most 50 entries.
func (s *Store) RecordPlay(track catalog.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]catalog.Track, 0, len(s.snap.Recent)+1)
	recent = append(recent, track)
	for _, t := range s.snap.Recent {
		if t.ID == track.ID {
			continue
		}
		recent = append(recent, t)
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	s.snap.Recent = recent

	if err := s.save(); err != nil {
		s.log.Error("save recent plays", "err", err)
	}
}

// CreatePlaylist creates an empty playlist with a fresh id.
func (s *Store) CreatePlaylist(name string) (state.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := state.Playlist{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.snap.Playlists = append(s.snap.Playlists, p)
	return p, s.save()
}

// DeletePlaylist removes the playlist. Unknown ids are a no-op.
func (s *Store) DeletePlaylist(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.snap.Playlists {
		if p.ID == id {
			s.snap.Playlists = append(s.snap.Playlists[:i], s.snap.Playlists[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// AddToPlaylist appends the track to the playlist, skipping duplicates.
// Unknown playlist ids are a no-op.
func (s *Store) AddToPlaylist(playlistID string, track catalog.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Playlists {
		if s.snap.Playlists[i].ID != playlistID {
			continue
		}
		for _, t := range s.snap.Playlists[i].Tracks {
			if t.ID == track.ID {
				return nil
			}
		}
		s.snap.Playlists[i].Tracks = append(s.snap.Playlists[i].Tracks, track)
		return s.save()
	}
	return nil
}

// RemoveFromPlaylist removes the track from the playlist. Unknown playlist
// or track ids are a no-op.
func (s *Store) RemoveFromPlaylist(playlistID, trackID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Playlists {
		if s.snap.Playlists[i].ID != playlistID {
			continue
		}
		tracks := s.snap.Playlists[i].Tracks
		for j, t := range tracks {
			if t.ID == trackID {
				s.snap.Playlists[i].Tracks = append(tracks[:j], tracks[j+1:]...)
				return s.save()
			}
		}
		return nil
	}
	return nil
}

// RecordSearch front-inserts the query into search history, deduplicating
// and keeping at most 10 entries. Blank queries are ignored.
func (s *Store) RecordSearch(query string) error {
	if query == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]string, 0, len(s.snap.SearchHistory)+1)
	history = append(history, query)
	for _, q := range s.snap.SearchHistory {
		if q == query {
			continue
		}
		history = append(history, q)
	}
	if len(history) > maxSearchHistory {
		history = history[:maxSearchHistory]
	}
	s.snap.SearchHistory = history
	return s.save()
}

// ClearSearchHistory drops all recorded queries.
func (s *Store) ClearSearchHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.SearchHistory = nil
	return s.save()
}
