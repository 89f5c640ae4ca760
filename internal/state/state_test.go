package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/raaga-player/raaga/internal/catalog"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func sampleTrack(id string) catalog.Track {
	return catalog.Track{
		ID:       id,
		Title:    "Title " + id,
		Artists:  "Artist",
		Album:    "Album",
		AlbumID:  "alb-" + id,
		Duration: 3 * time.Minute,
		Images: []catalog.Candidate{
			{Quality: catalog.QualityLow, URL: "small.jpg"},
			{Quality: catalog.QualityHighest, URL: "big.jpg"},
		},
		Streams: []catalog.Candidate{
			{Quality: catalog.QualityHigh, URL: "stream.mp4"},
		},
	}
}

func TestGetLibraryEmpty(t *testing.T) {
	m := openTestManager(t)

	snap, err := m.GetLibrary()
	if err != nil {
		t.Fatalf("GetLibrary failed: %v", err)
	}
	if len(snap.Liked) != 0 || len(snap.Recent) != 0 || len(snap.Playlists) != 0 || len(snap.SearchHistory) != 0 {
		t.Errorf("fresh database should yield an empty snapshot, got %+v", snap)
	}
}

func TestSaveLoadLibraryRoundTrip(t *testing.T) {
	m := openTestManager(t)

	saved := LibrarySnapshot{
		Liked:  []catalog.Track{sampleTrack("l1"), sampleTrack("l2")},
		Recent: []catalog.Track{sampleTrack("r1")},
		Playlists: []Playlist{
			{
				ID:        "p1",
				Name:      "Workout",
				CreatedAt: time.Unix(1700000000, 0),
				Tracks:    []catalog.Track{sampleTrack("pt1"), sampleTrack("pt2")},
			},
		},
		SearchHistory: []string{"query one", "query two"},
	}

	if err := m.SaveLibrary(saved); err != nil {
		t.Fatalf("SaveLibrary failed: %v", err)
	}

	loaded, err := m.GetLibrary()
	if err != nil {
		t.Fatalf("GetLibrary failed: %v", err)
	}

	if len(loaded.Liked) != 2 || loaded.Liked[0].ID != "l1" || loaded.Liked[1].ID != "l2" {
		t.Errorf("Liked round trip failed: %+v", loaded.Liked)
	}
	if len(loaded.Recent) != 1 || loaded.Recent[0].ID != "r1" {
		t.Errorf("Recent round trip failed: %+v", loaded.Recent)
	}
	if len(loaded.SearchHistory) != 2 || loaded.SearchHistory[0] != "query one" {
		t.Errorf("SearchHistory round trip failed: %v", loaded.SearchHistory)
	}

	if len(loaded.Playlists) != 1 {
		t.Fatalf("got %d playlists, want 1", len(loaded.Playlists))
	}
	p := loaded.Playlists[0]
	if p.ID != "p1" || p.Name != "Workout" {
		t.Errorf("playlist = %+v", p)
	}
	if !p.CreatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("CreatedAt = %v, want unix 1700000000", p.CreatedAt)
	}
	if len(p.Tracks) != 2 || p.Tracks[0].ID != "pt1" {
		t.Errorf("playlist tracks = %+v", p.Tracks)
	}

	got := loaded.Liked[0]
	if got.Title != "Title l1" || got.Artists != "Artist" || got.Album != "Album" || got.AlbumID != "alb-l1" {
		t.Errorf("track fields lost in round trip: %+v", got)
	}
	if got.Duration != 3*time.Minute {
		t.Errorf("Duration = %v, want 3m", got.Duration)
	}
	if len(got.Images) != 2 || got.Images[1].URL != "big.jpg" {
		t.Errorf("Images = %+v", got.Images)
	}
	if len(got.Streams) != 1 || got.Streams[0].Quality != catalog.QualityHigh {
		t.Errorf("Streams = %+v", got.Streams)
	}
}

func TestSaveLibraryReplacesPrevious(t *testing.T) {
	m := openTestManager(t)

	if err := m.SaveLibrary(LibrarySnapshot{
		Liked:         []catalog.Track{sampleTrack("old")},
		SearchHistory: []string{"old query"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveLibrary(LibrarySnapshot{
		Liked: []catalog.Track{sampleTrack("new")},
	}); err != nil {
		t.Fatal(err)
	}

	loaded, err := m.GetLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Liked) != 1 || loaded.Liked[0].ID != "new" {
		t.Errorf("Liked = %+v, want only the new track", loaded.Liked)
	}
	if len(loaded.SearchHistory) != 0 {
		t.Errorf("SearchHistory = %v, want cleared", loaded.SearchHistory)
	}
}

func TestGetPlayerDefaults(t *testing.T) {
	m := openTestManager(t)

	ps, err := m.GetPlayer()
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if ps.Volume != 1 {
		t.Errorf("default Volume = %v, want 1", ps.Volume)
	}
	if ps.Theme != "dark" {
		t.Errorf("default Theme = %q, want dark", ps.Theme)
	}
	if ps.Muted || ps.Shuffled || ps.RepeatMode != 0 {
		t.Errorf("defaults = %+v", ps)
	}
}

func TestSaveLoadPlayerRoundTrip(t *testing.T) {
	m := openTestManager(t)

	saved := PlayerState{
		Volume:     0.35,
		Muted:      true,
		Shuffled:   true,
		RepeatMode: 2,
		Theme:      "light",
	}
	if err := m.SavePlayer(saved); err != nil {
		t.Fatalf("SavePlayer failed: %v", err)
	}

	loaded, err := m.GetPlayer()
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if *loaded != saved {
		t.Errorf("round trip = %+v, want %+v", *loaded, saved)
	}
}

func TestSavePlayerUpserts(t *testing.T) {
	m := openTestManager(t)

	if err := m.SavePlayer(PlayerState{Volume: 0.5, Theme: "dark"}); err != nil {
		t.Fatal(err)
	}
	if err := m.SavePlayer(PlayerState{Volume: 0.9, Theme: "light"}); err != nil {
		t.Fatal(err)
	}

	loaded, err := m.GetPlayer()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Volume != 0.9 || loaded.Theme != "light" {
		t.Errorf("loaded = %+v, want second save to win", loaded)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	m, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SaveLibrary(LibrarySnapshot{Liked: []catalog.Track{sampleTrack("keep")}}); err != nil {
		t.Fatal(err)
	}
	m.Close()

	m2, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m2.Close()

	loaded, err := m2.GetLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Liked) != 1 || loaded.Liked[0].ID != "keep" {
		t.Errorf("Liked after reopen = %+v", loaded.Liked)
	}
}
