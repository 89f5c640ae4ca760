// Package state persists the library subset and player preferences in
// sqlite. It is loaded once at startup; every mutation of the persisted
// subset writes through immediately.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/raaga-player/raaga/internal/catalog"
)

const (
	appName    = "raaga"
	dbFileName = "raaga.db"
)

// Playlist is a named, ordered collection of tracks.
type Playlist struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Tracks    []catalog.Track
}

// LibrarySnapshot is the persisted library subset.
type LibrarySnapshot struct {
	Liked         []catalog.Track
	Recent        []catalog.Track
	Playlists     []Playlist
	SearchHistory []string
}

// PlayerState holds persisted playback preferences.
type PlayerState struct {
	Volume     float64
	Muted      bool
	Shuffled   bool
	RepeatMode int
	Theme      string
}

// Manager is the sqlite-backed state store.
type Manager struct {
	db *sql.DB
}

// Open opens the state database at the default xdg data location.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the state database at an explicit path. Used by tests.
func OpenPath(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// DB exposes the underlying database handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}
