package state

import (
	"database/sql"
)

const currentSchemaVersion = 3

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS liked_tracks (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			artists TEXT NOT NULL,
			album TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			images TEXT NOT NULL DEFAULT '[]',
			streams TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS recent_tracks (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			artists TEXT NOT NULL,
			album TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			images TEXT NOT NULL DEFAULT '[]',
			streams TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			artists TEXT NOT NULL,
			album TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			images TEXT NOT NULL DEFAULT '[]',
			streams TEXT NOT NULL DEFAULT '[]',
			UNIQUE(playlist_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist
			ON playlist_tracks(playlist_id, position);

		CREATE TABLE IF NOT EXISTS search_history (
			position INTEGER PRIMARY KEY,
			query TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL DEFAULT 1,
			muted INTEGER NOT NULL DEFAULT 0,
			shuffle INTEGER NOT NULL DEFAULT 0,
			repeat_mode INTEGER NOT NULL DEFAULT 0,
			theme TEXT NOT NULL DEFAULT 'dark'
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: add theme column if missing
	_, _ = db.Exec(`ALTER TABLE player_state ADD COLUMN theme TEXT NOT NULL DEFAULT 'dark'`)

	// Migration: add album_id to track tables created before version 3
	for _, table := range []string{"liked_tracks", "recent_tracks", "playlist_tracks"} {
		_, _ = db.Exec(`ALTER TABLE ` + table + ` ADD COLUMN album_id TEXT NOT NULL DEFAULT ''`)
	}

	return nil
}
