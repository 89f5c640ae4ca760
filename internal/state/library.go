package state

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/raaga-player/raaga/internal/catalog"
	dbutil "github.com/raaga-player/raaga/internal/db"
)

// candidateRow is the JSON shape used for tiered URL columns.
type candidateRow struct {
	Quality int    `json:"quality"`
	URL     string `json:"url"`
}

func marshalCandidates(cands []catalog.Candidate) (string, error) {
	rows := make([]candidateRow, len(cands))
	for i, c := range cands {
		rows[i] = candidateRow{Quality: int(c.Quality), URL: c.URL}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalCandidates(data string) ([]catalog.Candidate, error) {
	var rows []candidateRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cands := make([]catalog.Candidate, len(rows))
	for i, r := range rows {
		cands[i] = catalog.Candidate{Quality: catalog.Quality(r.Quality), URL: r.URL}
	}
	return cands, nil
}

// GetLibrary loads the persisted library subset. Missing tables yield an
// empty snapshot, not an error.
func (m *Manager) GetLibrary() (*LibrarySnapshot, error) {
	snap := &LibrarySnapshot{}

	var err error
	if snap.Liked, err = m.loadTracks(`SELECT id, title, artists, album, album_id, duration_ms, images, streams FROM liked_tracks ORDER BY position`); err != nil {
		return nil, err
	}
	if snap.Recent, err = m.loadTracks(`SELECT id, title, artists, album, album_id, duration_ms, images, streams FROM recent_tracks ORDER BY position`); err != nil {
		return nil, err
	}
	if snap.Playlists, err = m.loadPlaylists(); err != nil {
		return nil, err
	}

	rows, err := m.db.Query(`SELECT query FROM search_history ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		snap.SearchHistory = append(snap.SearchHistory, q)
	}
	return snap, rows.Err()
}

func (m *Manager) loadTracks(query string) ([]catalog.Track, error) {
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []catalog.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (m *Manager) loadPlaylists() ([]Playlist, error) {
	rows, err := m.db.Query(`SELECT id, name, created_at FROM playlists ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(createdAt, 0)
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range playlists {
		tracks, err := m.loadPlaylistTracks(playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Tracks = tracks
	}
	return playlists, nil
}

func (m *Manager) loadPlaylistTracks(playlistID string) ([]catalog.Track, error) {
	rows, err := m.db.Query(`
		SELECT id, title, artists, album, album_id, duration_ms, images, streams
		FROM playlist_tracks WHERE playlist_id = ? ORDER BY position
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []catalog.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func scanTrack(rows *sql.Rows) (catalog.Track, error) {
	var t catalog.Track
	var album sql.NullString
	var durationMS int64
	var images, streams string

	if err := rows.Scan(&t.ID, &t.Title, &t.Artists, &album, &t.AlbumID, &durationMS, &images, &streams); err != nil {
		return t, err
	}
	t.Album = album.String
	t.Duration = time.Duration(durationMS) * time.Millisecond

	var err error
	if t.Images, err = unmarshalCandidates(images); err != nil {
		return t, err
	}
	if t.Streams, err = unmarshalCandidates(streams); err != nil {
		return t, err
	}
	return t, nil
}

// SaveLibrary rewrites the persisted library subset in one transaction.
func (m *Manager) SaveLibrary(snap LibrarySnapshot) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		for _, table := range []string{"liked_tracks", "recent_tracks", "playlist_tracks", "playlists", "search_history"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return err
			}
		}

		if err := insertTracks(tx, "liked_tracks", snap.Liked); err != nil {
			return err
		}
		if err := insertTracks(tx, "recent_tracks", snap.Recent); err != nil {
			return err
		}

		for _, p := range snap.Playlists {
			_, err := tx.Exec(`INSERT INTO playlists (id, name, created_at) VALUES (?, ?, ?)`,
				p.ID, p.Name, p.CreatedAt.Unix())
			if err != nil {
				return err
			}
			if err := insertPlaylistTracks(tx, p.ID, p.Tracks); err != nil {
				return err
			}
		}

		for i, q := range snap.SearchHistory {
			if _, err := tx.Exec(`INSERT INTO search_history (position, query) VALUES (?, ?)`, i, q); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertTracks(tx *sql.Tx, table string, tracks []catalog.Track) error {
	stmt, err := tx.Prepare(`
		INSERT INTO ` + table + ` (position, id, title, artists, album, album_id, duration_ms, images, streams)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tracks {
		images, err := marshalCandidates(t.Images)
		if err != nil {
			return err
		}
		streams, err := marshalCandidates(t.Streams)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(i, t.ID, t.Title, t.Artists, t.Album, t.AlbumID, t.Duration.Milliseconds(), images, streams)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPlaylistTracks(tx *sql.Tx, playlistID string, tracks []catalog.Track) error {
	stmt, err := tx.Prepare(`
		INSERT INTO playlist_tracks (playlist_id, position, id, title, artists, album, album_id, duration_ms, images, streams)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tracks {
		images, err := marshalCandidates(t.Images)
		if err != nil {
			return err
		}
		streams, err := marshalCandidates(t.Streams)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(playlistID, i, t.ID, t.Title, t.Artists, t.Album, t.AlbumID, t.Duration.Milliseconds(), images, streams)
		if err != nil {
			return err
		}
	}
	return nil
}
