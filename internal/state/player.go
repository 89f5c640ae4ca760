package state

import (
	"database/sql"
	"errors"
)

// GetPlayer returns the saved player preferences, with defaults when the
// database has never been written.
func (m *Manager) GetPlayer() (*PlayerState, error) {
	var ps PlayerState
	row := m.db.QueryRow(`SELECT volume, muted, shuffle, repeat_mode, theme FROM player_state WHERE id = 1`)
	err := row.Scan(&ps.Volume, &ps.Muted, &ps.Shuffled, &ps.RepeatMode, &ps.Theme)
	if errors.Is(err, sql.ErrNoRows) {
		return &PlayerState{Volume: 1, Theme: "dark"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

// SavePlayer persists the player preferences.
func (m *Manager) SavePlayer(ps PlayerState) error {
	_, err := m.db.Exec(`
		INSERT INTO player_state (id, volume, muted, shuffle, repeat_mode, theme)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted,
			shuffle = excluded.shuffle,
			repeat_mode = excluded.repeat_mode,
			theme = excluded.theme
	`, ps.Volume, ps.Muted, ps.Shuffled, ps.RepeatMode, ps.Theme)
	return err
}
