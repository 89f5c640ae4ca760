package state

import "database/sql"

// Mock is a test double for Manager.
type Mock struct {
	library   *LibrarySnapshot
	player    *PlayerState
	saveErr   error
	saveCalls int
	lastSaved *LibrarySnapshot
	closed    bool
}

// NewMock creates a new mock state store for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetLibrary() (*LibrarySnapshot, error) {
	if m.library == nil {
		return &LibrarySnapshot{}, nil
	}
	return m.library, nil
}

func (m *Mock) SaveLibrary(snap LibrarySnapshot) error {
	m.saveCalls++
	m.lastSaved = &snap
	return m.saveErr
}

func (m *Mock) GetPlayer() (*PlayerState, error) {
	if m.player == nil {
		return &PlayerState{Volume: 1, Theme: "dark"}, nil
	}
	return m.player, nil
}

func (m *Mock) SavePlayer(ps PlayerState) error {
	m.player = &ps
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetLibrary(snap *LibrarySnapshot) { m.library = snap }

func (m *Mock) SetSaveError(err error) { m.saveErr = err }

func (m *Mock) SaveCalls() int { return m.saveCalls }

func (m *Mock) LastSaved() *LibrarySnapshot { return m.lastSaved }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
