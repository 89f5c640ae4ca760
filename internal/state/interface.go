package state

import "database/sql"

// Interface defines the state store contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	GetLibrary() (*LibrarySnapshot, error)
	SaveLibrary(snap LibrarySnapshot) error
	GetPlayer() (*PlayerState, error)
	SavePlayer(ps PlayerState) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
