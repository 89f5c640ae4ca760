// Package logging configures the application logger. Log output goes to a
// file because stderr belongs to the terminal UI.
package logging

import (
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// New creates a logger writing to the given writer, defaulting to os.Stderr.
func New(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, Prefix: "raaga"}
	return log.NewWithOptions(w, opts)
}

// OpenFile creates a logger appending to the default log file under the XDG
// state directory. The returned closer must be closed on shutdown.
func OpenFile() (*log.Logger, io.Closer, error) {
	path, err := xdg.StateFile("raaga/raaga.log")
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return New(io.Discard)
}
