// Package tracklist is a scrollable cursor list over tracks, shared by the
// search results and library views.
package tracklist

import (
	"fmt"

	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/icons"
	"github.com/raaga-player/raaga/internal/ui/render"
	"github.com/raaga-player/raaga/internal/ui/styles"
)

// Model holds the list state.
type Model struct {
	tracks []catalog.Track
	cursor int
	offset int
	width  int
	height int

	// playingID marks the row rendered with the play indicator.
	playingID string
	// likedFn reports whether a row gets the liked marker. May be nil.
	likedFn func(id string) bool
}

// New creates an empty list.
func New() Model {
	return Model{}
}

// SetTracks replaces the list contents, clamping the cursor.
func (m *Model) SetTracks(tracks []catalog.Track) {
	m.tracks = tracks
	if m.cursor >= len(tracks) {
		m.cursor = len(tracks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

// Tracks returns the list contents.
func (m Model) Tracks() []catalog.Track { return m.tracks }

// Len returns the number of rows.
func (m Model) Len() int { return len(m.tracks) }

// Cursor returns the cursor index.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the track under the cursor, or nil.
func (m Model) Selected() *catalog.Track {
	if m.cursor < 0 || m.cursor >= len(m.tracks) {
		return nil
	}
	t := m.tracks[m.cursor]
	return &t
}

// SetSize sets the visible dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// SetPlayingID marks the row with the given track id as playing.
func (m *Model) SetPlayingID(id string) { m.playingID = id }

// SetLikedFn installs the liked-marker predicate.
func (m *Model) SetLikedFn(fn func(id string) bool) { m.likedFn = fn }

// MoveUp moves the cursor up one row.
func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.clampOffset()
}

// MoveDown moves the cursor down one row.
func (m *Model) MoveDown() {
	if m.cursor < len(m.tracks)-1 {
		m.cursor++
	}
	m.clampOffset()
}

// MoveTop jumps to the first row.
func (m *Model) MoveTop() {
	m.cursor = 0
	m.clampOffset()
}

// MoveBottom jumps to the last row.
func (m *Model) MoveBottom() {
	if len(m.tracks) > 0 {
		m.cursor = len(m.tracks) - 1
	}
	m.clampOffset()
}

func (m *Model) clampOffset() {
	if m.height <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the visible rows.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if len(m.tracks) == 0 {
		return styles.DimStyle().Render("  nothing here yet")
	}

	out := ""
	end := m.offset + m.height
	if end > len(m.tracks) {
		end = len(m.tracks)
	}
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			out += "\n"
		}
		out += m.renderRow(i)
	}
	return out
}

func (m Model) renderRow(i int) string {
	t := m.tracks[i]

	marker := "  "
	if t.ID == m.playingID && m.playingID != "" {
		marker = icons.Play() + " "
	}

	liked := ""
	if m.likedFn != nil && m.likedFn(t.ID) {
		liked = " " + icons.Liked()
	}

	duration := ""
	if t.Duration > 0 {
		total := int(t.Duration.Seconds())
		duration = fmt.Sprintf("%d:%02d", total/60, total%60)
	}

	title := render.Truncate(t.Title, m.width/2) + liked
	artists := render.Truncate(t.Artists, m.width/3)

	if i == m.cursor {
		line := render.Row(marker+title+"  "+artists, duration, m.width)
		return styles.SelectedStyle().Render(render.TruncateAndPad(line, m.width))
	}
	left := marker + title + "  " + styles.DimStyle().Render(artists)
	return render.Row(left, styles.DimStyle().Render(duration), m.width)
}
