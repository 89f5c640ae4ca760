// Package queuepanel renders the play queue and handles its cursor.
package queuepanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/icons"
	"github.com/raaga-player/raaga/internal/queue"
	"github.com/raaga-player/raaga/internal/ui/render"
	"github.com/raaga-player/raaga/internal/ui/styles"
)

// JumpToTrackMsg is sent when the user selects a queue entry to play.
type JumpToTrackMsg struct {
	Index int
}

// RemoveTrackMsg is sent when the user removes a queue entry.
type RemoveTrackMsg struct {
	Index int
}

// Model represents the queue panel state.
type Model struct {
	tracks   []catalog.Track
	playing  int
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	shuffled bool
	repeat   queue.RepeatMode
}

// New creates an empty queue panel.
func New() Model {
	return Model{playing: -1}
}

// SetQueue replaces the panel contents.
func (m *Model) SetQueue(tracks []catalog.Track, playing int) {
	m.tracks = tracks
	m.playing = playing
	if m.cursor >= len(tracks) {
		m.cursor = len(tracks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

// SetModes updates the shuffle/repeat indicators.
func (m *Model) SetModes(shuffled bool, repeat queue.RepeatMode) {
	m.shuffled = shuffled
	m.repeat = repeat
}

// SetFocused sets whether the panel receives key input.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// IsFocused returns whether the panel is focused.
func (m Model) IsFocused() bool { return m.focused }

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// Cursor returns the cursor index.
func (m Model) Cursor() int { return m.cursor }

// Update handles key messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampOffset()
	case "down", "j":
		if m.cursor < len(m.tracks)-1 {
			m.cursor++
		}
		m.clampOffset()
	case "g":
		m.cursor = 0
		m.clampOffset()
	case "G":
		if len(m.tracks) > 0 {
			m.cursor = len(m.tracks) - 1
		}
		m.clampOffset()
	case "enter":
		if m.cursor < len(m.tracks) {
			index := m.cursor
			return m, func() tea.Msg { return JumpToTrackMsg{Index: index} }
		}
	case "x", "delete":
		if m.cursor < len(m.tracks) {
			index := m.cursor
			return m, func() tea.Msg { return RemoveTrackMsg{Index: index} }
		}
	}
	return m, nil
}

func (m *Model) clampOffset() {
	listHeight := m.listHeight()
	if listHeight <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the row count available after header, separator and border.
func (m Model) listHeight() int {
	return m.height - 4
}

// View renders the queue panel.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	innerWidth := m.width - 2

	playing := m.playing + 1
	if playing < 1 {
		playing = 0
	}
	header := render.Row(
		styles.HeaderStyle().Render(fmt.Sprintf("Queue (%d/%d)", playing, len(m.tracks))),
		m.renderModeIcons(),
		innerWidth,
	)

	content := header + "\n" + render.Separator(innerWidth) + "\n" + m.renderTrackList(innerWidth)

	return styles.PanelStyle(m.focused).
		Width(innerWidth).
		Render(content)
}

func (m Model) renderModeIcons() string {
	var parts []string
	if m.shuffled {
		parts = append(parts, icons.Shuffle())
	}
	switch m.repeat {
	case queue.RepeatOff:
	case queue.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case queue.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	}
	return styles.DimStyle().Render(strings.Join(parts, "  "))
}

func (m Model) renderTrackList(innerWidth int) string {
	listHeight := m.listHeight()
	if listHeight <= 0 {
		return ""
	}
	if len(m.tracks) == 0 {
		return styles.DimStyle().Render("  queue is empty")
	}

	var rows []string
	end := m.offset + listHeight
	if end > len(m.tracks) {
		end = len(m.tracks)
	}
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(i, innerWidth))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(i, innerWidth int) string {
	t := m.tracks[i]

	marker := "  "
	if i == m.playing {
		marker = icons.Play() + " "
	}
	line := fmt.Sprintf("%s%s · %s", marker, t.Title, t.Artists)

	if i == m.cursor && m.focused {
		return styles.SelectedStyle().Render(render.TruncateAndPad(line, innerWidth))
	}
	if i == m.playing {
		return styles.HeaderStyle().Render(render.TruncateAndPad(line, innerWidth))
	}
	return render.TruncateAndPad(line, innerWidth)
}
