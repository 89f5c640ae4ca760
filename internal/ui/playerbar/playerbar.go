// Package playerbar renders the bottom transport bar: current track,
// progress, volume and mode indicators.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/raaga-player/raaga/internal/icons"
	"github.com/raaga-player/raaga/internal/queue"
	"github.com/raaga-player/raaga/internal/transport"
	"github.com/raaga-player/raaga/internal/ui/render"
	"github.com/raaga-player/raaga/internal/ui/styles"
)

// Height is the rendered bar height: top border + two content rows + bottom
// border.
const Height = 4

// State holds everything needed to render the player bar.
type State struct {
	TransportState transport.State
	Title          string
	Artists        string
	Album          string
	Liked          bool
	Position       time.Duration
	Duration       time.Duration
	Volume         float64
	Muted          bool
	Shuffled       bool
	Repeat         queue.RepeatMode
	QueueIndex     int
	QueueLen       int
}

// NewState snapshots the controller for rendering.
func NewState(c *transport.Controller, liked func(id string) bool) State {
	s := State{
		TransportState: c.State(),
		Position:       c.Position(),
		Duration:       c.Duration(),
		Volume:         c.Volume(),
		Muted:          c.Muted(),
		Shuffled:       c.Shuffled(),
		Repeat:         c.RepeatMode(),
		QueueIndex:     c.QueueIndex(),
		QueueLen:       c.QueueLen(),
	}
	if track := c.CurrentTrack(); track != nil {
		s.Title = track.Title
		s.Artists = track.Artists
		s.Album = track.Album
		if liked != nil {
			s.Liked = liked(track.ID)
		}
	}
	return s
}

// Render returns the player bar for the given width. An empty string is
// returned when nothing is loaded.
func Render(s State, width int) string {
	if s.TransportState == transport.StateStopped && s.Title == "" {
		return ""
	}

	innerWidth := width - 4
	if innerWidth < 10 {
		return ""
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	if s.Liked {
		title += " " + icons.Liked()
	}

	var infoParts []string
	if s.Artists != "" {
		infoParts = append(infoParts, s.Artists)
	}
	if s.Album != "" {
		infoParts = append(infoParts, s.Album)
	}
	info := styles.DimStyle().Render(render.Truncate(strings.Join(infoParts, " · "), innerWidth/2))

	right := renderIndicators(s)
	titleLine := render.Row(
		styles.ApplyGradient(render.Truncate(title, innerWidth/2))+"  "+info,
		right,
		innerWidth,
	)

	progressLine := renderProgress(s, innerWidth)

	return styles.PanelStyle(false).
		Width(innerWidth + 2).
		Padding(0, 1).
		Render(titleLine + "\n" + progressLine)
}

// renderIndicators builds the right-hand cluster: queue position, modes,
// volume.
func renderIndicators(s State) string {
	var parts []string

	if s.QueueLen > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.QueueIndex+1, s.QueueLen))
	}
	if s.Shuffled {
		parts = append(parts, icons.Shuffle())
	}
	switch s.Repeat {
	case queue.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case queue.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	case queue.RepeatOff:
	}

	vol := icons.Volume()
	if s.Muted {
		vol = icons.Muted()
	}
	parts = append(parts, fmt.Sprintf("%s %3d%%", vol, int(s.Volume*100)))

	return styles.DimStyle().Render(strings.Join(parts, "  "))
}

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// renderProgress renders the block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func renderProgress(s State, width int) string {
	status := icons.Play()
	if s.TransportState != transport.StatePlaying {
		status = icons.Pause()
	}

	posStr := formatDuration(s.Position)
	durStr := formatDuration(s.Duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)
	return status + "  " + posStr + "  " + bar + "  " + durStr
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", m/60, m%60, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
