package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/raaga-player/raaga/internal/icons"
	"github.com/raaga-player/raaga/internal/ui/playerbar"
	"github.com/raaga-player/raaga/internal/ui/render"
	"github.com/raaga-player/raaga/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()
	main := m.renderMainPanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, m.queuePanel.View())
	status := m.renderStatusLine()
	bar := playerbar.Render(playerbar.NewState(m.controller, m.library.IsLiked), m.width)

	return header + "\n" + body + "\n" + status + "\n" + bar
}

// renderHeader renders the tab bar across the top.
func (m Model) renderHeader() string {
	tabs := []ViewMode{ViewSearch, ViewLiked, ViewRecent, ViewPlaylists}
	var parts []string
	for _, v := range tabs {
		label := v.String()
		current := m.view == v || (v == ViewPlaylists && m.view == ViewPlaylistTracks)
		if current {
			parts = append(parts, styles.HeaderStyle().Render(label))
		} else {
			parts = append(parts, styles.DimStyle().Render(label))
		}
	}
	left := " " + strings.Join(parts, "  ·  ")
	right := styles.DimStyle().Render("] switch · / search · q quit ")
	return render.Row(left, right, m.width)
}

func (m Model) renderMainPanel() string {
	innerWidth := m.mainWidth - 2

	var content string
	switch m.focus {
	case FocusPrompt:
		content = m.renderPrompt(innerWidth)
	case FocusPicker:
		content = m.renderPicker(innerWidth)
	default:
		switch m.view {
		case ViewSearch:
			content = m.renderSearchView(innerWidth)
		case ViewPlaylists:
			content = m.renderPlaylistsView(innerWidth)
		default:
			content = m.renderListView(innerWidth)
		}
	}

	focused := m.focus != FocusQueue
	return styles.PanelStyle(focused).
		Width(innerWidth).
		Height(m.contentHeight - 2).
		Render(content)
}

func (m Model) renderSearchView(innerWidth int) string {
	input := icons.Search() + " " + m.searchInput.View()
	body := input + "\n" + render.Separator(innerWidth)

	switch {
	case m.searching:
		body += "\n" + styles.DimStyle().Render("  searching...")
	case m.results.Len() > 0:
		body += "\n" + m.results.View()
	default:
		body += "\n" + m.renderSearchHistory(innerWidth)
	}
	return body
}

// renderSearchHistory lists recent queries when there is nothing else to
// show.
func (m Model) renderSearchHistory(innerWidth int) string {
	history := m.library.SearchHistory()
	if len(history) == 0 {
		return styles.DimStyle().Render("  type to search")
	}

	lines := []string{styles.DimStyle().Render("  recent searches")}
	for _, q := range history {
		lines = append(lines, "    "+render.Truncate(q, innerWidth-4))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderListView(innerWidth int) string {
	title := m.view.String()
	if m.view == ViewPlaylistTracks {
		for _, pl := range m.library.Playlists() {
			if pl.ID == m.activePlaylistID {
				title = pl.Name
				break
			}
		}
	}
	header := styles.HeaderStyle().Render(title)
	return header + "\n" + render.Separator(innerWidth) + "\n" + m.results.View()
}

func (m Model) renderPlaylistsView(innerWidth int) string {
	header := styles.HeaderStyle().Render("Playlists")
	body := header + "\n" + render.Separator(innerWidth)

	playlists := m.library.Playlists()
	if len(playlists) == 0 {
		return body + "\n" + styles.DimStyle().Render("  no playlists · press 'c' to create one")
	}

	for i, pl := range playlists {
		line := fmt.Sprintf("  %s %s", pl.Name, styles.DimStyle().Render(fmt.Sprintf("(%d tracks)", len(pl.Tracks))))
		if i == m.playlistCursor {
			line = styles.SelectedStyle().Render(render.TruncateAndPad(fmt.Sprintf("  %s (%d tracks)", pl.Name, len(pl.Tracks)), innerWidth))
		}
		body += "\n" + line
	}
	return body
}

func (m Model) renderPrompt(innerWidth int) string {
	header := styles.HeaderStyle().Render("New playlist")
	return header + "\n" + render.Separator(innerWidth) + "\n  " + m.promptInput.View()
}

func (m Model) renderPicker(innerWidth int) string {
	title := "Add to playlist"
	if m.pickerTrack != nil {
		title = "Add '" + render.Truncate(m.pickerTrack.Title, innerWidth/2) + "' to playlist"
	}
	body := styles.HeaderStyle().Render(title) + "\n" + render.Separator(innerWidth)

	for i, pl := range m.library.Playlists() {
		line := "  " + pl.Name
		if i == m.pickerCursor {
			line = styles.SelectedStyle().Render(render.TruncateAndPad(line, innerWidth))
		}
		body += "\n" + line
	}
	return body
}

// renderStatusLine shows the last error, or contextual key help.
func (m Model) renderStatusLine() string {
	if m.errorMsg != "" {
		return styles.ErrorStyle().Render(render.Truncate(" "+m.errorMsg, m.width))
	}

	var help string
	switch m.focus {
	case FocusQueue:
		help = " enter jump · x remove · tab back"
	case FocusSearchInput:
		help = " enter search · ctrl+x clear history · esc done"
	case FocusPrompt:
		help = " enter create · esc cancel"
	case FocusPicker:
		help = " enter add · esc cancel"
	default:
		help = " enter play · e queue · l like · o album · a playlist · S similar · space pause · n/p skip"
	}
	return styles.DimStyle().Render(render.Truncate(help, m.width))
}
