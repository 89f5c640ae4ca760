// Package styles defines the shared color themes and panel styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette.
type Theme struct {
	Name string

	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Border    lipgloss.Color
	Selection lipgloss.Color
	Error     lipgloss.Color
}

var (
	darkTheme = Theme{
		Name:      "dark",
		Accent:    lipgloss.Color("#7aa2f7"),
		AccentAlt: lipgloss.Color("#bb9af7"),
		Text:      lipgloss.Color("#c0caf5"),
		Dim:       lipgloss.Color("240"),
		Border:    lipgloss.Color("240"),
		Selection: lipgloss.Color("#283457"),
		Error:     lipgloss.Color("#f7768e"),
	}

	lightTheme = Theme{
		Name:      "light",
		Accent:    lipgloss.Color("#2e7de9"),
		AccentAlt: lipgloss.Color("#9854f1"),
		Text:      lipgloss.Color("#3760bf"),
		Dim:       lipgloss.Color("245"),
		Border:    lipgloss.Color("249"),
		Selection: lipgloss.Color("#b7c1e3"),
		Error:     lipgloss.Color("#f52a65"),
	}

	active = darkTheme
)

// SetTheme selects the active theme by name. Unknown names select dark.
func SetTheme(name string) {
	if name == "light" {
		active = lightTheme
	} else {
		active = darkTheme
	}
}

// Active returns the active theme.
func Active() Theme { return active }

// PanelStyle returns the bordered panel style, highlighted when focused.
func PanelStyle(focused bool) lipgloss.Style {
	border := active.Border
	if focused {
		border = active.Accent
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// HeaderStyle returns the style for panel headers.
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(active.Accent).Bold(true)
}

// DimStyle returns the style for secondary text.
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(active.Dim)
}

// SelectedStyle returns the style for the cursor row.
func SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(active.Selection).Foreground(active.Text)
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(active.Error)
}
