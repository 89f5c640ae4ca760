// Package icons provides terminal glyphs for the UI, with a plain-ASCII
// fallback for terminals without good unicode fonts.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play      string
	Pause     string
	Volume    string
	Muted     string
	Shuffle   string
	RepeatAll string
	RepeatOne string
	Liked     string
	Search    string
	Queue     string
}

var (
	unicodeIcons = Icons{
		Play:      "▶",
		Pause:     "⏸",
		Volume:    "🔊",
		Muted:     "🔇",
		Shuffle:   "🔀",
		RepeatAll: "🔁",
		RepeatOne: "🔂",
		Liked:     "♥",
		Search:    "🔍",
		Queue:     "≡",
	}

	noneIcons = Icons{
		Play:      ">",
		Pause:     "||",
		Volume:    "vol",
		Muted:     "mut",
		Shuffle:   "[S]",
		RepeatAll: "[R]",
		RepeatOne: "[1]",
		Liked:     "*",
		Search:    "/",
		Queue:     "=",
	}

	current = unicodeIcons
)

// Init selects the active icon set. Call once at startup.
func Init(style string) {
	switch Style(style) {
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

func Play() string      { return current.Play }
func Pause() string     { return current.Pause }
func Volume() string    { return current.Volume }
func Muted() string     { return current.Muted }
func Shuffle() string   { return current.Shuffle }
func RepeatAll() string { return current.RepeatAll }
func RepeatOne() string { return current.RepeatOne }
func Liked() string     { return current.Liked }
func Search() string    { return current.Search }
func Queue() string     { return current.Queue }
