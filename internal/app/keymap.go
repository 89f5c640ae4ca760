package app

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	top      key.Binding
	bottom   key.Binding
	enter    key.Binding
	back     key.Binding
	quit     key.Binding
	focus    key.Binding
	search   key.Binding
	viewNext key.Binding

	toggle     key.Binding
	next       key.Binding
	previous   key.Binding
	seekFwd    key.Binding
	seekBack   key.Binding
	volumeUp   key.Binding
	volumeDown key.Binding
	mute       key.Binding
	shuffle    key.Binding
	repeat     key.Binding

	like     key.Binding
	enqueue  key.Binding
	album    key.Binding
	suggest  key.Binding
	playlist key.Binding
	remove   key.Binding
	create   key.Binding
	theme    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		top:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		bottom:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus queue")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		viewNext: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next view")),

		toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		previous:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		seekFwd:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +5s")),
		seekBack:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -5s")),
		volumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		volumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		shuffle:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		repeat:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),

		like:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		enqueue:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enqueue")),
		album:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open album")),
		suggest:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "similar tracks")),
		playlist: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to playlist")),
		remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		create:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new playlist")),
		theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	}
}
