package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the board page bindings.
type KeyMap struct {
	Draw      key.Binding
	Undo      key.Binding
	Flip      key.Binding
	RevealAll key.Binding
	HideAll   key.Binding
	Zoom      key.Binding
	Close     key.Binding
	Next      key.Binding
	Prev      key.Binding
	Spread    key.Binding
	Clear     key.Binding
	Interpret key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Draw:      key.NewBinding(key.WithKeys("d", " "), key.WithHelp("d", "draw")),
		Undo:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Flip:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flip")),
		RevealAll: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "reveal all")),
		HideAll:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide all")),
		Zoom:      key.NewBinding(key.WithKeys("enter", "z"), key.WithHelp("enter", "zoom")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next card")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev card")),
		Spread:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "change spread")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear table")),
		Interpret: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interpret")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Flip, k.Zoom, k.Undo, k.Spread, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.Undo, k.Flip, k.RevealAll, k.HideAll},
		{k.Zoom, k.Close, k.Next, k.Prev},
		{k.Spread, k.Clear, k.Interpret, k.Quit},
	}
}
