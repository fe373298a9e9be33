package tui

import "github.com/charmbracelet/bubbles/key"

type pageKeys struct {
	Scroll  key.Binding
	Jump    key.Binding
	Menu    key.Binding
	Theme   key.Binding
	Top     key.Binding
	Contact key.Binding
	Copy    key.Binding
	Quit    key.Binding
}

type formKeys struct {
	Next    key.Binding
	Prev    key.Binding
	Submit  key.Binding
	Escape  key.Binding
	Quit    key.Binding
	helpSet []key.Binding
}

func newPageKeys() pageKeys {
	return pageKeys{
		Scroll:  key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Jump:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "sections")),
		Menu:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Contact: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "write")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy email")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k pageKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Jump, k.Menu, k.Theme, k.Top, k.Contact, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k pageKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newFormKeys() formKeys {
	k := formKeys{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss/leave")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	k.helpSet = []key.Binding{k.Next, k.Prev, k.Submit, k.Escape, k.Quit}
	return k
}

// ShortHelp implements help.KeyMap.
func (k formKeys) ShortHelp() []key.Binding {
	return k.helpSet
}

// FullHelp implements help.KeyMap.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.helpSet}
}
