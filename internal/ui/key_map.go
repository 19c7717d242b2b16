package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	create   key.Binding
	edit     key.Binding
	del      key.Binding
	yes      key.Binding
	no       key.Binding
	open     key.Binding
	unfiled  key.Binding
	security key.Binding
	refresh  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		del:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		unfiled:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unfiled")),
		security: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "security")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.create, k.edit, k.del, k.refresh},
		{k.unfiled, k.security, k.open, k.quit},
	}
}

// forView returns the bindings shown in the help line of a view.
func (k keyMap) forView(v ViewState) []key.Binding {
	switch v {
	case ItemsView:
		return []key.Binding{k.create, k.edit, k.del, k.open, k.refresh, k.back, k.quit}
	case SecurityView:
		return []key.Binding{k.edit, k.refresh, k.back, k.quit}
	default:
		return []key.Binding{k.enter, k.create, k.edit, k.del, k.unfiled, k.security, k.quit}
	}
}
