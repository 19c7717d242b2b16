package ui

import (
	"github.com/charmbracelet/bubbles/list"
)

var _ list.DefaultItem = entry{}

// entry is one rendered row of a pane. id is the entity id the row stands for.
type entry struct {
	id    string
	title string
	desc  string
}

func (e entry) FilterValue() string { return e.title }
func (e entry) Title() string       { return e.title }
func (e entry) Description() string { return e.desc }

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
