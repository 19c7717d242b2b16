package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFetched MsgKind = iota
	MsgCreated
	MsgDeleted
	MsgSaved
	MsgOpened
)

// outcome is the payload of every message produced by a backend call.
type outcome struct {
	view   ViewState
	id     string
	entity any
	err    error
}

func (m Msg) outcome() outcome {
	o, _ := m.data.(outcome)
	return o
}

// fetchedMsg is the constructor for [MsgFetched]
func fetchedMsg(view ViewState, err error) Msg {
	return Msg{kind: MsgFetched, data: outcome{view: view, err: err}}
}

// createdMsg is the constructor for [MsgCreated]
func createdMsg(view ViewState, id string, err error) Msg {
	return Msg{kind: MsgCreated, data: outcome{view: view, id: id, err: err}}
}

// deletedMsg is the constructor for [MsgDeleted]
func deletedMsg(view ViewState, id string, err error) Msg {
	return Msg{kind: MsgDeleted, data: outcome{view: view, id: id, err: err}}
}

// savedMsg is the constructor for [MsgSaved]
func savedMsg(view ViewState, id string, entity any, err error) Msg {
	return Msg{kind: MsgSaved, data: outcome{view: view, id: id, entity: entity, err: err}}
}

// openedMsg is the constructor for [MsgOpened]
func openedMsg(url string, err error) Msg {
	return Msg{kind: MsgOpened, data: outcome{view: ItemsView, id: url, err: err}}
}
