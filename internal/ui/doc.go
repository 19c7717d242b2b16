// Package ui implements an interactive terminal client using bubbletea's Elm architecture.
//
// The TUI has three views, each backed by a [collection.Controller]:
//  1. [PlaylistsView] : browse, create, rename and delete playlists
//  2. [ItemsView] : items of one playlist, or the unfiled bucket titled "Added"
//  3. [SecurityView] : provider keys, edited one row at a time
//
// Every row is a [collection.EditableItem]: "e" opens an inline edit seeded with the current value, enter saves
// and esc cancels. "d" asks for confirmation before the delete is sent. "n" opens the create input; the input is
// cleared only after the backend accepted the new entity.
//
// Backend calls run inside [tea.Cmd] goroutines and settle through the [Msg] union. Leaving a view unmounts its
// controller, so responses that arrive late are dropped.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
