// Package collection keeps an in-memory ordered list of entities in sync with a remote resource.
//
// # Controller
//
// A [Controller] owns one collection for one scope (all playlists, the items of one playlist, or
// the unfiled items). It is the only writer of that collection:
//   - Fetch replaces the whole collection and parent in one step
//   - Create prepends the server-confirmed entity (newest first)
//   - Update replaces in place, keyed by id looked up when the response arrives
//   - Delete removes by id, looked up when the response arrives
//
// Nothing is inserted optimistically. A failed call leaves the collection untouched.
// Responses that arrive after [Controller.Unmount] or after a newer fetch are dropped.
//
// # EditableItem
//
// [EditableItem] is the display/edit state machine of a single row. It persists through a
// [SaveFunc] supplied by the owner (usually [Controller.HandleEdit]) and only leaves edit mode
// once the save has settled successfully.
//
// # Form
//
// [Form] collects named string fields, validates required ones, and produces a [models.Payload].
package collection
