// Package repositories implements SQLite persistence for the local backend.
//
// Key Implementations:
//   - [PlaylistRepository] : playlists, ordered by creation
//   - [ItemRepository] : items, scoped by playlist or unfiled; deleting a playlist cascades to its items
//   - [SettingsRepository] : key/value store backing the security settings
//
// Ids are UUIDs. Sequence numbers give stable creation order independent of ids and timestamps;
// [NextSequence] atomically increments per-table counters kept in dedicated sequence tables.
package repositories
