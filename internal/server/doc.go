// Package server implements the local playlist backend served by `plx serve`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses a gorilla/mux router internally; method mismatches answer 405.
//
// # Handler Interface
//
// Resource handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing a handler to own every verb of its path:
//   - [PlaylistsHandler] : /playlists, keyed by the playlist_id query parameter
//   - [ItemsHandler] : /items, scoped by playlist_id and keyed by item_id
//   - [SecurityHandler] : /security, refused with 403 unless the security page is enabled
//
// Create and update bodies are form encoded; the security update is JSON. Errors are JSON objects
// with a single "error" key.
//
// # Observability
//
// [Logging] writes one line per request to a charmbracelet logger and [Metrics] records Prometheus
// request metrics. /metrics exposes them and /health answers liveness probes.
package server
