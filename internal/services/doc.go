// Package services implements the resource client for the playlist backend.
//
// # Sender
//
// Every request goes through the [Sender] interface, which has a single capability: send a
// [Request] (method, path, query params, body) and return the raw [APIResponse].
// [APIService] is the HTTP implementation and is constructed once at startup and injected into
// each client.
//
// # Resource Clients
//
// Each REST resource has an explicit typed client:
//   - [PlaylistsClient] : GET/POST/PUT/DELETE /playlists, keyed by playlist_id
//   - [ItemsClient] : GET/POST/PUT/DELETE /items, scoped by playlist_id and keyed by item_id
//   - [SecurityClient] : GET/PUT /security
//
// Create and update bodies are application/x-www-form-urlencoded. The security update is JSON.
// An empty scope id is omitted from the request entirely, which the backend reads as "unfiled".
//
// # Error Handling
//
// Clients do not retry, cache, or interpret status codes:
//   - [shared.ErrTransport] : the request never produced a response
//   - [shared.ErrServer] : non-2xx response, carried by [shared.StatusError]
//   - [shared.ErrDecode] : the response body did not match the expected shape
package services
