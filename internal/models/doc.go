// Package models defines the entities exchanged with the playlist backend.
//
// Every entity has a stable, backend-assigned id exposed through [Entity]. Client collections
// use that id as the only key when splicing server responses into an ordered list.
//
//   - [Playlist] : a named collection of items
//   - [Item] : a media reference (URL) optionally filed under a playlist
//   - [SecuritySettings] : provider keys stored by the backend, edited row-by-row as [SettingField]
//   - [ItemList] : the items list response, including the parent playlist for breadcrumbs
//
// [Payload] is the flat field/value mapping sent as a form-encoded body on create and update.
package models
