// Package tasks runs long item operations against the backend with real-time progress reporting.
//
// # Operations
//
//  1. [Engine.Import] : sequential, rate-limited item creation
//     - Lines come from [ReadURLs] (blank lines and # comments skipped)
//     - Each URL goes through the same create path as the UI (a [collection.Form] submitted to an [ItemCreator])
//     - Duplicate URLs within one run are skipped
//     - Per-line failures are collected in [ImportResult.Errors] and never abort the run
//
//  2. [Engine.Export] : concurrent export of playlists to files
//     - A worker pool fetches each playlist's [models.ItemList] through an [ItemLister]
//     - Lists are written with [formatter.WriteExport]
//     - A manifest summarizing the run is written next to the exports
//
// # Progress Reporting
//
// Both operations report through a send-only [ProgressUpdate] channel. Sends use select with default so a slow
// or absent reader never blocks the operation.
package tasks
