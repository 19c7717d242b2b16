// Package metrics provides Prometheus instrumentation for plx.
//
// All metrics are prefixed with "plx_".
//
// # HTTP Metrics
//
// Recorded by the local backend's middleware:
//   - HTTPRequestsTotal: requests by method, path, and status
//   - HTTPRequestDuration: request duration by method and path
//   - HTTPRequestsInFlight: requests currently being processed
//
// # Store Metrics
//
//   - EntityMutationsTotal: create/update/delete operations by resource, operation, and outcome
//
// # Import Metrics
//
// Recorded by the bulk item importer:
//   - ImportItemsTotal: imported lines by outcome
//   - ImportRunning: 1 while an import is in progress
//
// The metrics are served at /metrics by `plx serve`.
package metrics
