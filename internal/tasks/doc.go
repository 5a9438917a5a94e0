// Package tasks implements the orchestration layer between the CLI/UI and
// the external service boundaries.
//
// The engines compose the metadata, identity, and document store services
// into the operations users actually invoke. Long-running operations emit
// progress updates via channels for non-blocking status reporting.
//
// Key Implementations:
//   - [FavoritesAccessor] : all reads and writes of the per-account favorites document
//   - [ToggleController] : resolve-and-flip favorite status for a single item
//   - [AccountEngine] : multi-step account deletion with one re-authentication retry
//   - [DetailEngine] : concurrent detail aggregation with per-endpoint error isolation
//   - [ExportEngine] : rate-limited worker pool hydrating favorites into export files
//   - [SyncEngine] : replay of legacy local favorites into the remote store
package tasks
