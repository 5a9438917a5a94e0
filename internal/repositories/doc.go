// Package repositories implements SQLite persistence for local fallback state.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All entity repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [ReviewRepository] : locally stored review submissions
//   - [LegacyFavoriteRepository] : favorite rows written by pre-remote-store releases
//   - [SyncJobRepository] : legacy→remote favorites migration history with status tracking
//   - [SessionRepository] : the single cached identity session (implements services.SessionStore)
//
// Sequence numbers provide stable, human-readable ordering (e.g., review #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
