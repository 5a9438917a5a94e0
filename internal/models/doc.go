// Package models defines domain entities and persistence interfaces for the marquee discovery client.
//
// The package contains three categories of types:
//
// 1. Remote-store documents: per-account state owned by the document store
//   - [FavoritesDocument] : the three favorite sets (movies, actors, tv) keyed by account email
//   - [Category] : the set partition, one of movies | actors | tv
//
// 2. Identity types: accounts issued by the external identity provider
//   - [Account] : email, display name, and the provider-issued local ID
//   - [Session] : the cached provider session persisted between CLI invocations
//
// 3. Persistent entities: local SQLite-backed fallback state
//   - [Review] : review submissions stored locally, never sent to a remote service
//   - [LegacyFavorite] : favorite rows written by pre-remote-store releases
//   - [SyncJob] : one legacy→remote favorites migration run with progress counters
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
