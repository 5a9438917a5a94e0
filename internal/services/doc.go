// Package services implements HTTP clients for the three external boundaries
// of the discovery client.
//
// # Boundaries
//
//   - [TMDBService] : read-only TMDB metadata API (catalogs, details, videos,
//     credits, reviews, search). Keyed by an API key query parameter; no
//     write access.
//   - [IdentityService] : hosted email/password identity provider (sign up,
//     sign in, sign out, delete, reauthenticate). Sessions are cached through
//     a [SessionStore] and tokens renewed with an [oauth2.TokenSource]
//     against the provider's refresh endpoint.
//   - [DocStoreService] : remote document store holding one favorites
//     document per account, keyed by email, with merge-set and
//     array-union/array-remove field updates.
//
// All clients take a context on every call, wrap failures with the sentinel
// errors in internal/shared, and decode typed DTOs with json tags.
package services
