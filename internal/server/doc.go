// Package server provides the local read-only HTTP API behind the serve command.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Surface
//
// The API is read-only. It exposes the current session status, the signed-in
// account's favorites, locally stored reviews, and a catalog search proxy:
//
//   - GET /api/status
//   - GET /api/favorites
//   - GET /api/search?q=<query>&page=<n>
//   - GET /api/reviews
//
// Endpoints that need a signed-in account respond 401 when signed out.
// Writes (toggling favorites, account changes) stay in the CLI and TUI; the
// server never mutates remote or local state.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
