// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the TUI's discovery workflow using server-side
// rendering with HTMX for dynamic updates. Each view corresponds to a
// template and handler:
//
//  1. Trending: Server-rendered grid with hx-get for detail preview
//  2. Search: HTMX partial swap of multi-search results
//  3. Detail: Movie/show/person page with cast, trailer, similar titles
//  4. Favorites: The signed-in account's favorites with toggle buttons
//
// Core Components
//
//   - HTTP Server: extends internal/server's BasicRouter with html/template rendering
//   - Service Integration: Uses the same services.Metadata, tasks.DetailEngine,
//     and tasks.ToggleController as the TUI
//   - Session Management: Cookie-based sessions carrying the identity session
//
// Routes
//
//	GET  /                    → Trending view
//	GET  /search?q=           → HTMX partial: search results
//	GET  /movies/{id}         → Movie detail view
//	GET  /tv/{id}             → Show detail view
//	GET  /people/{id}         → Person detail view
//	GET  /favorites           → Favorites view (requires session)
//	POST /favorites/toggle    → hx-post favorite toggle, returns button partial
//	GET  /login, POST /login  → Email/password sign-in form
//
// Templates
//
//   - base.html: Layout with navigation, session status
//   - trending.html: Poster grid with hx-get on cards
//   - results.html: Partial template for search results
//   - detail.html: Detail page with toggle button partial
//   - favorites.html: Favorites grouped by category
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - Session cookies: the identity session token reference
//   - The remote favorites document, read per request
//
// Favorite Toggle Flow
//
//  1. Detail page renders the toggle button with the resolved state
//  2. hx-post to /favorites/toggle flips membership via ToggleController
//  3. Response swaps the button partial with the confirmed state
//  4. A signed-out request returns the sign-in prompt partial instead
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - internal/server: Router and middleware
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. Route registration on BasicRouter
//  2. Template structure with HTMX integration
//  3. Session middleware bridging the SQLite session store
//  4. Trending and search handlers over services.Metadata
//  5. Detail handler over tasks.DetailEngine
//  6. Toggle endpoint over tasks.ToggleController
//  7. Sign-in form wrapping services.Identity
//  8. Error handling and validation
//
// # Testing Strategy
//
// Use httptest:
//   - MockMetadata for catalog data
//   - MemoryDocStore and MockIdentity for favorites and sessions
//   - Validate HTMX headers and response structure
package web
