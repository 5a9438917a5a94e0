// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for catalog discovery:
//  1. [TrendingView] : Browse this week's trending movies
//  2. [SearchView] : Search movies, TV shows, and people
//  3. [DetailView] : Full details with trailer, cast, and similar titles
//  4. [FavoritesView] : The signed-in account's favorites
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// The detail view hosts the favorite toggle: pressing f resolves the current
// membership state and flips it, or shows a sign-in notice when no session is
// active.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, f, v, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
