// Interfaces for the external HTTP boundaries: TMDB metadata, identity
// provider, remote document store.

package services

import (
	"context"

	"github.com/desertthunder/marquee/internal/models"
)

// Metadata defines the read-only catalog surface consumed from TMDB.
// Implemented by [TMDBService] and by test doubles.
type Metadata interface {
	// Movie retrieves full movie details by TMDB ID.
	Movie(ctx context.Context, id string) (*Movie, error)

	// MovieVideos retrieves trailers/teasers/clips for a movie.
	MovieVideos(ctx context.Context, id string) ([]Video, error)

	// MovieCredits retrieves the cast list for a movie.
	MovieCredits(ctx context.Context, id string) ([]CastMember, error)

	// MovieReviews retrieves published reviews for a movie.
	MovieReviews(ctx context.Context, id string) ([]ReviewEntry, error)

	// SimilarMovies retrieves TMDB's similar-movies list.
	SimilarMovies(ctx context.Context, id string) ([]MovieSummary, error)

	// Collection retrieves a movie collection (franchise) with its parts.
	Collection(ctx context.Context, id string) (*Collection, error)

	// TVShow retrieves full TV show details by TMDB ID.
	TVShow(ctx context.Context, id string) (*TVShow, error)

	// TVVideos retrieves videos for a TV show.
	TVVideos(ctx context.Context, id string) ([]Video, error)

	// TVCredits retrieves the cast list for a TV show.
	TVCredits(ctx context.Context, id string) ([]CastMember, error)

	// TVReviews retrieves published reviews for a TV show.
	TVReviews(ctx context.Context, id string) ([]ReviewEntry, error)

	// SimilarTV retrieves TMDB's similar-shows list.
	SimilarTV(ctx context.Context, id string) ([]TVSummary, error)

	// Person retrieves person details by TMDB ID.
	Person(ctx context.Context, id string) (*Person, error)

	// PersonMovieCredits retrieves the movies a person appeared in.
	PersonMovieCredits(ctx context.Context, id string) ([]MovieSummary, error)

	// SearchMulti searches movies, TV shows, and people in one query.
	SearchMulti(ctx context.Context, query string, page int) (*SearchPage, error)

	// TopRatedMovies retrieves one page of the top-rated movie list.
	TopRatedMovies(ctx context.Context, page int) (*MoviePage, error)

	// NowPlayingMovies retrieves one page of movies currently in theaters.
	NowPlayingMovies(ctx context.Context, page int) (*MoviePage, error)

	// TrendingMoviesWeek retrieves this week's trending movies.
	TrendingMoviesWeek(ctx context.Context) (*MoviePage, error)

	// PopularMovies retrieves one page of the popular movie list.
	PopularMovies(ctx context.Context, page int) (*MoviePage, error)

	// DiscoverMovies retrieves movies matching the discover filters.
	DiscoverMovies(ctx context.Context, opts DiscoverOptions) (*MoviePage, error)

	// PopularTV retrieves one page of the popular TV list.
	PopularTV(ctx context.Context, page int) (*TVPage, error)

	// DiscoverTV retrieves TV shows matching the discover filters.
	DiscoverTV(ctx context.Context, opts DiscoverOptions) (*TVPage, error)

	// Genres retrieves the genre list for "movie" or "tv".
	Genres(ctx context.Context, mediaType string) ([]Genre, error)

	// PopularPeople retrieves one page of the popular people list.
	PopularPeople(ctx context.Context, page int) (*PersonPage, error)
}

// Identity defines the operations consumed from the identity provider.
// Implemented by [IdentityService] and by test doubles.
type Identity interface {
	// CurrentAccount returns the cached session's account, or nil when
	// signed out. Never contacts the provider.
	CurrentAccount() *models.Account

	// SignUp creates an account and sets its display name.
	SignUp(ctx context.Context, email, password, displayName string) (*models.Account, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*models.Account, error)

	// SignOut clears the cached session. Always succeeds locally.
	SignOut(ctx context.Context) error

	// Reauthenticate refreshes the session with a password credential.
	Reauthenticate(ctx context.Context, password string) error

	// DeleteAccount deletes the identity record for the current session.
	DeleteAccount(ctx context.Context) error

	// Token returns a valid ID token, refreshing it if expired.
	Token(ctx context.Context) (string, error)

	// OnAuthChange registers a callback invoked with the account on sign-in
	// and nil on sign-out. Returns an unsubscribe function.
	OnAuthChange(fn func(*models.Account)) func()
}

// DocumentStore defines the operations consumed from the remote document
// store. One collection; documents keyed by account email.
// Implemented by [DocStoreService] and by the in-memory test double.
type DocumentStore interface {
	// GetDocument fetches the favorites document for key.
	// Returns shared.ErrNotFound when the document does not exist.
	GetDocument(ctx context.Context, key string) (*models.FavoritesDocument, error)

	// SetDocument creates or replaces the document. With merge, absent
	// fields in doc are left untouched on the stored document.
	SetDocument(ctx context.Context, key string, doc *models.FavoritesDocument, merge bool) error

	// ArrayUnion adds ids to the category field, preserving set semantics.
	// Returns shared.ErrNotFound when the document does not exist.
	ArrayUnion(ctx context.Context, key string, category models.Category, ids ...string) error

	// ArrayRemove removes ids from the category field.
	// Returns shared.ErrNotFound when the document does not exist.
	ArrayRemove(ctx context.Context, key string, category models.Category, ids ...string) error

	// DeleteDocument removes the document. Deleting an absent document is
	// not an error.
	DeleteDocument(ctx context.Context, key string) error
}

// SessionStore persists the cached identity session between invocations.
// Implemented by repositories.SessionRepository.
type SessionStore interface {
	Load() (*models.Session, error) // Load returns nil when no session is cached
	Save(session *models.Session) error
	Clear() error
}

// TokenProvider supplies a bearer token for authenticated store calls.
// Satisfied by [Identity].
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
