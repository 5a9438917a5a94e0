// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

// MockMetadata is a test double for [services.Metadata]. Each method
// delegates to the matching func field when set and returns zero values
// otherwise.
type MockMetadata struct {
	MovieFunc              func(ctx context.Context, id string) (*services.Movie, error)
	MovieVideosFunc        func(ctx context.Context, id string) ([]services.Video, error)
	MovieCreditsFunc       func(ctx context.Context, id string) ([]services.CastMember, error)
	MovieReviewsFunc       func(ctx context.Context, id string) ([]services.ReviewEntry, error)
	SimilarMoviesFunc      func(ctx context.Context, id string) ([]services.MovieSummary, error)
	CollectionFunc         func(ctx context.Context, id string) (*services.Collection, error)
	TVShowFunc             func(ctx context.Context, id string) (*services.TVShow, error)
	TVVideosFunc           func(ctx context.Context, id string) ([]services.Video, error)
	TVCreditsFunc          func(ctx context.Context, id string) ([]services.CastMember, error)
	TVReviewsFunc          func(ctx context.Context, id string) ([]services.ReviewEntry, error)
	SimilarTVFunc          func(ctx context.Context, id string) ([]services.TVSummary, error)
	PersonFunc             func(ctx context.Context, id string) (*services.Person, error)
	PersonMovieCreditsFunc func(ctx context.Context, id string) ([]services.MovieSummary, error)
	SearchMultiFunc        func(ctx context.Context, query string, page int) (*services.SearchPage, error)
	TopRatedMoviesFunc     func(ctx context.Context, page int) (*services.MoviePage, error)
	NowPlayingMoviesFunc   func(ctx context.Context, page int) (*services.MoviePage, error)
	TrendingMoviesFunc     func(ctx context.Context) (*services.MoviePage, error)
	PopularMoviesFunc      func(ctx context.Context, page int) (*services.MoviePage, error)
	DiscoverMoviesFunc     func(ctx context.Context, opts services.DiscoverOptions) (*services.MoviePage, error)
	PopularTVFunc          func(ctx context.Context, page int) (*services.TVPage, error)
	DiscoverTVFunc         func(ctx context.Context, opts services.DiscoverOptions) (*services.TVPage, error)
	GenresFunc             func(ctx context.Context, mediaType string) ([]services.Genre, error)
	PopularPeopleFunc      func(ctx context.Context, page int) (*services.PersonPage, error)
}

func (m *MockMetadata) Movie(ctx context.Context, id string) (*services.Movie, error) {
	if m.MovieFunc != nil {
		return m.MovieFunc(ctx, id)
	}
	return &services.Movie{}, nil
}

func (m *MockMetadata) MovieVideos(ctx context.Context, id string) ([]services.Video, error) {
	if m.MovieVideosFunc != nil {
		return m.MovieVideosFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) MovieCredits(ctx context.Context, id string) ([]services.CastMember, error) {
	if m.MovieCreditsFunc != nil {
		return m.MovieCreditsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) MovieReviews(ctx context.Context, id string) ([]services.ReviewEntry, error) {
	if m.MovieReviewsFunc != nil {
		return m.MovieReviewsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) SimilarMovies(ctx context.Context, id string) ([]services.MovieSummary, error) {
	if m.SimilarMoviesFunc != nil {
		return m.SimilarMoviesFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) Collection(ctx context.Context, id string) (*services.Collection, error) {
	if m.CollectionFunc != nil {
		return m.CollectionFunc(ctx, id)
	}
	return &services.Collection{}, nil
}

func (m *MockMetadata) TVShow(ctx context.Context, id string) (*services.TVShow, error) {
	if m.TVShowFunc != nil {
		return m.TVShowFunc(ctx, id)
	}
	return &services.TVShow{}, nil
}

func (m *MockMetadata) TVVideos(ctx context.Context, id string) ([]services.Video, error) {
	if m.TVVideosFunc != nil {
		return m.TVVideosFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) TVCredits(ctx context.Context, id string) ([]services.CastMember, error) {
	if m.TVCreditsFunc != nil {
		return m.TVCreditsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) TVReviews(ctx context.Context, id string) ([]services.ReviewEntry, error) {
	if m.TVReviewsFunc != nil {
		return m.TVReviewsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) SimilarTV(ctx context.Context, id string) ([]services.TVSummary, error) {
	if m.SimilarTVFunc != nil {
		return m.SimilarTVFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) Person(ctx context.Context, id string) (*services.Person, error) {
	if m.PersonFunc != nil {
		return m.PersonFunc(ctx, id)
	}
	return &services.Person{}, nil
}

func (m *MockMetadata) PersonMovieCredits(ctx context.Context, id string) ([]services.MovieSummary, error) {
	if m.PersonMovieCreditsFunc != nil {
		return m.PersonMovieCreditsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMetadata) SearchMulti(ctx context.Context, query string, page int) (*services.SearchPage, error) {
	if m.SearchMultiFunc != nil {
		return m.SearchMultiFunc(ctx, query, page)
	}
	return &services.SearchPage{}, nil
}

func (m *MockMetadata) TopRatedMovies(ctx context.Context, page int) (*services.MoviePage, error) {
	if m.TopRatedMoviesFunc != nil {
		return m.TopRatedMoviesFunc(ctx, page)
	}
	return &services.MoviePage{}, nil
}

func (m *MockMetadata) NowPlayingMovies(ctx context.Context, page int) (*services.MoviePage, error) {
	if m.NowPlayingMoviesFunc != nil {
		return m.NowPlayingMoviesFunc(ctx, page)
	}
	return &services.MoviePage{}, nil
}

func (m *MockMetadata) TrendingMoviesWeek(ctx context.Context) (*services.MoviePage, error) {
	if m.TrendingMoviesFunc != nil {
		return m.TrendingMoviesFunc(ctx)
	}
	return &services.MoviePage{}, nil
}

func (m *MockMetadata) PopularMovies(ctx context.Context, page int) (*services.MoviePage, error) {
	if m.PopularMoviesFunc != nil {
		return m.PopularMoviesFunc(ctx, page)
	}
	return &services.MoviePage{}, nil
}

func (m *MockMetadata) DiscoverMovies(ctx context.Context, opts services.DiscoverOptions) (*services.MoviePage, error) {
	if m.DiscoverMoviesFunc != nil {
		return m.DiscoverMoviesFunc(ctx, opts)
	}
	return &services.MoviePage{}, nil
}

func (m *MockMetadata) PopularTV(ctx context.Context, page int) (*services.TVPage, error) {
	if m.PopularTVFunc != nil {
		return m.PopularTVFunc(ctx, page)
	}
	return &services.TVPage{}, nil
}

func (m *MockMetadata) DiscoverTV(ctx context.Context, opts services.DiscoverOptions) (*services.TVPage, error) {
	if m.DiscoverTVFunc != nil {
		return m.DiscoverTVFunc(ctx, opts)
	}
	return &services.TVPage{}, nil
}

func (m *MockMetadata) Genres(ctx context.Context, mediaType string) ([]services.Genre, error) {
	if m.GenresFunc != nil {
		return m.GenresFunc(ctx, mediaType)
	}
	return nil, nil
}

func (m *MockMetadata) PopularPeople(ctx context.Context, page int) (*services.PersonPage, error) {
	if m.PopularPeopleFunc != nil {
		return m.PopularPeopleFunc(ctx, page)
	}
	return &services.PersonPage{}, nil
}

// MockIdentity is a test double for [services.Identity]. Account holds the
// signed-in state; the call counters record provider interactions.
type MockIdentity struct {
	Account  *models.Account
	Password string

	// DeleteFailures is decremented on each DeleteAccount call; while
	// positive, DeleteAccount returns ErrRequiresRecentLogin.
	DeleteFailures int

	SignUpErr error
	SignInErr error
	DeleteErr error
	ReauthErr error
	TokenErr  error

	DeleteCalls  int
	ReauthCalls  int
	SignOutCalls int
}

func (m *MockIdentity) CurrentAccount() *models.Account {
	return m.Account
}

func (m *MockIdentity) SignUp(ctx context.Context, email, password, displayName string) (*models.Account, error) {
	if m.SignUpErr != nil {
		return nil, m.SignUpErr
	}
	m.Account = &models.Account{Email: email, DisplayName: displayName, LocalID: "mock-local-id"}
	m.Password = password
	return m.Account, nil
}

func (m *MockIdentity) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	if m.SignInErr != nil {
		return nil, m.SignInErr
	}
	if m.Password != "" && password != m.Password {
		return nil, shared.ErrInvalidCredential
	}
	m.Account = &models.Account{Email: email, LocalID: "mock-local-id"}
	return m.Account, nil
}

func (m *MockIdentity) SignOut(ctx context.Context) error {
	m.SignOutCalls++
	m.Account = nil
	return nil
}

func (m *MockIdentity) Reauthenticate(ctx context.Context, password string) error {
	m.ReauthCalls++
	if m.ReauthErr != nil {
		return m.ReauthErr
	}
	if m.Password != "" && password != m.Password {
		return shared.ErrInvalidCredential
	}
	return nil
}

func (m *MockIdentity) DeleteAccount(ctx context.Context) error {
	m.DeleteCalls++
	if m.DeleteFailures > 0 {
		m.DeleteFailures--
		return shared.ErrRequiresRecentLogin
	}
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return nil
}

func (m *MockIdentity) Token(ctx context.Context) (string, error) {
	if m.TokenErr != nil {
		return "", m.TokenErr
	}
	if m.Account == nil {
		return "", shared.ErrNotAuthenticated
	}
	return "mock-token", nil
}

func (m *MockIdentity) OnAuthChange(fn func(*models.Account)) func() {
	return func() {}
}

// MemoryDocStore is an in-memory [services.DocumentStore]. Writes and
// deletes count so tests can assert the store was never touched.
type MemoryDocStore struct {
	mu   sync.Mutex
	docs map[string]*models.FavoritesDocument

	GetCalls    int
	WriteCalls  int
	DeleteCalls int

	GetErr    error
	WriteErr  error
	DeleteErr error
}

func NewMemoryDocStore() *MemoryDocStore {
	return &MemoryDocStore{docs: make(map[string]*models.FavoritesDocument)}
}

func (s *MemoryDocStore) GetDocument(ctx context.Context, key string) (*models.FavoritesDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GetCalls++
	if s.GetErr != nil {
		return nil, s.GetErr
	}

	doc, ok := s.docs[key]
	if !ok {
		return nil, shared.ErrNotFound
	}

	copied := *doc
	return &copied, nil
}

func (s *MemoryDocStore) SetDocument(ctx context.Context, key string, doc *models.FavoritesDocument, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.WriteCalls++
	if s.WriteErr != nil {
		return s.WriteErr
	}

	existing, ok := s.docs[key]
	if !merge || !ok {
		copied := *doc
		s.docs[key] = &copied
		return nil
	}

	if doc.Movies != nil {
		existing.Movies = slices.Clone(doc.Movies)
	}
	if doc.Actors != nil {
		existing.Actors = slices.Clone(doc.Actors)
	}
	if doc.TV != nil {
		existing.TV = slices.Clone(doc.TV)
	}
	return nil
}

func (s *MemoryDocStore) ArrayUnion(ctx context.Context, key string, category models.Category, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.WriteCalls++
	if s.WriteErr != nil {
		return s.WriteErr
	}

	doc, ok := s.docs[key]
	if !ok {
		return shared.ErrNotFound
	}

	for _, id := range ids {
		if !doc.Has(category, id) {
			switch category {
			case models.CategoryMovies:
				doc.Movies = append(doc.Movies, id)
			case models.CategoryActors:
				doc.Actors = append(doc.Actors, id)
			case models.CategoryTV:
				doc.TV = append(doc.TV, id)
			}
		}
	}
	return nil
}

func (s *MemoryDocStore) ArrayRemove(ctx context.Context, key string, category models.Category, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.WriteCalls++
	if s.WriteErr != nil {
		return s.WriteErr
	}

	doc, ok := s.docs[key]
	if !ok {
		return shared.ErrNotFound
	}

	remove := func(set []string) []string {
		return slices.DeleteFunc(set, func(member string) bool {
			return slices.Contains(ids, member)
		})
	}

	switch category {
	case models.CategoryMovies:
		doc.Movies = remove(doc.Movies)
	case models.CategoryActors:
		doc.Actors = remove(doc.Actors)
	case models.CategoryTV:
		doc.TV = remove(doc.TV)
	}
	return nil
}

func (s *MemoryDocStore) DeleteDocument(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DeleteCalls++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	delete(s.docs, key)
	return nil
}

// Seed installs a document for key without counting as a write.
func (s *MemoryDocStore) Seed(key string, doc *models.FavoritesDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *doc
	s.docs[key] = &copied
}

// Contains reports membership without counting as a read.
func (s *MemoryDocStore) Contains(key string, category models.Category, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	return ok && doc.Has(category, id)
}

// HasDocument reports whether a document exists for key.
func (s *MemoryDocStore) HasDocument(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.docs[key]
	return ok
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
