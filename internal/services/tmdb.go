// TMDB API implementation of [Metadata]
//
// TMDB response types based on https://developer.themoviedb.org/reference

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/marquee/internal/shared"
)

const (
	defaultTMDBBaseURL = "https://api.themoviedb.org/3"
	tmdbImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	tmdbPageBaseURL    = "https://www.themoviedb.org"
)

// Genre represents a TMDB genre entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany represents a studio attached to a movie.
type ProductionCompany struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CollectionRef is the lightweight franchise reference on a movie detail.
type CollectionRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie represents full TMDB movie details.
type Movie struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	Tagline             string              `json:"tagline"`
	Overview            string              `json:"overview"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             int                 `json:"runtime"` // minutes
	OriginalLanguage    string              `json:"original_language"`
	Revenue             int64               `json:"revenue"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
	Popularity          float64             `json:"popularity"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	BelongsToCollection *CollectionRef      `json:"belongs_to_collection"`
}

// PosterURL returns the full URL for the movie poster at w500 size.
func (m *Movie) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	return tmdbImageBaseURL + m.PosterPath
}

// PageURL returns the public TMDB page for the movie.
func (m *Movie) PageURL() string {
	return fmt.Sprintf("%s/movie/%d", tmdbPageBaseURL, m.ID)
}

// GenreNames returns a slice of genre names.
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// MovieSummary represents a movie in list responses (discover, similar,
// search, credits). Genres arrive as bare IDs here, unlike [Movie].
type MovieSummary struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	Overview            string              `json:"overview"`
	ReleaseDate         string              `json:"release_date"`
	VoteAverage         float64             `json:"vote_average"`
	Popularity          float64             `json:"popularity"`
	PosterPath          string              `json:"poster_path"`
	GenreIDs            []int               `json:"genre_ids"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
}

// Collection represents a movie collection (franchise) with its parts.
type Collection struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Overview string         `json:"overview"`
	Parts    []MovieSummary `json:"parts"`
}

// TVShow represents full TMDB TV show details.
type TVShow struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Tagline          string  `json:"tagline"`
	Overview         string  `json:"overview"`
	FirstAirDate     string  `json:"first_air_date"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Genres           []Genre `json:"genres"`
}

// PosterURL returns the full URL for the show poster at w500 size.
func (s *TVShow) PosterURL() string {
	if s.PosterPath == "" {
		return ""
	}
	return tmdbImageBaseURL + s.PosterPath
}

// PageURL returns the public TMDB page for the show.
func (s *TVShow) PageURL() string {
	return fmt.Sprintf("%s/tv/%d", tmdbPageBaseURL, s.ID)
}

// TVSummary represents a TV show in list responses.
type TVSummary struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
	PosterPath   string  `json:"poster_path"`
	GenreIDs     []int   `json:"genre_ids"`
}

// Person represents TMDB person details.
type Person struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Biography    string  `json:"biography"`
	Birthday     string  `json:"birthday"`
	Deathday     string  `json:"deathday"`
	PlaceOfBirth string  `json:"place_of_birth"`
	Department   string  `json:"known_for_department"`
	Popularity   float64 `json:"popularity"`
	ProfilePath  string  `json:"profile_path"`
}

// ProfileURL returns the full URL for the person's profile image.
func (p *Person) ProfileURL() string {
	if p.ProfilePath == "" {
		return ""
	}
	return tmdbImageBaseURL + p.ProfilePath
}

// CastMember represents one cast credit on a movie or show.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// Video represents a trailer/teaser/clip attached to a movie or show.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"` // YouTube, Vimeo
	Type string `json:"type"` // Trailer, Teaser, Clip
}

// WatchURL returns a playable URL for YouTube-hosted videos.
func (v *Video) WatchURL() string {
	if v.Site != "YouTube" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// ReviewEntry represents a published TMDB review.
type ReviewEntry struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	URL       string `json:"url"`
}

// MoviePage is one page of movie list results.
type MoviePage struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// TVPage is one page of TV list results.
type TVPage struct {
	Page         int         `json:"page"`
	Results      []TVSummary `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// PersonPage is one page of people list results.
type PersonPage struct {
	Page         int      `json:"page"`
	Results      []Person `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// SearchResult is one multi-search hit; MediaType discriminates which of
// the title/name fields is populated.
type SearchResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"` // movie, tv, person
	Title        string  `json:"title"`      // movies
	Name         string  `json:"name"`       // tv shows and people
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
	PosterPath   string  `json:"poster_path"`
	ProfilePath  string  `json:"profile_path"`
}

// DisplayName returns the title or name depending on media type.
func (r *SearchResult) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// SearchPage is one page of multi-search results.
type SearchPage struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// DiscoverOptions filters discover queries. Zero values are omitted.
type DiscoverOptions struct {
	Genres           []int  // with_genres (OR-joined)
	Year             int    // primary_release_year / first_air_date_year
	YearFrom         int    // release/air date lower bound
	YearTo           int    // release/air date upper bound
	Region           string // region
	OriginalLanguage string // with_original_language
	WatchProvider    int    // with_watch_providers (requires WatchRegion)
	WatchRegion      string // watch_region
	SortBy           string // e.g. popularity.desc, revenue.desc
	Page             int
}

// TMDBService implements the [Metadata] interface against the TMDB API.
// Authentication is an api_key query parameter on every request.
type TMDBService struct {
	apiKey     string
	baseURL    string
	language   string
	region     string
	httpClient *http.Client
}

// NewTMDBService creates a TMDB client from configuration.
// A nil client falls back to [http.DefaultClient].
func NewTMDBService(cfg shared.TMDBConfig, client *http.Client) (*TMDBService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: tmdb api_key", shared.ErrMissingCredentials)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTMDBBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TMDBService{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		language:   cfg.Language,
		region:     cfg.Region,
		httpClient: client,
	}, nil
}

// Name returns the service name.
func (t *TMDBService) Name() string {
	return "TMDB"
}

// doRequest performs an authenticated GET against the TMDB API and decodes
// the JSON response into result.
func (t *TMDBService) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)
	if params.Get("language") == "" {
		params.Set("language", t.language)
	}

	apiURL := t.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: invalid TMDB API key", shared.ErrMissingCredentials)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNotFound, endpoint)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: tmdb", shared.ErrRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: tmdb status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Movie retrieves full movie details by ID.
func (t *TMDBService) Movie(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	if err := t.doRequest(ctx, "/movie/"+url.PathEscape(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// MovieVideos retrieves trailers/teasers/clips for a movie.
func (t *TMDBService) MovieVideos(ctx context.Context, id string) ([]Video, error) {
	var response struct {
		Results []Video `json:"results"`
	}
	if err := t.doRequest(ctx, fmt.Sprintf("/movie/%s/videos", url.PathEscape(id)), nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// MovieCredits retrieves the cast list for a movie, ordered by billing.
func (t *TMDBService) MovieCredits(ctx context.Context, id string) ([]CastMember, error) {
	var response struct {
		Cast []CastMember `json:"cast"`
	}
	if err := t.doRequest(ctx, fmt.Sprintf("/movie/%s/credits", url.PathEscape(id)), nil, &response); err != nil {
		return nil, err
	}
	return response.Cast, nil
}

// MovieReviews retrieves published reviews for a movie.
func (t *TMDBService) MovieReviews(ctx context.Context, id string) ([]ReviewEntry, error) {
	var response struct {
		Results []ReviewEntry `json:"results"`
	}
	if err := t.doRequest(ctx, fmt.Sprintf("/movie/%s/reviews", url.PathEscape(id)), nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// SimilarMovies retrieves TMDB's similar-movies list for a movie.
func (t *TMDBService) SimilarMovies(ctx context.Context, id string) ([]MovieSummary, error) {
	var page MoviePage
	if err := t.doRequest(ctx, fmt.Sprintf("/movie/%s/similar", url.PathEscape(id)), nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Collection retrieves a movie collection with its parts.
func (t *TMDBService) Collection(ctx context.Context, id string) (*Collection, error) {
	var collection Collection
	if err := t.doRequest(ctx, "/collection/"+url.PathEscape(id), nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// TopRatedMovies retrieves a page of TMDB's top-rated movie chart.
func (t *TMDBService) TopRatedMovies(ctx context.Context, page int) (*MoviePage, error) {
	return t.moviePage(ctx, "/movie/top_rated", pageParams(page))
}

// NowPlayingMovies retrieves a page of movies currently in theaters.
func (t *TMDBService) NowPlayingMovies(ctx context.Context, page int) (*MoviePage, error) {
	params := pageParams(page)
	if t.region != "" {
		params.Set("region", t.region)
	}
	return t.moviePage(ctx, "/movie/now_playing", params)
}

// TrendingMoviesWeek retrieves this week's trending movies.
func (t *TMDBService) TrendingMoviesWeek(ctx context.Context) (*MoviePage, error) {
	return t.moviePage(ctx, "/trending/movie/week", nil)
}

// PopularMovies retrieves a page of currently popular movies.
func (t *TMDBService) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	return t.moviePage(ctx, "/movie/popular", pageParams(page))
}

// PopularTV retrieves a page of currently popular TV shows.
func (t *TMDBService) PopularTV(ctx context.Context, page int) (*TVPage, error) {
	var result TVPage
	if err := t.doRequest(ctx, "/tv/popular", pageParams(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DiscoverMovies queries the movie discover endpoint with filters.
func (t *TMDBService) DiscoverMovies(ctx context.Context, opts DiscoverOptions) (*MoviePage, error) {
	params := discoverParams(opts)
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}
	if opts.YearFrom > 0 {
		params.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", opts.YearFrom))
	}
	if opts.YearTo > 0 {
		params.Set("primary_release_date.lte", fmt.Sprintf("%d-12-31", opts.YearTo))
	}
	return t.moviePage(ctx, "/discover/movie", params)
}

// DiscoverTV queries the TV discover endpoint with filters.
func (t *TMDBService) DiscoverTV(ctx context.Context, opts DiscoverOptions) (*TVPage, error) {
	params := discoverParams(opts)
	if opts.Year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(opts.Year))
	}
	if opts.YearFrom > 0 {
		params.Set("first_air_date.gte", fmt.Sprintf("%d-01-01", opts.YearFrom))
	}
	if opts.YearTo > 0 {
		params.Set("first_air_date.lte", fmt.Sprintf("%d-12-31", opts.YearTo))
	}

	var result TVPage
	if err := t.doRequest(ctx, "/discover/tv", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Genres retrieves the genre list for "movie" or "tv".
func (t *TMDBService) Genres(ctx context.Context, mediaType string) ([]Genre, error) {
	if mediaType != "movie" && mediaType != "tv" {
		return nil, fmt.Errorf("%w: media type must be movie or tv, got %q", shared.ErrInvalidArgument, mediaType)
	}

	var response struct {
		Genres []Genre `json:"genres"`
	}
	if err := t.doRequest(ctx, "/genre/"+mediaType+"/list", nil, &response); err != nil {
		return nil, err
	}
	return response.Genres, nil
}

// TVShow retrieves full TV show details by ID.
func (t *TMDBService) TVShow(ctx context.Context, id string) (*TVShow, error) {
	var show TVShow
	if err := t.doRequest(ctx, "/tv/"+url.PathEscape(id), nil, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// TVVideos retrieves videos for a TV show.
func (t *TMDBService) TVVideos(ctx context.Context, id string) ([]Video, error) {
	var response struct {
		Results []Video `json:"results"`
	}
	if err := t.doRequest(ctx, fmt.Sprintf("/tv/%s/videos", url.PathEscape(id)), nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// TVCredits retrieves the cast list for a TV show.
func (t *TMDBService) TVCredits(ctx context.Context, id string) ([]CastMember, error) {
	var response struct {
		Cast []CastMember `json:"cast"`
	}
	if err := t.doRequest(ctx, fmt.Sprintf("/tv/%s/credits", url.PathEscape(id)), nil, &response); err != nil {
		return nil, err
	}
	return response.Cast, nil
}

// TVReviews retrieves published reviews for a TV show.
func (t *TMDBService) TVReviews(ctx context.Context, id string) ([]ReviewEntry, error) {
	var response struct {
		Results []ReviewEntry `json:"results"`
	}
	if err := t.doRequest(ctx, fmt.Sprintf("/tv/%s/reviews", url.PathEscape(id)), nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// SimilarTV retrieves TMDB's similar-shows list for a TV show.
func (t *TMDBService) SimilarTV(ctx context.Context, id string) ([]TVSummary, error) {
	var page TVPage
	if err := t.doRequest(ctx, fmt.Sprintf("/tv/%s/similar", url.PathEscape(id)), nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Person retrieves person details by ID.
func (t *TMDBService) Person(ctx context.Context, id string) (*Person, error) {
	var person Person
	if err := t.doRequest(ctx, "/person/"+url.PathEscape(id), nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// PersonMovieCredits retrieves the movies a person appeared in.
func (t *TMDBService) PersonMovieCredits(ctx context.Context, id string) ([]MovieSummary, error) {
	var response struct {
		Cast []MovieSummary `json:"cast"`
	}
	if err := t.doRequest(ctx, fmt.Sprintf("/person/%s/movie_credits", url.PathEscape(id)), nil, &response); err != nil {
		return nil, err
	}
	return response.Cast, nil
}

// PopularPeople retrieves a page of currently popular people.
func (t *TMDBService) PopularPeople(ctx context.Context, page int) (*PersonPage, error) {
	var result PersonPage
	if err := t.doRequest(ctx, "/person/popular", pageParams(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchMulti searches movies, TV shows, and people in one query.
func (t *TMDBService) SearchMulti(ctx context.Context, query string, page int) (*SearchPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidInput)
	}

	params := pageParams(page)
	params.Set("query", query)

	var result SearchPage
	if err := t.doRequest(ctx, "/search/multi", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (t *TMDBService) moviePage(ctx context.Context, endpoint string, params url.Values) (*MoviePage, error) {
	var result MoviePage
	if err := t.doRequest(ctx, endpoint, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func pageParams(page int) url.Values {
	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}

func discoverParams(opts DiscoverOptions) url.Values {
	params := pageParams(opts.Page)
	if len(opts.Genres) > 0 {
		ids := make([]string, len(opts.Genres))
		for i, g := range opts.Genres {
			ids[i] = strconv.Itoa(g)
		}
		params.Set("with_genres", strings.Join(ids, "|"))
	}
	if opts.Region != "" {
		params.Set("region", opts.Region)
	}
	if opts.OriginalLanguage != "" {
		params.Set("with_original_language", opts.OriginalLanguage)
	}
	if opts.WatchProvider > 0 {
		params.Set("with_watch_providers", strconv.Itoa(opts.WatchProvider))
		region := opts.WatchRegion
		if region == "" {
			region = "US"
		}
		params.Set("watch_region", region)
	}
	if opts.SortBy != "" {
		params.Set("sort_by", opts.SortBy)
	}
	return params
}
