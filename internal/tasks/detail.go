package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

const similarLimit = 15

// EndpointResult records the outcome of one sub-fetch within a detail
// aggregation. Failed endpoints are reported here instead of failing the
// whole view.
type EndpointResult struct {
	Endpoint string
	Error    error
}

// MovieDetailResult aggregates everything a movie detail view displays.
// Any field other than Movie may be empty when its endpoint failed; the
// failures are listed in Errors.
type MovieDetailResult struct {
	Movie      *services.Movie
	Trailer    *services.Video
	Videos     []services.Video
	Cast       []services.CastMember
	Reviews    []services.ReviewEntry
	Similar    []services.MovieSummary
	Collection *services.Collection
	Errors     []EndpointResult
}

// TVDetailResult aggregates everything a TV show detail view displays.
type TVDetailResult struct {
	Show    *services.TVShow
	Trailer *services.Video
	Videos  []services.Video
	Cast    []services.CastMember
	Reviews []services.ReviewEntry
	Similar []services.TVSummary
	Errors  []EndpointResult
}

// PersonDetailResult aggregates a person detail view.
type PersonDetailResult struct {
	Person  *services.Person
	Credits []services.MovieSummary
	Errors  []EndpointResult
}

// DetailEngine aggregates multi-endpoint detail views. The primary record
// is fetched first; the remaining endpoints run concurrently and fail
// independently.
type DetailEngine struct {
	metadata services.Metadata
}

// NewDetailEngine creates a DetailEngine over the given metadata service.
func NewDetailEngine(metadata services.Metadata) *DetailEngine {
	return &DetailEngine{metadata: metadata}
}

// collector gathers results from concurrent endpoint fetches.
type collector struct {
	mu     sync.Mutex
	errors []EndpointResult
}

func (c *collector) fail(endpoint string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, EndpointResult{Endpoint: endpoint, Error: err})
}

// MovieDetail fetches a movie and its supporting endpoints. The movie
// itself must resolve; videos, credits, reviews, similar titles, and the
// collection each fail in isolation.
func (e *DetailEngine) MovieDetail(ctx context.Context, progress chan<- ProgressUpdate, id string) (*MovieDetailResult, error) {
	if e.metadata == nil {
		return nil, fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	movie, err := e.metadata.Movie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie %s: %w", id, err)
	}

	result := &MovieDetailResult{Movie: movie}
	sendProgress(progress, fetchDetailUpdate(1, 5, movie.Title))

	var (
		wg      sync.WaitGroup
		c       collector
		similar []services.MovieSummary
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchVideos, 2, 5, "videos"))
		videos, err := e.metadata.MovieVideos(ctx, id)
		if err != nil {
			c.fail("videos", err)
			return
		}
		result.Videos = videos
	}()

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchCredits, 3, 5, "credits"))
		cast, err := e.metadata.MovieCredits(ctx, id)
		if err != nil {
			c.fail("credits", err)
			return
		}
		result.Cast = cast
	}()

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchReviews, 4, 5, "reviews"))
		reviews, err := e.metadata.MovieReviews(ctx, id)
		if err != nil {
			c.fail("reviews", err)
			return
		}
		result.Reviews = reviews
	}()

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchSimilar, 5, 5, "similar titles"))
		list, err := e.metadata.SimilarMovies(ctx, id)
		if err != nil {
			c.fail("similar", err)
			return
		}
		similar = list
	}()

	if movie.BelongsToCollection != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sendProgress(progress, fetchEndpointUpdate(FetchCollection, 5, 5, "collection"))
			collection, err := e.metadata.Collection(ctx, fmt.Sprintf("%d", movie.BelongsToCollection.ID))
			if err != nil {
				c.fail("collection", err)
				return
			}
			result.Collection = collection
		}()
	}

	wg.Wait()

	result.Errors = c.errors
	result.Trailer = pickTrailer(result.Videos)
	result.Similar = rankSimilarMovies(movie, result.Collection, similar)
	return result, nil
}

// TVDetail fetches a show and its supporting endpoints, with the same
// isolation rules as MovieDetail.
func (e *DetailEngine) TVDetail(ctx context.Context, progress chan<- ProgressUpdate, id string) (*TVDetailResult, error) {
	if e.metadata == nil {
		return nil, fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	show, err := e.metadata.TVShow(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch show %s: %w", id, err)
	}

	result := &TVDetailResult{Show: show}
	sendProgress(progress, fetchDetailUpdate(1, 5, show.Name))

	var (
		wg      sync.WaitGroup
		c       collector
		similar []services.TVSummary
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchVideos, 2, 5, "videos"))
		videos, err := e.metadata.TVVideos(ctx, id)
		if err != nil {
			c.fail("videos", err)
			return
		}
		result.Videos = videos
	}()

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchCredits, 3, 5, "credits"))
		cast, err := e.metadata.TVCredits(ctx, id)
		if err != nil {
			c.fail("credits", err)
			return
		}
		result.Cast = cast
	}()

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchReviews, 4, 5, "reviews"))
		reviews, err := e.metadata.TVReviews(ctx, id)
		if err != nil {
			c.fail("reviews", err)
			return
		}
		result.Reviews = reviews
	}()

	go func() {
		defer wg.Done()
		sendProgress(progress, fetchEndpointUpdate(FetchSimilar, 5, 5, "similar shows"))
		list, err := e.metadata.SimilarTV(ctx, id)
		if err != nil {
			c.fail("similar", err)
			return
		}
		similar = list
	}()

	wg.Wait()

	result.Errors = c.errors
	result.Trailer = pickTrailer(result.Videos)
	result.Similar = rankSimilarShows(show, similar)
	return result, nil
}

// PersonDetail fetches a person and their movie credits. Credits fail in
// isolation and are sorted by popularity.
func (e *DetailEngine) PersonDetail(ctx context.Context, progress chan<- ProgressUpdate, id string) (*PersonDetailResult, error) {
	if e.metadata == nil {
		return nil, fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	person, err := e.metadata.Person(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch person %s: %w", id, err)
	}

	result := &PersonDetailResult{Person: person}
	sendProgress(progress, fetchDetailUpdate(1, 2, person.Name))

	sendProgress(progress, fetchEndpointUpdate(FetchCredits, 2, 2, "credits"))
	credits, err := e.metadata.PersonMovieCredits(ctx, id)
	if err != nil {
		result.Errors = append(result.Errors, EndpointResult{Endpoint: "credits", Error: err})
		return result, nil
	}

	sort.SliceStable(credits, func(i, j int) bool {
		return credits[i].Popularity > credits[j].Popularity
	})
	result.Credits = credits
	return result, nil
}

// pickTrailer returns the first playable trailer, falling back to the
// first playable video of any type. Only YouTube-hosted videos play.
func pickTrailer(videos []services.Video) *services.Video {
	for i := range videos {
		if videos[i].Site == "YouTube" && videos[i].Type == "Trailer" {
			return &videos[i]
		}
	}
	for i := range videos {
		if videos[i].Site == "YouTube" {
			return &videos[i]
		}
	}
	return nil
}

// rankSimilarMovies orders similar titles by relatedness to the source
// movie: franchise siblings first, then titles sharing a production
// company, then titles sharing a genre, then the rest by popularity.
// The source movie is excluded and the list is capped.
func rankSimilarMovies(movie *services.Movie, collection *services.Collection, similar []services.MovieSummary) []services.MovieSummary {
	genres := make(map[int]bool, len(movie.Genres))
	for _, g := range movie.Genres {
		genres[g.ID] = true
	}
	companies := make(map[int]bool, len(movie.ProductionCompanies))
	for _, pc := range movie.ProductionCompanies {
		companies[pc.ID] = true
	}

	seen := map[int]bool{movie.ID: true}
	ranked := make([]services.MovieSummary, 0, similarLimit)

	appendUnseen := func(candidates []services.MovieSummary) {
		for _, candidate := range candidates {
			if len(ranked) >= similarLimit || seen[candidate.ID] {
				continue
			}
			seen[candidate.ID] = true
			ranked = append(ranked, candidate)
		}
	}

	if collection != nil {
		appendUnseen(collection.Parts)
	}

	var sharedCompany, sharedGenre, rest []services.MovieSummary
	for _, candidate := range similar {
		switch {
		case sharesCompany(candidate, companies):
			sharedCompany = append(sharedCompany, candidate)
		case sharesGenre(candidate.GenreIDs, genres):
			sharedGenre = append(sharedGenre, candidate)
		default:
			rest = append(rest, candidate)
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Popularity > rest[j].Popularity
	})

	appendUnseen(sharedCompany)
	appendUnseen(sharedGenre)
	appendUnseen(rest)
	return ranked
}

// rankSimilarShows orders similar shows by shared genre, then popularity.
func rankSimilarShows(show *services.TVShow, similar []services.TVSummary) []services.TVSummary {
	genres := make(map[int]bool, len(show.Genres))
	for _, g := range show.Genres {
		genres[g.ID] = true
	}

	var sharedGenre, rest []services.TVSummary
	for _, candidate := range similar {
		if candidate.ID == show.ID {
			continue
		}
		if sharesGenre(candidate.GenreIDs, genres) {
			sharedGenre = append(sharedGenre, candidate)
		} else {
			rest = append(rest, candidate)
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Popularity > rest[j].Popularity
	})

	ranked := append(sharedGenre, rest...)
	if len(ranked) > similarLimit {
		ranked = ranked[:similarLimit]
	}
	return ranked
}

func sharesCompany(candidate services.MovieSummary, companies map[int]bool) bool {
	for _, pc := range candidate.ProductionCompanies {
		if companies[pc.ID] {
			return true
		}
	}
	return false
}

func sharesGenre(genreIDs []int, genres map[int]bool) bool {
	for _, id := range genreIDs {
		if genres[id] {
			return true
		}
	}
	return false
}
