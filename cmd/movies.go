package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MovieInfo aggregates the full movie detail view. Secondary endpoints
// that fail are reported at the end instead of aborting the view.
func (r *Runner) MovieInfo(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	if id == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	if err := r.requireMetadata(); err != nil {
		return err
	}

	r.logger.Info("fetching movie detail", "id", id)

	progressCh := r.detailProgress(useJSON)
	result, err := r.details.MovieDetail(ctx, progressCh, id)
	close(progressCh)

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	movie := result.Movie
	r.writePlainHeader(fmt.Sprintf("%s (%s)", movie.Title, shared.YearOf(movie.ReleaseDate)))
	if movie.Tagline != "" {
		r.writePlain("%s\n", movie.Tagline)
	}
	r.writePlain("Rating: %s (%d votes)\n", shared.FormatRating(movie.VoteAverage), movie.VoteCount)
	r.writePlain("Runtime: %s\n", shared.FormatRuntime(movie.Runtime))
	if len(movie.Genres) > 0 {
		r.writePlain("Genres: %s\n", strings.Join(movie.GenreNames(), ", "))
	}
	if movie.Overview != "" {
		r.writePlainln("%s", movie.Overview)
	}
	if result.Trailer != nil {
		r.writePlain("Trailer: %s\n", result.Trailer.WatchURL())
	}
	if result.Collection != nil {
		r.writePlain("Part of: %s (%d movies)\n", result.Collection.Name, len(result.Collection.Parts))
	}
	r.writeCast(result.Cast)
	if len(result.Similar) > 0 {
		r.writePlainln("Similar:")
		for i, similar := range result.Similar {
			if i == 5 {
				break
			}
			r.writePlain("  %s (%s) %s\n", similar.Title, shared.YearOf(similar.ReleaseDate), shared.FormatRating(similar.VoteAverage))
		}
	}
	if len(result.Reviews) > 0 {
		r.writePlain("\n%d published reviews. Page: %s\n", len(result.Reviews), movie.PageURL())
	}
	r.writeEndpointErrors(result.Errors)

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(movie.PageURL()); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}
	return nil
}

// MoviesTopRated lists top-rated movies.
func (r *Runner) MoviesTopRated(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	page, err := r.metadata.TopRatedMovies(ctx, cmd.Int("page"))
	if err != nil {
		return err
	}
	return r.writeMoviePage(page, "Top Rated Movies", cmd.Bool("json"))
}

// MoviesNowPlaying lists movies currently in theaters.
func (r *Runner) MoviesNowPlaying(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	page, err := r.metadata.NowPlayingMovies(ctx, cmd.Int("page"))
	if err != nil {
		return err
	}
	return r.writeMoviePage(page, "Now Playing", cmd.Bool("json"))
}

// MoviesTrending lists this week's trending movies.
func (r *Runner) MoviesTrending(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	page, err := r.metadata.TrendingMoviesWeek(ctx)
	if err != nil {
		return err
	}
	return r.writeMoviePage(page, "Trending This Week", cmd.Bool("json"))
}

// MoviesPopular lists popular movies.
func (r *Runner) MoviesPopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	page, err := r.metadata.PopularMovies(ctx, cmd.Int("page"))
	if err != nil {
		return err
	}
	return r.writeMoviePage(page, "Popular Movies", cmd.Bool("json"))
}

// MoviesDiscover runs a filtered discovery query. The prefix filter is
// applied client-side; TMDB has no title-prefix parameter.
func (r *Runner) MoviesDiscover(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	opts, err := r.discoverOptions(cmd)
	if err != nil {
		return err
	}
	opts.YearFrom = cmd.Int("year-from")
	opts.YearTo = cmd.Int("year-to")

	if provider := cmd.String("watch-provider"); provider != "" {
		id, err := strconv.Atoi(provider)
		if err != nil {
			return fmt.Errorf("%w: watch-provider must be a numeric ID", shared.ErrInvalidFlag)
		}
		opts.WatchProvider = id
		opts.WatchRegion = r.config.TMDB.Region
		if opts.WatchRegion == "" {
			opts.WatchRegion = "US"
		}
	}

	page, err := r.metadata.DiscoverMovies(ctx, opts)
	if err != nil {
		return err
	}

	if prefix := cmd.String("prefix"); prefix != "" {
		page.Results = filterByPrefix(page.Results, prefix)
	}
	return r.writeMoviePage(page, "Discover", cmd.Bool("json"))
}

// MovieCollection shows a franchise and its parts.
func (r *Runner) MovieCollection(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	if id == "" {
		return fmt.Errorf("%w: collection id", shared.ErrMissingArgument)
	}
	if err := r.requireMetadata(); err != nil {
		return err
	}

	collection, err := r.metadata.Collection(ctx, id)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(collection, true)
	}

	r.writePlainHeader(collection.Name)
	if collection.Overview != "" {
		r.writePlain("%s\n\n", collection.Overview)
	}
	for _, part := range collection.Parts {
		r.writePlain("%d. %s (%s) %s\n", part.ID, part.Title, shared.YearOf(part.ReleaseDate), shared.FormatRating(part.VoteAverage))
	}
	return nil
}

// detailProgress returns a consuming progress channel. Updates are
// suppressed when the command outputs JSON.
func (r *Runner) detailProgress(quiet bool) chan tasks.ProgressUpdate {
	progressCh := make(chan tasks.ProgressUpdate, 20)
	go func() {
		for update := range progressCh {
			if quiet {
				continue
			}
			switch update.Phase {
			case tasks.FetchDetail:
				r.writePlain("📥 %s\n", update.Message)
			default:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()
	return progressCh
}

func (r *Runner) writeMoviePage(page *services.MoviePage, title string, useJSON bool) error {
	if useJSON {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(title)
	for _, movie := range page.Results {
		r.writePlain("%d. %s (%s) %s\n", movie.ID, movie.Title, shared.YearOf(movie.ReleaseDate), shared.FormatRating(movie.VoteAverage))
	}
	r.writePlain("\nPage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
	return nil
}

func (r *Runner) writeCast(cast []services.CastMember) {
	if len(cast) == 0 {
		return
	}
	r.writePlainln("Cast:")
	for i, member := range cast {
		if i == 5 {
			break
		}
		r.writePlain("  %s as %s\n", member.Name, member.Character)
	}
}

func (r *Runner) writeEndpointErrors(results []tasks.EndpointResult) {
	if len(results) == 0 {
		return
	}
	r.writePlainln("%d endpoint(s) unavailable:", len(results))
	for _, result := range results {
		r.writePlain("  %s: %v\n", result.Endpoint, result.Error)
	}
}

// discoverOptions parses the filter flags shared by movie and TV discovery.
func (r *Runner) discoverOptions(cmd *cli.Command) (services.DiscoverOptions, error) {
	opts := services.DiscoverOptions{
		Year:             cmd.Int("year"),
		OriginalLanguage: cmd.String("language"),
		SortBy:           cmd.String("sort"),
		Page:             cmd.Int("page"),
	}

	for _, raw := range cmd.StringSlice("genre") {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("%w: genre must be a numeric ID, got %q", shared.ErrInvalidFlag, raw)
		}
		opts.Genres = append(opts.Genres, id)
	}
	return opts, nil
}

func filterByPrefix(results []services.MovieSummary, prefix string) []services.MovieSummary {
	key := shared.NormalizeTitleKey(prefix)
	filtered := make([]services.MovieSummary, 0, len(results))
	for _, movie := range results {
		if strings.HasPrefix(shared.NormalizeTitleKey(movie.Title), key) {
			filtered = append(filtered, movie)
		}
	}
	return filtered
}
