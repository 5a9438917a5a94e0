package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// TVInfo aggregates the full TV show detail view.
func (r *Runner) TVInfo(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	if id == "" {
		return fmt.Errorf("%w: show id", shared.ErrMissingArgument)
	}
	if err := r.requireMetadata(); err != nil {
		return err
	}

	r.logger.Info("fetching tv detail", "id", id)

	progressCh := r.detailProgress(useJSON)
	result, err := r.details.TVDetail(ctx, progressCh, id)
	close(progressCh)

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	show := result.Show
	r.writePlainHeader(fmt.Sprintf("%s (%s)", show.Name, shared.YearOf(show.FirstAirDate)))
	if show.Tagline != "" {
		r.writePlain("%s\n", show.Tagline)
	}
	r.writePlain("Rating: %s\n", shared.FormatRating(show.VoteAverage))
	r.writePlain("Seasons: %d (%d episodes)\n", show.NumberOfSeasons, show.NumberOfEpisodes)
	if len(show.Genres) > 0 {
		names := make([]string, 0, len(show.Genres))
		for _, genre := range show.Genres {
			names = append(names, genre.Name)
		}
		r.writePlain("Genres: %s\n", strings.Join(names, ", "))
	}
	if show.Overview != "" {
		r.writePlainln("%s", show.Overview)
	}
	if result.Trailer != nil {
		r.writePlain("Trailer: %s\n", result.Trailer.WatchURL())
	}
	r.writeCast(result.Cast)
	if len(result.Similar) > 0 {
		r.writePlainln("Similar:")
		for i, similar := range result.Similar {
			if i == 5 {
				break
			}
			r.writePlain("  %s (%s) %s\n", similar.Name, shared.YearOf(similar.FirstAirDate), shared.FormatRating(similar.VoteAverage))
		}
	}
	if len(result.Reviews) > 0 {
		r.writePlain("\n%d published reviews. Page: %s\n", len(result.Reviews), show.PageURL())
	}
	r.writeEndpointErrors(result.Errors)

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(show.PageURL()); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}
	return nil
}

// TVPopular lists popular TV shows.
func (r *Runner) TVPopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	page, err := r.metadata.PopularTV(ctx, cmd.Int("page"))
	if err != nil {
		return err
	}
	return r.writeTVPage(page, "Popular TV Shows", cmd.Bool("json"))
}

// TVDiscover runs a filtered TV discovery query.
func (r *Runner) TVDiscover(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	opts, err := r.discoverOptions(cmd)
	if err != nil {
		return err
	}

	page, err := r.metadata.DiscoverTV(ctx, opts)
	if err != nil {
		return err
	}
	return r.writeTVPage(page, "Discover TV", cmd.Bool("json"))
}

func (r *Runner) writeTVPage(page *services.TVPage, title string, useJSON bool) error {
	if useJSON {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(title)
	for _, show := range page.Results {
		r.writePlain("%d. %s (%s) %s\n", show.ID, show.Name, shared.YearOf(show.FirstAirDate), shared.FormatRating(show.VoteAverage))
	}
	r.writePlain("\nPage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
	return nil
}
