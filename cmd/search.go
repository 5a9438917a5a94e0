package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a multi-search across movies, TV shows, and people.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")

	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}
	if err := r.requireMetadata(); err != nil {
		return err
	}

	r.logger.Info("searching", "query", query)

	page, err := r.metadata.SearchMulti(ctx, query, cmd.Int("page"))
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	for _, result := range page.Results {
		switch result.MediaType {
		case "movie":
			r.writePlain("%d. [movie] %s (%s) %s\n", result.ID, result.Title, shared.YearOf(result.ReleaseDate), shared.FormatRating(result.VoteAverage))
		case "tv":
			r.writePlain("%d. [tv] %s (%s) %s\n", result.ID, result.Name, shared.YearOf(result.FirstAirDate), shared.FormatRating(result.VoteAverage))
		case "person":
			r.writePlain("%d. [person] %s\n", result.ID, result.Name)
		}
	}
	r.writePlain("\nPage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
	return nil
}

// Genres lists genre IDs usable with the discover filters.
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	mediaType := cmd.String("type")
	useJSON := cmd.Bool("json")

	if mediaType != "movie" && mediaType != "tv" {
		return fmt.Errorf("%w: type must be movie or tv", shared.ErrInvalidFlag)
	}
	if err := r.requireMetadata(); err != nil {
		return err
	}

	genres, err := r.metadata.Genres(ctx, mediaType)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(genres, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s genres", mediaType))
	for _, genre := range genres {
		r.writePlain("%d\t%s\n", genre.ID, genre.Name)
	}
	return nil
}
