package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// PersonInfo shows person details with movie credits.
func (r *Runner) PersonInfo(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	if id == "" {
		return fmt.Errorf("%w: person id", shared.ErrMissingArgument)
	}
	if err := r.requireMetadata(); err != nil {
		return err
	}

	r.logger.Info("fetching person detail", "id", id)

	progressCh := r.detailProgress(useJSON)
	result, err := r.details.PersonDetail(ctx, progressCh, id)
	close(progressCh)

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	person := result.Person
	r.writePlainHeader(person.Name)
	if person.Department != "" {
		r.writePlain("Known for: %s\n", person.Department)
	}
	if person.Birthday != "" {
		r.writePlain("Born: %s", person.Birthday)
		if person.PlaceOfBirth != "" {
			r.writePlain(" in %s", person.PlaceOfBirth)
		}
		r.writePlain("\n")
	}
	if person.Deathday != "" {
		r.writePlain("Died: %s\n", person.Deathday)
	}
	if person.Biography != "" {
		r.writePlainln("%s", person.Biography)
	}
	if len(result.Credits) > 0 {
		r.writePlainln("Movie credits:")
		for i, credit := range result.Credits {
			if i == 10 {
				break
			}
			r.writePlain("  %s (%s)\n", credit.Title, shared.YearOf(credit.ReleaseDate))
		}
	}
	r.writeEndpointErrors(result.Errors)
	return nil
}

// PeoplePopular lists popular people.
func (r *Runner) PeoplePopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}

	page, err := r.metadata.PopularPeople(ctx, cmd.Int("page"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader("Popular People")
	for _, person := range page.Results {
		r.writePlain("%d. %s (%s)\n", person.ID, person.Name, person.Department)
	}
	r.writePlain("\nPage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
	return nil
}
