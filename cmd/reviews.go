package main

import (
	"context"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/urfave/cli/v3"
)

// ReviewAdd stores a review submission in the local database.
func (r *Runner) ReviewAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDatabase(); err != nil {
		return err
	}

	review := models.NewReview(
		0, // sequence is assigned by the repository
		cmd.String("name"),
		cmd.String("email"),
		cmd.String("subject"),
		cmd.String("body"),
		cmd.Int("rating"),
	)

	if err := r.reviews.Create(review); err != nil {
		return err
	}

	r.logger.Info("review stored", "subject", review.Subject())
	r.writePlain("Stored review of %q by %s\n", review.Subject(), review.Name())
	return nil
}

// ReviewList lists stored reviews, optionally filtered by subject.
func (r *Runner) ReviewList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDatabase(); err != nil {
		return err
	}

	criteria := map[string]any{}
	if subject := cmd.String("subject"); subject != "" {
		criteria["subject"] = subject
	}

	reviews, err := r.reviews.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := make([]map[string]any, 0, len(reviews))
		for _, review := range reviews {
			out = append(out, map[string]any{
				"id":      review.ID(),
				"name":    review.Name(),
				"subject": review.Subject(),
				"body":    review.Body(),
				"rating":  review.Rating(),
			})
		}
		return r.writeJSON(out, true)
	}

	r.writePlainHeader("Stored Reviews")
	for _, review := range reviews {
		r.writePlain("%s on %q", review.Name(), review.Subject())
		if review.Rating() > 0 {
			r.writePlain(" (%d/10)", review.Rating())
		}
		r.writePlain("\n  %s\n", review.Body())
	}
	r.writePlain("\n%d review(s)\n", len(reviews))
	return nil
}
