package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FavoritesList lists the signed-in account's favorites by category.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireFavorites(); err != nil {
		return err
	}

	doc, err := r.accessor.Favorites(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(doc, true)
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", doc.Count()))
	for _, category := range models.AllCategories() {
		ids := doc.Set(category)
		r.writePlain("%s (%d):\n", category, len(ids))
		for _, id := range ids {
			r.writePlain("  %s\n", id)
		}
	}
	return nil
}

// FavoritesAdd adds an item to favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	id, category, err := r.favoriteArgs(cmd)
	if err != nil {
		return err
	}

	if err := r.accessor.Add(ctx, category, id); err != nil {
		return err
	}

	r.writePlain("Added %s to %s\n", id, category)
	return nil
}

// FavoritesRemove removes an item from favorites.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id, category, err := r.favoriteArgs(cmd)
	if err != nil {
		return err
	}

	if err := r.accessor.Remove(ctx, category, id); err != nil {
		return err
	}

	r.writePlain("Removed %s from %s\n", id, category)
	return nil
}

// FavoritesToggle flips an item's favorite status and reports the new state.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	id, category, err := r.favoriteArgs(cmd)
	if err != nil {
		return err
	}

	state, err := r.toggles.Toggle(ctx, category, id)
	if err != nil {
		return err
	}

	switch state {
	case tasks.IsFavorite:
		r.writePlain("★ %s added to %s\n", id, category)
	case tasks.NotFavorite:
		r.writePlain("☆ %s removed from %s\n", id, category)
	default:
		r.writePlain("%s status unknown\n", id)
	}
	return nil
}

// FavoritesExport hydrates every favorite with full details and writes
// a single export file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireFavorites(); err != nil {
		return err
	}
	if err := r.requireMetadata(); err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputPath: cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
	}

	r.logger.Info("exporting favorites", "format", opts.Format)
	r.writePlain("Exporting favorites...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			if update.Phase == tasks.ExportFavorites {
				r.writePlain("📦 %s\n", update.Message)
			}
		}
	}()

	result, err := r.exporter.Export(ctx, progressCh, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Exported: %d/%d\n", result.Exported, result.TotalItems)
	r.writePlain("Output: %s\n", result.OutputPath)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}
	if result.Failed > 0 {
		r.writePlain("\nFailed to hydrate %d items:\n", result.Failed)
		for _, failure := range result.Errors {
			r.writePlain("  %s: %v\n", failure.Endpoint, failure.Error)
		}
	}
	return nil
}

// FavoritesMigrate pushes legacy local favorites to the remote store and
// records the run as a sync job.
func (r *Runner) FavoritesMigrate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDatabase(); err != nil {
		return err
	}
	if r.syncer == nil {
		if err := r.requireFavorites(); err != nil {
			return err
		}
		return fmt.Errorf("%w: legacy favorite migration not initialized", shared.ErrServiceUnavailable)
	}

	r.writePlain("Migrating legacy favorites...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			if update.Phase == tasks.SyncLegacy {
				r.writePlain("🔄 %s\n", update.Message)
			}
		}
	}()

	job, err := r.syncer.Run(ctx, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlainHeader("Migration Complete")
	r.writePlain("Status: %s\n", job.Status())
	r.writePlain("Synced: %d/%d\n", job.Synced(), job.Total())
	if job.Failed() > 0 {
		r.writePlain("Failed: %d\n", job.Failed())
	}
	return nil
}

func (r *Runner) favoriteArgs(cmd *cli.Command) (string, models.Category, error) {
	id := cmd.StringArg("id")
	if id == "" {
		return "", "", fmt.Errorf("%w: content id", shared.ErrMissingArgument)
	}

	category, err := parseCategory(cmd.String("category"))
	if err != nil {
		return "", "", err
	}

	if err := r.requireFavorites(); err != nil {
		return "", "", err
	}
	return id, category, nil
}
