package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// SyncEngine replays legacy local favorites into the remote document store.
// Each run is recorded as a SyncJob so repeated runs stay auditable.
type SyncEngine struct {
	accessor *FavoritesAccessor
	legacy   models.Repository[*models.LegacyFavorite]
	jobs     models.Repository[*models.SyncJob]
	logger   *log.Logger
}

// NewSyncEngine creates a SyncEngine over the given accessor and repositories.
func NewSyncEngine(
	accessor *FavoritesAccessor,
	legacy models.Repository[*models.LegacyFavorite],
	jobs models.Repository[*models.SyncJob],
	logger *log.Logger,
) *SyncEngine {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}
	return &SyncEngine{accessor: accessor, legacy: legacy, jobs: jobs, logger: logger}
}

// Run pushes every legacy favorite into the remote store and removes the
// local rows that synced. Rows that fail stay local for the next run.
// Adds are idempotent, so re-running after a partial failure is safe.
func (e *SyncEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*models.SyncJob, error) {
	account := e.accessor.identity.CurrentAccount()
	if account == nil {
		return nil, fmt.Errorf("%w: sign in before syncing favorites", shared.ErrAuthRequired)
	}

	job := models.NewSyncJob(0, account.Email)
	if err := e.jobs.Create(job); err != nil {
		return nil, fmt.Errorf("failed to record sync job: %w", err)
	}

	favorites, err := e.legacy.List(map[string]any{})
	if err != nil {
		job.Fail(fmt.Sprintf("failed to list legacy favorites: %v", err))
		if updateErr := e.jobs.Update(job); updateErr != nil {
			e.logger.Error("failed to record sync failure", "error", updateErr)
		}
		return job, err
	}

	job.Start(len(favorites))
	if err := e.jobs.Update(job); err != nil {
		return job, fmt.Errorf("failed to update sync job: %w", err)
	}

	synced, failed := 0, 0
	for i, favorite := range favorites {
		sendProgress(progress, syncLegacyUpdate(i+1, len(favorites), favorite.ContentID()))

		if err := e.accessor.Add(ctx, favorite.Category(), favorite.ContentID()); err != nil {
			e.logger.Warn("failed to sync legacy favorite",
				"category", favorite.Category(), "content_id", favorite.ContentID(), "error", err)
			failed++
			continue
		}

		if err := e.legacy.Delete(favorite.ID()); err != nil {
			e.logger.Warn("synced favorite but failed to remove local row",
				"content_id", favorite.ContentID(), "error", err)
		}
		synced++
	}

	job.Complete(synced, failed)
	if err := e.jobs.Update(job); err != nil {
		return job, fmt.Errorf("failed to finalize sync job: %w", err)
	}

	return job, nil
}
