package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/repositories"
	"github.com/desertthunder/marquee/internal/shared"
	tu "github.com/desertthunder/marquee/internal/testing"
)

func syncFixture(t *testing.T) (*SyncEngine, *tu.MemoryDocStore, *repositories.LegacyFavoriteRepository) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	accessor, _, store := signedInFixture()
	legacy := repositories.NewLegacyFavoriteRepository(db)
	jobs := repositories.NewSyncJobRepository(db)

	return NewSyncEngine(accessor, legacy, jobs, nil), store, legacy
}

func TestSyncEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("RunMigratesLegacyFavorites", func(t *testing.T) {
		engine, store, legacy := syncFixture(t)

		seeds := []*models.LegacyFavorite{
			models.NewLegacyFavorite(0, models.CategoryMovies, "550"),
			models.NewLegacyFavorite(0, models.CategoryTV, "1399"),
		}
		for _, favorite := range seeds {
			if err := legacy.Create(favorite); err != nil {
				t.Fatalf("failed to seed legacy favorite: %v", err)
			}
		}

		job, err := engine.Run(ctx, nil)
		if err != nil {
			t.Fatalf("failed to run sync: %v", err)
		}

		if job.Status() != models.SyncCompleted {
			t.Errorf("expected completed status, got %s", job.Status())
		}

		if job.Synced() != 2 || job.Failed() != 0 {
			t.Errorf("expected 2 synced 0 failed, got %d/%d", job.Synced(), job.Failed())
		}

		if !store.Contains("user@example.com", models.CategoryMovies, "550") {
			t.Error("expected movie in remote store after sync")
		}

		remaining, err := legacy.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list legacy favorites: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected legacy rows drained, got %d remaining", len(remaining))
		}
	})

	t.Run("RunWithNoLegacyRows", func(t *testing.T) {
		engine, _, _ := syncFixture(t)

		job, err := engine.Run(ctx, nil)
		if err != nil {
			t.Fatalf("failed to run empty sync: %v", err)
		}

		if job.Status() != models.SyncCompleted {
			t.Errorf("expected completed status, got %s", job.Status())
		}

		if job.Total() != 0 {
			t.Errorf("expected 0 total, got %d", job.Total())
		}
	})

	t.Run("FailedWritesStayLocal", func(t *testing.T) {
		engine, store, legacy := syncFixture(t)
		store.WriteErr = errors.New("store unreachable")

		if err := legacy.Create(models.NewLegacyFavorite(0, models.CategoryMovies, "550")); err != nil {
			t.Fatalf("failed to seed legacy favorite: %v", err)
		}

		job, err := engine.Run(ctx, nil)
		if err != nil {
			t.Fatalf("sync run should complete despite item failures: %v", err)
		}

		if job.Synced() != 0 || job.Failed() != 1 {
			t.Errorf("expected 0 synced 1 failed, got %d/%d", job.Synced(), job.Failed())
		}

		remaining, err := legacy.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list legacy favorites: %v", err)
		}
		if len(remaining) != 1 {
			t.Errorf("expected failed row kept locally, got %d remaining", len(remaining))
		}
	})

	t.Run("RunSignedOut", func(t *testing.T) {
		engine, _, _ := syncFixture(t)
		engine.accessor.identity.(*tu.MockIdentity).Account = nil

		if _, err := engine.Run(ctx, nil); !errors.Is(err, shared.ErrAuthRequired) {
			t.Errorf("expected ErrAuthRequired, got %v", err)
		}
	})
}
