package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestReviewRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewReviewRepository(db)
		review := models.NewReview(0, "Test Reviewer", "reviewer@example.com", "Inception", "Great film.", 9)

		if err := repo.Create(review); err != nil {
			t.Fatalf("failed to create review: %v", err)
		}

		if review.ID() == "" {
			t.Error("review ID should be set after creation")
		}

		if review.Sequence() == 0 {
			t.Error("review sequence should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewReviewRepository(db)
		review := models.NewReview(0, "Test Reviewer", "reviewer@example.com", "Inception", "Great film.", 9)

		if err := repo.Create(review); err != nil {
			t.Fatalf("failed to create review: %v", err)
		}

		retrieved, err := repo.Get(review.ID())
		if err != nil {
			t.Fatalf("failed to get review: %v", err)
		}

		if retrieved.ID() != review.ID() {
			t.Errorf("expected ID %s, got %s", review.ID(), retrieved.ID())
		}

		if retrieved.Subject() != review.Subject() {
			t.Errorf("expected subject %s, got %s", review.Subject(), retrieved.Subject())
		}

		if retrieved.Rating() != 9 {
			t.Errorf("expected rating 9, got %d", retrieved.Rating())
		}
	})

	t.Run("GetWithoutEmail", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewReviewRepository(db)
		review := models.NewReview(0, "Anonymous", "", "Dune", "Slow start.", 6)

		if err := repo.Create(review); err != nil {
			t.Fatalf("failed to create review: %v", err)
		}

		retrieved, err := repo.Get(review.ID())
		if err != nil {
			t.Fatalf("failed to get review: %v", err)
		}

		if retrieved.Email() != "" {
			t.Errorf("expected empty email, got %s", retrieved.Email())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewReviewRepository(db)
		review := models.NewReview(0, "Test Reviewer", "", "Inception", "Great film.", 9)

		if err := repo.Create(review); err != nil {
			t.Fatalf("failed to create review: %v", err)
		}

		if err := repo.Delete(review.ID()); err != nil {
			t.Fatalf("failed to delete review: %v", err)
		}

		if _, err := repo.Get(review.ID()); err == nil {
			t.Error("expected error getting deleted review")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewReviewRepository(db)

		reviews := []*models.Review{
			models.NewReview(0, "Reviewer One", "one@example.com", "Inception", "Great.", 9),
			models.NewReview(0, "Reviewer Two", "two@example.com", "Dune", "Good.", 7),
		}

		for _, review := range reviews {
			if err := repo.Create(review); err != nil {
				t.Fatalf("failed to create review: %v", err)
			}
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list reviews: %v", err)
		}

		if len(all) != 2 {
			t.Errorf("expected 2 reviews, got %d", len(all))
		}

		bySubject, err := repo.List(map[string]any{"subject": "Dune"})
		if err != nil {
			t.Fatalf("failed to list reviews by subject: %v", err)
		}

		if len(bySubject) != 1 {
			t.Fatalf("expected 1 review for subject, got %d", len(bySubject))
		}

		if bySubject[0].Name() != "Reviewer Two" {
			t.Errorf("expected Reviewer Two, got %s", bySubject[0].Name())
		}
	})
}

func TestLegacyFavoriteRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewLegacyFavoriteRepository(db)
		favorite := models.NewLegacyFavorite(0, models.CategoryMovies, "550")

		if err := repo.Create(favorite); err != nil {
			t.Fatalf("failed to create legacy favorite: %v", err)
		}

		if favorite.ID() == "" {
			t.Error("legacy favorite ID should be set after creation")
		}
	})

	t.Run("CreateDuplicateIsNoop", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewLegacyFavoriteRepository(db)

		if err := repo.Create(models.NewLegacyFavorite(0, models.CategoryMovies, "550")); err != nil {
			t.Fatalf("failed to create legacy favorite: %v", err)
		}

		if err := repo.Create(models.NewLegacyFavorite(0, models.CategoryMovies, "550")); err != nil {
			t.Fatalf("duplicate create should not error: %v", err)
		}

		favorites, err := repo.List(map[string]any{"category": "movies"})
		if err != nil {
			t.Fatalf("failed to list legacy favorites: %v", err)
		}

		if len(favorites) != 1 {
			t.Errorf("expected 1 favorite after duplicate create, got %d", len(favorites))
		}
	})

	t.Run("ListByCategory", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewLegacyFavoriteRepository(db)

		favorites := []*models.LegacyFavorite{
			models.NewLegacyFavorite(0, models.CategoryMovies, "550"),
			models.NewLegacyFavorite(0, models.CategoryMovies, "27205"),
			models.NewLegacyFavorite(0, models.CategoryTV, "1399"),
		}

		for _, favorite := range favorites {
			if err := repo.Create(favorite); err != nil {
				t.Fatalf("failed to create legacy favorite: %v", err)
			}
		}

		movies, err := repo.List(map[string]any{"category": "movies"})
		if err != nil {
			t.Fatalf("failed to list movie favorites: %v", err)
		}

		if len(movies) != 2 {
			t.Errorf("expected 2 movie favorites, got %d", len(movies))
		}

		shows, err := repo.List(map[string]any{"category": "tv"})
		if err != nil {
			t.Fatalf("failed to list tv favorites: %v", err)
		}

		if len(shows) != 1 {
			t.Errorf("expected 1 tv favorite, got %d", len(shows))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewLegacyFavoriteRepository(db)
		favorite := models.NewLegacyFavorite(0, models.CategoryActors, "6193")

		if err := repo.Create(favorite); err != nil {
			t.Fatalf("failed to create legacy favorite: %v", err)
		}

		if err := repo.Delete(favorite.ID()); err != nil {
			t.Fatalf("failed to delete legacy favorite: %v", err)
		}

		favorites, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list legacy favorites: %v", err)
		}

		if len(favorites) != 0 {
			t.Errorf("expected 0 favorites after delete, got %d", len(favorites))
		}
	})
}

func TestSyncJobRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSyncJobRepository(db)
		job := models.NewSyncJob(0, "user@example.com")

		if err := repo.Create(job); err != nil {
			t.Fatalf("failed to create sync job: %v", err)
		}

		if job.ID() == "" {
			t.Error("sync job ID should be set after creation")
		}

		if job.Status() != models.SyncPending {
			t.Errorf("expected pending status, got %s", job.Status())
		}
	})

	t.Run("UpdateLifecycle", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSyncJobRepository(db)
		job := models.NewSyncJob(0, "user@example.com")

		if err := repo.Create(job); err != nil {
			t.Fatalf("failed to create sync job: %v", err)
		}

		job.Start(5)
		if err := repo.Update(job); err != nil {
			t.Fatalf("failed to update running job: %v", err)
		}

		job.Complete(4, 1)
		if err := repo.Update(job); err != nil {
			t.Fatalf("failed to update completed job: %v", err)
		}

		retrieved, err := repo.Get(job.ID())
		if err != nil {
			t.Fatalf("failed to get sync job: %v", err)
		}

		if retrieved.Status() != models.SyncCompleted {
			t.Errorf("expected completed status, got %s", retrieved.Status())
		}

		if retrieved.Total() != 5 || retrieved.Synced() != 4 || retrieved.Failed() != 1 {
			t.Errorf("unexpected counters: total=%d synced=%d failed=%d",
				retrieved.Total(), retrieved.Synced(), retrieved.Failed())
		}

		if retrieved.StartedAt() == nil || retrieved.CompletedAt() == nil {
			t.Error("expected start and completion timestamps to be set")
		}
	})

	t.Run("Failure", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSyncJobRepository(db)
		job := models.NewSyncJob(0, "user@example.com")

		if err := repo.Create(job); err != nil {
			t.Fatalf("failed to create sync job: %v", err)
		}

		job.Start(3)
		job.Fail("store unreachable")
		if err := repo.Update(job); err != nil {
			t.Fatalf("failed to update failed job: %v", err)
		}

		retrieved, err := repo.Get(job.ID())
		if err != nil {
			t.Fatalf("failed to get sync job: %v", err)
		}

		if retrieved.Status() != models.SyncFailed {
			t.Errorf("expected failed status, got %s", retrieved.Status())
		}

		if retrieved.ErrorMessage() != "store unreachable" {
			t.Errorf("expected error message, got %q", retrieved.ErrorMessage())
		}
	})

	t.Run("ListByAccount", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSyncJobRepository(db)

		for _, email := range []string{"one@example.com", "one@example.com", "two@example.com"} {
			if err := repo.Create(models.NewSyncJob(0, email)); err != nil {
				t.Fatalf("failed to create sync job: %v", err)
			}
		}

		jobs, err := repo.List(map[string]any{"account_email": "one@example.com"})
		if err != nil {
			t.Fatalf("failed to list sync jobs: %v", err)
		}

		if len(jobs) != 2 {
			t.Errorf("expected 2 jobs for account, got %d", len(jobs))
		}
	})
}

func TestSessionRepository(t *testing.T) {
	t.Run("LoadEmpty", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)

		session, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load session: %v", err)
		}

		if session != nil {
			t.Error("expected nil session from empty store")
		}
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := &models.Session{
			Email:        "user@example.com",
			DisplayName:  "Test User",
			LocalID:      "abc123",
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
		}

		if err := repo.Save(session); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load session: %v", err)
		}

		if loaded == nil {
			t.Fatal("expected session, got nil")
		}

		if loaded.Email != "user@example.com" {
			t.Errorf("expected email user@example.com, got %s", loaded.Email)
		}

		if loaded.RefreshToken != "refresh-token" {
			t.Errorf("expected refresh token, got %s", loaded.RefreshToken)
		}
	})

	t.Run("SaveReplacesExisting", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)

		first := &models.Session{
			Email:        "first@example.com",
			LocalID:      "id-1",
			IDToken:      "token-1",
			RefreshToken: "refresh-1",
		}
		if err := repo.Save(first); err != nil {
			t.Fatalf("failed to save first session: %v", err)
		}

		second := &models.Session{
			Email:        "second@example.com",
			LocalID:      "id-2",
			IDToken:      "token-2",
			RefreshToken: "refresh-2",
		}
		if err := repo.Save(second); err != nil {
			t.Fatalf("failed to save second session: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load session: %v", err)
		}

		if loaded.Email != "second@example.com" {
			t.Errorf("expected second session, got %s", loaded.Email)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := &models.Session{
			Email:        "user@example.com",
			LocalID:      "abc123",
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
		}

		if err := repo.Save(session); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear session: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load session: %v", err)
		}

		if loaded != nil {
			t.Error("expected nil session after clear")
		}
	})

	t.Run("ClearEmptyIsNoop", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)

		if err := repo.Clear(); err != nil {
			t.Fatalf("clear of empty store should not error: %v", err)
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := NextSequence(db, "reviews")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	second, err := NextSequence(db, "reviews")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if second != first+1 {
		t.Errorf("expected sequence %d, got %d", first+1, second)
	}
}
