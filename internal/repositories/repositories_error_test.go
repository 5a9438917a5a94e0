package repositories

import (
	"testing"

	"github.com/desertthunder/marquee/internal/models"
)

func TestReviewRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewReviewRepository(db)
			review := models.NewReview(0, "", "reviewer@example.com", "Inception", "Great.", 9)

			if err := repo.Create(review); err == nil {
				t.Fatal("expected validation error for empty name")
			}
		})

		t.Run("InvalidRating", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewReviewRepository(db)
			review := models.NewReview(0, "Reviewer", "", "Inception", "Great.", 11)

			if err := repo.Create(review); err == nil {
				t.Fatal("expected validation error for rating above 10")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewReviewRepository(db)

			if _, err := repo.Get("nonexistent-id"); err == nil {
				t.Fatal("expected error when getting nonexistent review")
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewReviewRepository(db)
			review := models.NewReview(0, "Reviewer", "", "Inception", "Great.", 9)
			review.SetID("nonexistent-id")

			if err := repo.Update(review); err == nil {
				t.Fatal("expected error when updating nonexistent review")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewReviewRepository(db)

			if err := repo.Delete("nonexistent-id"); err == nil {
				t.Fatal("expected error when deleting nonexistent review")
			}
		})

		t.Run("AlreadyDeleted", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewReviewRepository(db)
			review := models.NewReview(0, "Reviewer", "", "Inception", "Great.", 9)

			if err := repo.Create(review); err != nil {
				t.Fatalf("failed to create review: %v", err)
			}

			if err := repo.Delete(review.ID()); err != nil {
				t.Fatalf("failed to delete review: %v", err)
			}

			if err := repo.Delete(review.ID()); err == nil {
				t.Fatal("expected error when deleting already deleted review")
			}
		})
	})
}

func TestLegacyFavoriteRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("InvalidCategory", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewLegacyFavoriteRepository(db)
			favorite := models.NewLegacyFavorite(0, models.Category("albums"), "550")

			if err := repo.Create(favorite); err == nil {
				t.Fatal("expected validation error for unknown category")
			}
		})

		t.Run("EmptyContentID", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewLegacyFavoriteRepository(db)
			favorite := models.NewLegacyFavorite(0, models.CategoryMovies, "")

			if err := repo.Create(favorite); err == nil {
				t.Fatal("expected validation error for empty content ID")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewLegacyFavoriteRepository(db)

			if _, err := repo.Get("nonexistent-id"); err == nil {
				t.Fatal("expected error when getting nonexistent favorite")
			}
		})
	})
}

func TestSyncJobRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("MissingEmail", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSyncJobRepository(db)
			job := models.NewSyncJob(0, "")

			if err := repo.Create(job); err == nil {
				t.Fatal("expected validation error for missing account email")
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSyncJobRepository(db)
			job := models.NewSyncJob(0, "user@example.com")
			job.SetID("nonexistent-id")

			if err := repo.Update(job); err == nil {
				t.Fatal("expected error when updating nonexistent job")
			}
		})
	})
}

func TestSessionRepositoryErrors(t *testing.T) {
	t.Run("Save", func(t *testing.T) {
		t.Run("MissingTokens", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSessionRepository(db)
			session := &models.Session{Email: "user@example.com"}

			if err := repo.Save(session); err == nil {
				t.Fatal("expected validation error for session without tokens")
			}
		})
	})
}
