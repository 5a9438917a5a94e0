package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	tu "github.com/desertthunder/marquee/internal/testing"
)

func signedInFixture() (*FavoritesAccessor, *tu.MockIdentity, *tu.MemoryDocStore) {
	identity := &tu.MockIdentity{
		Account: &models.Account{Email: "user@example.com", LocalID: "local-1"},
	}
	store := tu.NewMemoryDocStore()
	return NewFavoritesAccessor(identity, store, nil), identity, store
}

func TestFavoritesAccessor(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyBeforeFirstAdd", func(t *testing.T) {
		accessor, _, _ := signedInFixture()

		doc, err := accessor.Favorites(ctx)
		if err != nil {
			t.Fatalf("failed to fetch favorites: %v", err)
		}

		if doc.Count() != 0 {
			t.Errorf("expected empty favorites before first add, got %d items", doc.Count())
		}
	})

	t.Run("AddSeedsDocument", func(t *testing.T) {
		accessor, _, store := signedInFixture()

		if err := accessor.Add(ctx, models.CategoryMovies, "550"); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}

		if !store.Contains("user@example.com", models.CategoryMovies, "550") {
			t.Error("expected movie in stored document after first add")
		}
	})

	t.Run("AddIsIdempotent", func(t *testing.T) {
		accessor, _, _ := signedInFixture()

		if err := accessor.Add(ctx, models.CategoryMovies, "550"); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}
		if err := accessor.Add(ctx, models.CategoryMovies, "550"); err != nil {
			t.Fatalf("failed to re-add favorite: %v", err)
		}

		doc, err := accessor.Favorites(ctx)
		if err != nil {
			t.Fatalf("failed to fetch favorites: %v", err)
		}

		if len(doc.Movies) != 1 {
			t.Errorf("expected 1 movie after double add, got %d", len(doc.Movies))
		}
	})

	t.Run("RemoveUndoesAdd", func(t *testing.T) {
		accessor, _, _ := signedInFixture()

		if err := accessor.Add(ctx, models.CategoryTV, "1399"); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}
		if err := accessor.Remove(ctx, models.CategoryTV, "1399"); err != nil {
			t.Fatalf("failed to remove favorite: %v", err)
		}

		doc, err := accessor.Favorites(ctx)
		if err != nil {
			t.Fatalf("failed to fetch favorites: %v", err)
		}

		if doc.Has(models.CategoryTV, "1399") {
			t.Error("expected show removed from favorites")
		}
	})

	t.Run("FetchFailureDegradesToEmpty", func(t *testing.T) {
		accessor, _, store := signedInFixture()
		store.GetErr = errors.New("connection reset by peer")

		doc, err := accessor.Favorites(ctx)
		if err != nil {
			t.Fatalf("fetch failure should degrade, not error: %v", err)
		}

		if doc.Count() != 0 {
			t.Errorf("expected empty favorites on fetch failure, got %d items", doc.Count())
		}
	})

	t.Run("RemoveFromAbsentDocumentIsNoop", func(t *testing.T) {
		accessor, _, _ := signedInFixture()

		if err := accessor.Remove(ctx, models.CategoryMovies, "550"); err != nil {
			t.Fatalf("remove from absent document should not error: %v", err)
		}
	})

	t.Run("CategoriesAreIsolated", func(t *testing.T) {
		accessor, _, _ := signedInFixture()

		if err := accessor.Add(ctx, models.CategoryMovies, "42"); err != nil {
			t.Fatalf("failed to add movie: %v", err)
		}
		if err := accessor.Add(ctx, models.CategoryActors, "42"); err != nil {
			t.Fatalf("failed to add actor: %v", err)
		}

		if err := accessor.Remove(ctx, models.CategoryMovies, "42"); err != nil {
			t.Fatalf("failed to remove movie: %v", err)
		}

		doc, err := accessor.Favorites(ctx)
		if err != nil {
			t.Fatalf("failed to fetch favorites: %v", err)
		}

		if doc.Has(models.CategoryMovies, "42") {
			t.Error("expected movie removed")
		}
		if !doc.Has(models.CategoryActors, "42") {
			t.Error("expected actor untouched by movie removal")
		}
	})

	t.Run("SignedOutIsRefused", func(t *testing.T) {
		identity := &tu.MockIdentity{}
		store := tu.NewMemoryDocStore()
		accessor := NewFavoritesAccessor(identity, store, nil)

		if _, err := accessor.Favorites(ctx); !errors.Is(err, shared.ErrAuthRequired) {
			t.Errorf("expected ErrAuthRequired from read, got %v", err)
		}

		if err := accessor.Add(ctx, models.CategoryMovies, "550"); !errors.Is(err, shared.ErrAuthRequired) {
			t.Errorf("expected ErrAuthRequired from add, got %v", err)
		}

		if store.WriteCalls != 0 || store.GetCalls != 0 {
			t.Errorf("expected no store contact while signed out, got %d reads %d writes",
				store.GetCalls, store.WriteCalls)
		}
	})

	t.Run("InvalidCategory", func(t *testing.T) {
		accessor, _, _ := signedInFixture()

		if err := accessor.Add(ctx, models.Category("albums"), "550"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestToggleController(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolveSignedOutIsNotFavorite", func(t *testing.T) {
		identity := &tu.MockIdentity{}
		store := tu.NewMemoryDocStore()
		controller := NewToggleController(NewFavoritesAccessor(identity, store, nil))

		state, err := controller.Resolve(ctx, models.CategoryMovies, "27205")
		if err != nil {
			t.Fatalf("resolve while signed out should not error: %v", err)
		}

		if state != NotFavorite {
			t.Errorf("expected NotFavorite while signed out, got %s", state)
		}

		if store.GetCalls != 0 {
			t.Errorf("expected no store contact while signed out, got %d reads", store.GetCalls)
		}
	})

	t.Run("ResolveNewItem", func(t *testing.T) {
		accessor, _, _ := signedInFixture()
		controller := NewToggleController(accessor)

		state, err := controller.Resolve(ctx, models.CategoryMovies, "550")
		if err != nil {
			t.Fatalf("failed to resolve: %v", err)
		}

		if state != NotFavorite {
			t.Errorf("expected NotFavorite for new item, got %s", state)
		}
	})

	t.Run("ToggleAddsThenRemoves", func(t *testing.T) {
		accessor, _, store := signedInFixture()
		controller := NewToggleController(accessor)

		state, err := controller.Toggle(ctx, models.CategoryMovies, "550")
		if err != nil {
			t.Fatalf("failed to toggle on: %v", err)
		}
		if state != IsFavorite {
			t.Errorf("expected IsFavorite after first toggle, got %s", state)
		}
		if !store.Contains("user@example.com", models.CategoryMovies, "550") {
			t.Error("expected movie in store after toggle on")
		}

		state, err = controller.Toggle(ctx, models.CategoryMovies, "550")
		if err != nil {
			t.Fatalf("failed to toggle off: %v", err)
		}
		if state != NotFavorite {
			t.Errorf("expected NotFavorite after second toggle, got %s", state)
		}
		if store.Contains("user@example.com", models.CategoryMovies, "550") {
			t.Error("expected movie gone from store after toggle off")
		}
	})

	t.Run("ToggleSurvivesFetchFailure", func(t *testing.T) {
		accessor, _, store := signedInFixture()
		controller := NewToggleController(accessor)
		store.GetErr = errors.New("connection reset by peer")

		state, err := controller.Toggle(ctx, models.CategoryMovies, "550")
		if err != nil {
			t.Fatalf("toggle should not fail on a degraded read: %v", err)
		}

		if state != NotFavorite {
			t.Errorf("expected degraded confirming read to report NotFavorite, got %s", state)
		}

		if !store.Contains("user@example.com", models.CategoryMovies, "550") {
			t.Error("expected the write to land despite failed reads")
		}
	})

	t.Run("ToggleSignedOutIsRefused", func(t *testing.T) {
		identity := &tu.MockIdentity{}
		store := tu.NewMemoryDocStore()
		controller := NewToggleController(NewFavoritesAccessor(identity, store, nil))

		_, err := controller.Toggle(ctx, models.CategoryMovies, "550")
		if !errors.Is(err, shared.ErrAuthRequired) {
			t.Errorf("expected ErrAuthRequired, got %v", err)
		}

		if store.WriteCalls != 0 {
			t.Errorf("expected no writes while signed out, got %d", store.WriteCalls)
		}
	})
}

func TestAccountEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteAccount", func(t *testing.T) {
		accessor, identity, store := signedInFixture()
		identity.Password = "hunter22"

		if err := accessor.Add(ctx, models.CategoryMovies, "550"); err != nil {
			t.Fatalf("failed to seed favorites: %v", err)
		}

		engine := NewAccountEngine(identity, store)

		result, err := engine.DeleteAccount(ctx, nil, "hunter22")
		if err != nil {
			t.Fatalf("failed to delete account: %v", err)
		}

		if !result.Success {
			t.Errorf("expected success, got message: %s", result.Message)
		}

		if store.HasDocument("user@example.com") {
			t.Error("expected favorites document deleted")
		}

		if identity.DeleteCalls != 1 {
			t.Errorf("expected 1 delete call, got %d", identity.DeleteCalls)
		}

		if identity.CurrentAccount() != nil {
			t.Error("expected signed-out end state")
		}
	})

	t.Run("DeleteAccountWithReauthRetry", func(t *testing.T) {
		_, identity, store := signedInFixture()
		identity.Password = "hunter22"
		identity.DeleteFailures = 1

		engine := NewAccountEngine(identity, store)

		result, err := engine.DeleteAccount(ctx, nil, "hunter22")
		if err != nil {
			t.Fatalf("failed to delete account after reauth: %v", err)
		}

		if !result.Success {
			t.Errorf("expected success, got message: %s", result.Message)
		}

		if identity.ReauthCalls != 1 {
			t.Errorf("expected 1 reauth call, got %d", identity.ReauthCalls)
		}

		if identity.DeleteCalls != 2 {
			t.Errorf("expected 2 delete calls, got %d", identity.DeleteCalls)
		}

		if store.DeleteCalls != 2 {
			t.Errorf("expected document delete replayed on retry, got %d calls", store.DeleteCalls)
		}

		if identity.CurrentAccount() != nil {
			t.Error("expected signed-out end state")
		}
	})

	t.Run("DeleteAccountReauthFails", func(t *testing.T) {
		_, identity, store := signedInFixture()
		identity.Password = "hunter22"
		identity.DeleteFailures = 1

		engine := NewAccountEngine(identity, store)

		result, err := engine.DeleteAccount(ctx, nil, "wrong-password")
		if err == nil {
			t.Fatal("expected error when reauth fails")
		}

		if result.Success {
			t.Error("expected failure result")
		}

		if identity.DeleteCalls != 1 {
			t.Errorf("expected no delete retry after failed reauth, got %d calls", identity.DeleteCalls)
		}
	})

	t.Run("DeleteAccountSecondRejectionSurfaces", func(t *testing.T) {
		_, identity, store := signedInFixture()
		identity.Password = "hunter22"
		identity.DeleteFailures = 2

		engine := NewAccountEngine(identity, store)

		_, err := engine.DeleteAccount(ctx, nil, "hunter22")
		if !errors.Is(err, shared.ErrRequiresRecentLogin) {
			t.Errorf("expected ErrRequiresRecentLogin after second rejection, got %v", err)
		}

		if identity.ReauthCalls != 1 {
			t.Errorf("expected exactly 1 reauth attempt, got %d", identity.ReauthCalls)
		}
	})

	t.Run("DeleteAccountSignedOut", func(t *testing.T) {
		identity := &tu.MockIdentity{}
		store := tu.NewMemoryDocStore()
		engine := NewAccountEngine(identity, store)

		_, err := engine.DeleteAccount(ctx, nil, "hunter22")
		if !errors.Is(err, shared.ErrAuthRequired) {
			t.Errorf("expected ErrAuthRequired, got %v", err)
		}

		if store.DeleteCalls != 0 {
			t.Errorf("expected no store contact while signed out, got %d deletes", store.DeleteCalls)
		}
	})

	t.Run("DeleteAccountEmitsProgress", func(t *testing.T) {
		_, identity, store := signedInFixture()
		engine := NewAccountEngine(identity, store)

		progress := make(chan ProgressUpdate, 10)
		if _, err := engine.DeleteAccount(ctx, progress, "hunter22"); err != nil {
			t.Fatalf("failed to delete account: %v", err)
		}
		close(progress)

		phases := map[Phase]bool{}
		for update := range progress {
			phases[update.Phase] = true
		}

		for _, phase := range []Phase{RemoveFavorites, DeleteIdentity, SignOut} {
			if !phases[phase] {
				t.Errorf("expected %s progress update", phase)
			}
		}
	})
}
