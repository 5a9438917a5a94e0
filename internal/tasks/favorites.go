package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

// FavoritesAccessor mediates every read and write of the per-account
// favorites document. All operations require a signed-in account because
// the account email is the document key.
type FavoritesAccessor struct {
	identity services.Identity
	store    services.DocumentStore
	logger   *log.Logger
}

// NewFavoritesAccessor creates a FavoritesAccessor over the given identity and store.
func NewFavoritesAccessor(identity services.Identity, store services.DocumentStore, logger *log.Logger) *FavoritesAccessor {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}
	return &FavoritesAccessor{identity: identity, store: store, logger: logger}
}

// documentKey returns the current account's document key, or ErrAuthRequired
// when signed out. The store is never contacted without a key.
func (a *FavoritesAccessor) documentKey() (string, error) {
	account := a.identity.CurrentAccount()
	if account == nil {
		return "", fmt.Errorf("%w: sign in to manage favorites", shared.ErrAuthRequired)
	}
	return account.Email, nil
}

// Favorites retrieves the account's favorites document. An absent document
// reads as three empty sets, and a failed fetch is logged and reads the same
// way. Only a signed-out session errors.
func (a *FavoritesAccessor) Favorites(ctx context.Context) (*models.FavoritesDocument, error) {
	key, err := a.documentKey()
	if err != nil {
		return nil, err
	}

	doc, err := a.store.GetDocument(ctx, key)
	if errors.Is(err, shared.ErrNotFound) {
		return &models.FavoritesDocument{}, nil
	}
	if err != nil {
		a.logger.Warn("failed to fetch favorites, treating as empty", "key", key, "error", err)
		return &models.FavoritesDocument{}, nil
	}

	return doc, nil
}

// Add inserts id into the category's favorite set. Adding an ID that is
// already present leaves the set unchanged. The first add for an account
// seeds the document.
func (a *FavoritesAccessor) Add(ctx context.Context, category models.Category, id string) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if id == "" {
		return fmt.Errorf("%w: favorite requires a content ID", shared.ErrInvalidInput)
	}

	key, err := a.documentKey()
	if err != nil {
		return err
	}

	err = a.store.ArrayUnion(ctx, key, category, id)
	if errors.Is(err, shared.ErrNotFound) {
		doc := &models.FavoritesDocument{}
		switch category {
		case models.CategoryMovies:
			doc.Movies = []string{id}
		case models.CategoryActors:
			doc.Actors = []string{id}
		case models.CategoryTV:
			doc.TV = []string{id}
		}
		if err := a.store.SetDocument(ctx, key, doc, true); err != nil {
			return fmt.Errorf("%w: failed to seed favorites document: %v", shared.ErrAPIRequest, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to add favorite: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

// Remove deletes id from the category's favorite set. Removing from an
// absent document or an ID that is not present is a no-op.
func (a *FavoritesAccessor) Remove(ctx context.Context, category models.Category, id string) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if id == "" {
		return fmt.Errorf("%w: favorite requires a content ID", shared.ErrInvalidInput)
	}

	key, err := a.documentKey()
	if err != nil {
		return err
	}

	err = a.store.ArrayRemove(ctx, key, category, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to remove favorite: %v", shared.ErrAPIRequest, err)
	}

	return nil
}
