package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// AccountEngine orchestrates multi-step account operations that span the
// identity provider and the document store.
type AccountEngine struct {
	identity services.Identity
	store    services.DocumentStore
}

// NewAccountEngine creates an AccountEngine with the provided services.
func NewAccountEngine(identity services.Identity, store services.DocumentStore) *AccountEngine {
	return &AccountEngine{identity: identity, store: store}
}

// DeleteAccount permanently removes the current account: stored favorites
// first, then the identity record, then the local session.
//
// When the provider rejects the identity delete because the session is too
// old, the engine re-authenticates once with the supplied password and
// replays the sequence from the favorites delete. A second rejection is
// returned to the caller.
//
// The steps are not transactional. A failure after the favorites delete
// leaves the identity record intact with its document already gone, which
// reads back as an empty favorites set.
func (e *AccountEngine) DeleteAccount(ctx context.Context, progress chan<- ProgressUpdate, password string) (*models.OpResult, error) {
	account := e.identity.CurrentAccount()
	if account == nil {
		return nil, fmt.Errorf("%w: sign in before deleting the account", shared.ErrAuthRequired)
	}

	sendProgress(progress, removeFavoritesUpdate(1, 3))

	if err := e.store.DeleteDocument(ctx, account.Email); err != nil {
		return &models.OpResult{
			Success: false,
			Message: fmt.Sprintf("failed to remove stored favorites: %v", err),
		}, err
	}

	sendProgress(progress, deleteIdentityUpdate(2, 3))

	err := e.identity.DeleteAccount(ctx)
	if errors.Is(err, shared.ErrRequiresRecentLogin) {
		sendProgress(progress, reauthenticateUpdate(2, 3))

		if reauthErr := e.identity.Reauthenticate(ctx, password); reauthErr != nil {
			return &models.OpResult{
				Success: false,
				Message: fmt.Sprintf("re-authentication failed: %v", reauthErr),
			}, reauthErr
		}

		sendProgress(progress, removeFavoritesUpdate(1, 3))

		if docErr := e.store.DeleteDocument(ctx, account.Email); docErr != nil {
			return &models.OpResult{
				Success: false,
				Message: fmt.Sprintf("failed to remove stored favorites: %v", docErr),
			}, docErr
		}

		sendProgress(progress, deleteIdentityUpdate(2, 3))

		err = e.identity.DeleteAccount(ctx)
	}
	if err != nil {
		return &models.OpResult{
			Success: false,
			Message: fmt.Sprintf("failed to delete account record: %v", err),
		}, err
	}

	sendProgress(progress, signOutUpdate(3, 3))

	if err := e.identity.SignOut(ctx); err != nil {
		return &models.OpResult{
			Success: false,
			Message: fmt.Sprintf("account deleted but sign-out failed: %v", err),
		}, err
	}

	return &models.OpResult{
		Success: true,
		Message: fmt.Sprintf("Account %s deleted", account.Email),
	}, nil
}
