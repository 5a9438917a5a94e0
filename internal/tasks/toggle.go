package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// MembershipState is the resolved favorite status of a single item.
type MembershipState int

const (
	// Unknown is the initial state before any lookup has happened.
	Unknown MembershipState = iota
	NotFavorite
	IsFavorite
)

func (s MembershipState) String() string {
	switch s {
	case NotFavorite:
		return "not_favorite"
	case IsFavorite:
		return "favorite"
	default:
		return "unknown"
	}
}

// ToggleController resolves and flips the favorite status of one item.
// Detail views create one controller per displayed item.
type ToggleController struct {
	accessor *FavoritesAccessor
}

// NewToggleController creates a ToggleController over the given accessor.
func NewToggleController(accessor *FavoritesAccessor) *ToggleController {
	return &ToggleController{accessor: accessor}
}

// Resolve looks up the item's current favorite status with a single read.
// When no account is signed in it returns NotFavorite without contacting
// the store, and no error.
func (c *ToggleController) Resolve(ctx context.Context, category models.Category, id string) (MembershipState, error) {
	if c.accessor.identity.CurrentAccount() == nil {
		return NotFavorite, nil
	}

	doc, err := c.accessor.Favorites(ctx)
	if err != nil {
		return Unknown, err
	}

	if doc.Has(category, id) {
		return IsFavorite, nil
	}
	return NotFavorite, nil
}

// Toggle flips the item's favorite status: one write followed by one
// confirming read, so the returned state reflects what the store holds.
// When no account is signed in it returns ErrAuthRequired and performs
// no write.
func (c *ToggleController) Toggle(ctx context.Context, category models.Category, id string) (MembershipState, error) {
	if c.accessor.identity.CurrentAccount() == nil {
		return Unknown, fmt.Errorf("%w: sign in to manage favorites", shared.ErrAuthRequired)
	}

	state, err := c.Resolve(ctx, category, id)
	if err != nil {
		return Unknown, err
	}

	if state == IsFavorite {
		err = c.accessor.Remove(ctx, category, id)
	} else {
		err = c.accessor.Add(ctx, category, id)
	}
	if err != nil {
		return Unknown, err
	}

	return c.Resolve(ctx, category, id)
}
