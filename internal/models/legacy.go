package models

import "fmt"

// LegacyFavorite is a favorite row written by releases that predate the
// remote document store. Kept readable as fallback state and replayed into
// the remote store by the favorites sync job.
type LegacyFavorite struct {
	base
	category  Category
	contentID string
}

// NewLegacyFavorite creates a legacy favorite row with timestamps set to now.
func NewLegacyFavorite(sequence int, category Category, contentID string) *LegacyFavorite {
	return &LegacyFavorite{
		base:      newBase(sequence),
		category:  category,
		contentID: contentID,
	}
}

func (f *LegacyFavorite) Category() Category { return f.category }
func (f *LegacyFavorite) ContentID() string  { return f.contentID }

// Validate checks the category and content ID.
func (f *LegacyFavorite) Validate() error {
	if err := f.category.Validate(); err != nil {
		return err
	}
	if f.contentID == "" {
		return fmt.Errorf("legacy favorite requires a content ID")
	}
	return nil
}
