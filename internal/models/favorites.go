package models

import (
	"fmt"
	"slices"
)

// Category partitions the favorite sets in a FavoritesDocument.
type Category string

const (
	CategoryMovies Category = "movies"
	CategoryActors Category = "actors"
	CategoryTV     Category = "tv"
)

// AllCategories lists every valid category in document field order.
func AllCategories() []Category {
	return []Category{CategoryMovies, CategoryActors, CategoryTV}
}

// Validate returns an error if the category is not one of movies, actors, tv.
func (c Category) Validate() error {
	switch c {
	case CategoryMovies, CategoryActors, CategoryTV:
		return nil
	}
	return fmt.Errorf("unknown category: %q", string(c))
}

// FavoritesDocument is the per-account record in the remote document store,
// keyed by account email. The zero value is equivalent to three empty sets;
// an absent document reads the same way.
type FavoritesDocument struct {
	Movies []string `json:"movies,omitempty"`
	Actors []string `json:"actors,omitempty"`
	TV     []string `json:"tv,omitempty"`
}

// Set returns the identifier set for the given category.
// An unknown category returns nil.
func (d *FavoritesDocument) Set(c Category) []string {
	switch c {
	case CategoryMovies:
		return d.Movies
	case CategoryActors:
		return d.Actors
	case CategoryTV:
		return d.TV
	}
	return nil
}

// Has reports whether id is a member of the category's set.
func (d *FavoritesDocument) Has(c Category, id string) bool {
	return slices.Contains(d.Set(c), id)
}

// Count returns the total number of favorites across all categories.
func (d *FavoritesDocument) Count() int {
	return len(d.Movies) + len(d.Actors) + len(d.TV)
}
