package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = searchItem{}
	_ list.Item = favoriteItem{}
)

// movieItem wraps [services.MovieSummary] to implement [list.Item].
type movieItem struct {
	movie services.MovieSummary
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := shared.FormatRating(i.movie.VoteAverage)
	if year := shared.YearOf(i.movie.ReleaseDate); year != "" {
		desc = fmt.Sprintf("%s (%s)", desc, year)
	}
	return desc
}

// searchItem wraps [services.SearchResult] to implement [list.Item].
type searchItem struct {
	result services.SearchResult
}

func (i searchItem) FilterValue() string { return i.result.DisplayName() }
func (i searchItem) Title() string       { return i.result.DisplayName() }
func (i searchItem) Description() string {
	switch i.result.MediaType {
	case "movie":
		if year := shared.YearOf(i.result.ReleaseDate); year != "" {
			return fmt.Sprintf("movie (%s)", year)
		}
		return "movie"
	case "tv":
		if year := shared.YearOf(i.result.FirstAirDate); year != "" {
			return fmt.Sprintf("tv (%s)", year)
		}
		return "tv"
	case "person":
		return "person"
	}
	return i.result.MediaType
}

// category maps the TMDB media type to a favorites category.
func (i searchItem) category() models.Category {
	switch i.result.MediaType {
	case "tv":
		return models.CategoryTV
	case "person":
		return models.CategoryActors
	}
	return models.CategoryMovies
}

// favoriteItem is one entry of the favorites document.
type favoriteItem struct {
	category models.Category
	id       string
}

func (i favoriteItem) FilterValue() string { return i.id }
func (i favoriteItem) Title() string       { return i.id }
func (i favoriteItem) Description() string { return string(i.category) }
