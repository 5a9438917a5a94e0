package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/tasks"
)

type trendingFetchedMsg struct {
	page *services.MoviePage
	err  error
}

type searchDoneMsg struct {
	page *services.SearchPage
	err  error
}

type movieDetailMsg struct {
	result *tasks.MovieDetailResult
	err    error
}

type tvDetailMsg struct {
	result *tasks.TVDetailResult
	err    error
}

type personDetailMsg struct {
	result *tasks.PersonDetailResult
	err    error
}

type favoritesFetchedMsg struct {
	doc *models.FavoritesDocument
	err error
}

type favoriteStateMsg struct {
	state tasks.MembershipState
	err   error
}

type toggleDoneMsg struct {
	state tasks.MembershipState
	err   error
}

func (m *Model) fetchTrending() tea.Cmd {
	return func() tea.Msg {
		page, err := m.metadata.TrendingMoviesWeek(m.ctx)
		return trendingFetchedMsg{page: page, err: err}
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		page, err := m.metadata.SearchMulti(m.ctx, query, 1)
		return searchDoneMsg{page: page, err: err}
	}
}

func (m *Model) fetchDetail(category models.Category, id string) tea.Cmd {
	return func() tea.Msg {
		switch category {
		case models.CategoryTV:
			result, err := m.details.TVDetail(m.ctx, nil, id)
			return tvDetailMsg{result: result, err: err}
		case models.CategoryActors:
			result, err := m.details.PersonDetail(m.ctx, nil, id)
			return personDetailMsg{result: result, err: err}
		}
		result, err := m.details.MovieDetail(m.ctx, nil, id)
		return movieDetailMsg{result: result, err: err}
	}
}

func (m *Model) fetchFavorites() tea.Cmd {
	return func() tea.Msg {
		if m.accessor == nil {
			return favoritesFetchedMsg{err: shared.ErrAuthRequired}
		}
		doc, err := m.accessor.Favorites(m.ctx)
		return favoritesFetchedMsg{doc: doc, err: err}
	}
}

func (m *Model) resolveFavorite(category models.Category, id string) tea.Cmd {
	return func() tea.Msg {
		if m.toggles == nil {
			return favoriteStateMsg{err: shared.ErrAuthRequired}
		}
		state, err := m.toggles.Resolve(m.ctx, category, id)
		return favoriteStateMsg{state: state, err: err}
	}
}

func (m *Model) toggleFavorite(category models.Category, id string) tea.Cmd {
	return func() tea.Msg {
		if m.toggles == nil {
			return toggleDoneMsg{err: shared.ErrAuthRequired}
		}
		state, err := m.toggles.Toggle(m.ctx, category, id)
		return toggleDoneMsg{state: state, err: err}
	}
}
