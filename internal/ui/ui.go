package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TrendingView ViewState = iota
	SearchView
	DetailView
	FavoritesView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	prevView ViewState
	metadata services.Metadata
	details  *tasks.DetailEngine
	toggles  *tasks.ToggleController
	accessor *tasks.FavoritesAccessor
	width    int
	height   int

	trendingList list.Model
	searchInput  textinput.Model
	searchList   list.Model
	searching    bool
	favList      list.Model

	detailCategory models.Category
	detailID       string
	movieDetail    *tasks.MovieDetailResult
	tvDetail       *tasks.TVDetailResult
	personDetail   *tasks.PersonDetailResult
	favState       tasks.MembershipState
	notice         string

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, metadata services.Metadata, details *tasks.DetailEngine, toggles *tasks.ToggleController, accessor *tasks.FavoritesAccessor) *Model {
	input := textinput.New()
	input.Placeholder = "Search movies, TV shows, people..."
	input.CharLimit = 100

	return &Model{
		ctx:         ctx,
		view:        TrendingView,
		metadata:    metadata,
		details:     details,
		toggles:     toggles,
		accessor:    accessor,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching the trending list.
func (m *Model) Init() tea.Cmd {
	return m.fetchTrending()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.trendingList, &m.searchList, &m.favList} {
			if l.Width() == 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TrendingView:
			return m.handleTrendingKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case FavoritesView:
			return m.handleFavoritesKeys(msg)
		}

	case trendingFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.page.Results))
		for i, movie := range msg.page.Results {
			items[i] = movieItem{movie: movie}
		}
		m.trendingList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trendingList.Title = "Trending This Week"
		m.trendingList.SetSize(m.width-4, m.height-8)
		return m, nil

	case searchDoneMsg:
		m.searching = false
		if msg.err != nil {
			m.notice = fmt.Sprintf("Search failed: %v", msg.err)
			return m, nil
		}
		items := make([]list.Item, len(msg.page.Results))
		for i, result := range msg.page.Results {
			items[i] = searchItem{result: result}
		}
		m.searchList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.searchList.Title = fmt.Sprintf("Results for '%s'", m.searchInput.Value())
		m.searchList.SetSize(m.width-4, m.height-8)
		return m, nil

	case movieDetailMsg:
		return m.enterDetail(msg.err, func() { m.movieDetail = msg.result })

	case tvDetailMsg:
		return m.enterDetail(msg.err, func() { m.tvDetail = msg.result })

	case personDetailMsg:
		return m.enterDetail(msg.err, func() { m.personDetail = msg.result })

	case favoritesFetchedMsg:
		if msg.err != nil {
			m.notice = signInNotice(msg.err)
			m.view = m.prevView
			return m, nil
		}
		var items []list.Item
		for _, category := range models.AllCategories() {
			for _, id := range msg.doc.Set(category) {
				items = append(items, favoriteItem{category: category, id: id})
			}
		}
		m.favList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.favList.Title = "Favorites"
		m.favList.SetSize(m.width-4, m.height-8)
		m.view = FavoritesView
		return m, nil

	case favoriteStateMsg:
		if msg.err == nil {
			m.favState = msg.state
		}
		return m, nil

	case toggleDoneMsg:
		if msg.err != nil {
			m.notice = signInNotice(msg.err)
			return m, nil
		}
		m.favState = msg.state
		m.notice = ""
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case TrendingView:
		return m.renderTrending()
	case SearchView:
		return m.renderSearch()
	case DetailView:
		return m.renderDetail()
	case FavoritesView:
		return m.renderFavorites()
	default:
		return ""
	}
}

func (m *Model) enterDetail(err error, assign func()) (tea.Model, tea.Cmd) {
	if err != nil {
		m.notice = fmt.Sprintf("Failed to load details: %v", err)
		return m, nil
	}
	assign()
	m.view = DetailView
	return m, m.resolveFavorite(m.detailCategory, m.detailID)
}

func (m *Model) openDetail(from ViewState, category models.Category, id string) (tea.Model, tea.Cmd) {
	m.prevView = from
	m.detailCategory = category
	m.detailID = id
	m.movieDetail = nil
	m.tvDetail = nil
	m.personDetail = nil
	m.favState = tasks.Unknown
	m.notice = ""
	return m, m.fetchDetail(category, id)
}

func (m *Model) handleTrendingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.view = SearchView
		m.searchInput.Focus()
		return m, textinput.Blink
	case "v":
		m.prevView = TrendingView
		return m, m.fetchFavorites()
	case "enter":
		if selected, ok := m.trendingList.SelectedItem().(movieItem); ok {
			return m.openDetail(TrendingView, models.CategoryMovies, strconv.Itoa(selected.movie.ID))
		}
	}

	var cmd tea.Cmd
	m.trendingList, cmd = m.trendingList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchInput.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.searchInput.Blur()
			m.view = TrendingView
			return m, nil
		case "enter":
			query := strings.TrimSpace(m.searchInput.Value())
			if query == "" {
				return m, nil
			}
			m.searchInput.Blur()
			m.searching = true
			return m, m.runSearch(query)
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TrendingView
		return m, nil
	case "/":
		m.searchInput.Focus()
		return m, textinput.Blink
	case "enter":
		if selected, ok := m.searchList.SelectedItem().(searchItem); ok {
			return m.openDetail(SearchView, selected.category(), strconv.Itoa(selected.result.ID))
		}
	}

	var cmd tea.Cmd
	m.searchList, cmd = m.searchList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = m.prevView
		m.notice = ""
		return m, nil
	case "f":
		return m, m.toggleFavorite(m.detailCategory, m.detailID)
	}
	return m, nil
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TrendingView
		return m, nil
	case "enter":
		if selected, ok := m.favList.SelectedItem().(favoriteItem); ok {
			return m.openDetail(FavoritesView, selected.category, selected.id)
		}
	}

	var cmd tea.Cmd
	m.favList, cmd = m.favList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TrendingView:
		m.trendingList, cmd = m.trendingList.Update(msg)
	case SearchView:
		if !m.searchInput.Focused() {
			m.searchList, cmd = m.searchList.Update(msg)
		}
	case FavoritesView:
		m.favList, cmd = m.favList.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderTrending() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.favorites, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	body := m.trendingList.View()
	if m.notice != "" {
		body = fmt.Sprintf("%s\n%s", styles.warn.Render(m.notice), body)
	}
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}

func (m *Model) renderSearch() string {
	if m.searchInput.Focused() || m.searching {
		title := styles.title.Render("Search")
		status := ""
		if m.searching {
			status = "\nSearching..."
		}
		return fmt.Sprintf("%s\n%s%s\n\n%s", title, m.searchInput.View(), status,
			m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit}))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	body := m.searchList.View()
	if m.notice != "" {
		body = fmt.Sprintf("%s\n%s", styles.warn.Render(m.notice), body)
	}
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}

func (m *Model) renderDetail() string {
	var body string
	switch {
	case m.movieDetail != nil:
		body = m.renderMovieDetail()
	case m.tvDetail != nil:
		body = m.renderTVDetail()
	case m.personDetail != nil:
		body = m.renderPersonDetail()
	default:
		body = "Loading..."
	}

	status := m.renderFavoriteLine()
	helpKeys := []key.Binding{m.keys.favorite, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s\n\n%s", body, status, helpView)
}

func (m *Model) renderFavoriteLine() string {
	if m.notice != "" {
		return styles.warn.Render(m.notice)
	}
	switch m.favState {
	case tasks.IsFavorite:
		return styles.ok.Render("★ In favorites")
	case tasks.NotFavorite:
		return styles.help.Render("☆ Not in favorites")
	}
	return ""
}

func (m *Model) renderMovieDetail() string {
	d := m.movieDetail
	var b strings.Builder

	title := d.Movie.Title
	if year := shared.YearOf(d.Movie.ReleaseDate); year != "" {
		title = fmt.Sprintf("%s (%s)", title, year)
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	if d.Movie.Tagline != "" {
		b.WriteString(styles.help.Render(d.Movie.Tagline))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n%s · %s\n", shared.FormatRating(d.Movie.VoteAverage), shared.FormatRuntime(d.Movie.Runtime)))

	if d.Movie.Overview != "" {
		b.WriteString("\n" + d.Movie.Overview + "\n")
	}

	if d.Trailer != nil {
		b.WriteString(fmt.Sprintf("\nTrailer: %s\n", d.Trailer.WatchURL()))
	}

	if len(d.Cast) > 0 {
		b.WriteString("\nCast: " + castLine(d.Cast) + "\n")
	}

	if len(d.Similar) > 0 {
		b.WriteString("\nSimilar:\n")
		for i, movie := range d.Similar {
			if i == 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  • %s\n", movie.Title))
		}
	}

	if len(d.Errors) > 0 {
		b.WriteString("\n" + styles.warn.Render(fmt.Sprintf("%d section(s) unavailable", len(d.Errors))) + "\n")
	}
	return b.String()
}

func (m *Model) renderTVDetail() string {
	d := m.tvDetail
	var b strings.Builder

	title := d.Show.Name
	if year := shared.YearOf(d.Show.FirstAirDate); year != "" {
		title = fmt.Sprintf("%s (%s)", title, year)
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("\n%s · %d seasons, %d episodes\n",
		shared.FormatRating(d.Show.VoteAverage), d.Show.NumberOfSeasons, d.Show.NumberOfEpisodes))

	if d.Show.Overview != "" {
		b.WriteString("\n" + d.Show.Overview + "\n")
	}

	if d.Trailer != nil {
		b.WriteString(fmt.Sprintf("\nTrailer: %s\n", d.Trailer.WatchURL()))
	}

	if len(d.Cast) > 0 {
		b.WriteString("\nCast: " + castLine(d.Cast) + "\n")
	}

	if len(d.Similar) > 0 {
		b.WriteString("\nSimilar:\n")
		for i, show := range d.Similar {
			if i == 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  • %s\n", show.Name))
		}
	}

	if len(d.Errors) > 0 {
		b.WriteString("\n" + styles.warn.Render(fmt.Sprintf("%d section(s) unavailable", len(d.Errors))) + "\n")
	}
	return b.String()
}

func (m *Model) renderPersonDetail() string {
	d := m.personDetail
	var b strings.Builder

	b.WriteString(styles.title.Render(d.Person.Name))
	b.WriteString("\n")

	if d.Person.Department != "" {
		b.WriteString(styles.help.Render(d.Person.Department))
		b.WriteString("\n")
	}

	if d.Person.Biography != "" {
		b.WriteString("\n" + d.Person.Biography + "\n")
	}

	if len(d.Credits) > 0 {
		b.WriteString("\nKnown for:\n")
		for i, movie := range d.Credits {
			if i == 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  • %s\n", movie.Title))
		}
	}
	return b.String()
}

func (m *Model) renderFavorites() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.favList.View(), helpView)
}

func castLine(cast []services.CastMember) string {
	names := make([]string, 0, 4)
	for i, member := range cast {
		if i == 4 {
			break
		}
		names = append(names, member.Name)
	}
	return strings.Join(names, ", ")
}

// signInNotice turns auth failures into a user-facing prompt.
func signInNotice(err error) string {
	if errors.Is(err, shared.ErrAuthRequired) || errors.Is(err, shared.ErrNotAuthenticated) {
		return "Sign in to manage favorites (marquee account login)"
	}
	return err.Error()
}
