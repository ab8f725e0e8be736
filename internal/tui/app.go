package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/debounce"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/listctx"
	"github.com/mmcdole/marquee/internal/sorting"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Screen identifies one of the top-level views
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenList
	ScreenGallery
	ScreenDetails
)

// String returns the screen's display name
func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "Search"
	case ScreenGallery:
		return "Genres"
	case ScreenDetails:
		return "Details"
	default:
		return "Home"
	}
}

// statusDuration is how long transient status messages stay visible
const statusDuration = 3 * time.Second

// Layout constants
const (
	// ChromeHeight covers the header line and the footer lines
	ChromeHeight = 4

	// GenrePanePercent is the gallery's genre column share of the width
	GenrePanePercent = 30

	MinPaneWidth = 20
)

// Options tune behavior that comes from configuration
type Options struct {
	Debounce          time.Duration
	DefaultSort       sorting.Key
	DefaultDirection  sorting.Direction
	RelevanceOnSearch bool
	TrendingCount     int
	ImageBaseURL      string
	Logger            *slog.Logger
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Debounce:          debounce.DefaultQuiet,
		DefaultSort:       sorting.Title,
		DefaultDirection:  sorting.Desc,
		RelevanceOnSearch: true,
		TrendingCount:     10,
	}
}

type landingState struct {
	trending *components.MovieList
	gen      debounce.Generation
}

type listState struct {
	started      bool
	input        textinput.Model
	inputFocused bool
	query        *debounce.Controller[string]
	fetched      string // query the current results belong to

	results *components.MovieList
	raw     []domain.Movie // results in catalog order
	page    domain.Page
	pageNum int
	sortKey sorting.Key
	sortDir sorting.Direction
	gen     debounce.Generation
}

type galleryState struct {
	started       bool
	genres        *components.GenrePicker
	pickerFocused bool
	fetched       []int // genre selection the current results belong to

	results *components.MovieList
	page    domain.Page
	pageNum int
	gen     debounce.Generation
}

type detailsState struct {
	id       int
	detail   *domain.MovieDetail
	loading  bool
	err      string
	returnTo Screen
	gen      debounce.Generation
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Catalog domain.Catalog
	Lists   *listctx.Context
	Opener  domain.URLOpener

	opts   Options
	logger *slog.Logger

	// Application state
	Screen Screen
	Ready  bool

	// Dimensions
	Width  int
	Height int

	landing landingState
	list    listState
	gallery galleryState
	details detailsState

	SortModal components.SortModal
	spinner   spinner.Model
	help      help.Model

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusGen   debounce.Generation
}

// NewModel creates a new application model
func NewModel(catalog domain.Catalog, lists *listctx.Context, opener domain.URLOpener, opts Options) Model {
	defaults := DefaultOptions()
	if opts.Debounce <= 0 {
		opts.Debounce = defaults.Debounce
	}
	if opts.DefaultSort == "" {
		opts.DefaultSort = defaults.DefaultSort
	}
	if opts.DefaultDirection == "" {
		opts.DefaultDirection = defaults.DefaultDirection
	}
	if opts.TrendingCount <= 0 {
		opts.TrendingCount = defaults.TrendingCount
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "Search: "
	input.PromptStyle = styles.FilterPromptStyle
	input.TextStyle = styles.FilterStyle
	input.CharLimit = 100

	m := Model{
		Catalog:   catalog,
		Lists:     lists,
		Opener:    opener,
		opts:      opts,
		logger:    logger,
		Screen:    ScreenLanding,
		SortModal: components.NewSortModal(),
		spinner:   sp,
		help:      help.New(),
	}

	m.landing.trending = components.NewMovieList("Trending Now")
	m.landing.trending.SetFocused(true)
	m.landing.trending.SetLoading(true)
	m.landing.gen.Next()

	m.list.input = input
	m.list.query = debounce.New[string](opts.Debounce)
	m.list.results = components.NewMovieList("Popular")
	m.list.results.SetEmptyText("No movies found")
	m.list.pageNum = 1
	m.list.sortKey = opts.DefaultSort
	m.list.sortDir = opts.DefaultDirection

	m.gallery.genres = components.NewGenrePicker()
	m.gallery.results = components.NewMovieList("Popular")
	m.gallery.results.SetEmptyText("No movies match every selected genre")
	m.gallery.pageNum = 1

	return m
}

// Init starts the trending fetch and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadTrendingCmd(m.Catalog, m.landing.gen.Value(), m.opts.TrendingCount),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncSpinner()
		return m, cmd

	case debounce.SettledMsg[string]:
		return m.handleQuerySettled(msg)

	case TrendingLoadedMsg:
		if !m.landing.gen.Current(msg.Gen) {
			return m, nil
		}
		m.landing.trending.SetItems(msg.Movies)
		return m, nil

	case PageLoadedMsg:
		switch msg.Screen {
		case ScreenList:
			return m.handleListPage(msg)
		case ScreenGallery:
			return m.handleGalleryPage(msg)
		}
		return m, nil

	case GenresLoadedMsg:
		m.gallery.genres.SetGenres(msg.Genres)
		return m, nil

	case DetailsLoadedMsg:
		if !m.details.gen.Current(msg.Gen) {
			m.logger.Debug("dropping stale details", "gen", msg.Gen)
			return m, nil
		}
		m.details.loading = false
		m.details.detail = msg.Detail
		return m, nil

	case ErrMsg:
		return m.handleErr(msg)

	case URLOpenedMsg:
		return m.setStatus("Opened "+msg.Label, false)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if !m.statusGen.Current(msg.Gen) {
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input housekeeping
	if m.Screen == ScreenList && m.list.inputFocused {
		var cmd tea.Cmd
		m.list.input, cmd = m.list.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg routes keys to the modal or the active screen
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.SortModal.IsVisible() {
		_, sel := m.SortModal.HandleKey(msg.String())
		if sel != nil {
			return m.applySort(sel.Key, sel.Direction)
		}
		return m, nil
	}

	switch m.Screen {
	case ScreenList:
		return m.updateList(msg)
	case ScreenGallery:
		return m.updateGallery(msg)
	case ScreenDetails:
		return m.updateDetails(msg)
	default:
		return m.updateLanding(msg)
	}
}

// handleErr turns a failed fetch into the owning screen's error state
func (m Model) handleErr(msg ErrMsg) (tea.Model, tea.Cmd) {
	text := "Failed to load. Please try again."
	if errors.Is(msg.Err, domain.ErrInvalidAPIKey) {
		text = "TMDB rejected the API key. Run marquee --setup."
	}

	switch msg.Screen {
	case ScreenLanding:
		if !m.landing.gen.Current(msg.Gen) {
			return m, nil
		}
		m.landing.trending.SetError("Failed to load trending movies.")
	case ScreenList:
		if !m.list.gen.Current(msg.Gen) {
			return m, nil
		}
		m.list.raw = nil
		m.list.results.SetError(text)
	case ScreenGallery:
		if msg.Gen == 0 {
			m.gallery.genres.SetError("Failed to load genres.")
			break
		}
		if !m.gallery.gen.Current(msg.Gen) {
			return m, nil
		}
		m.gallery.results.SetError(text)
	case ScreenDetails:
		if !m.details.gen.Current(msg.Gen) {
			return m, nil
		}
		m.details.loading = false
		m.details.err = "Failed to load details. Please try again."
	}

	m.logger.Error(msg.Context, "error", msg.Err, "screen", msg.Screen.String())
	return m, nil
}

// setStatus shows a transient message in the footer
func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusDuration, m.statusGen.Next())
}

// pushList publishes movies, in display order, as the shared list context
func (m Model) pushList(movies []domain.Movie) (Model, tea.Cmd) {
	if m.Lists == nil {
		return m, nil
	}
	if err := m.Lists.ReplaceList(movies); err != nil {
		m.logger.Warn("failed to persist list context", "error", err)
		return m.setStatus("Could not save the current list", true)
	}
	return m, nil
}

// syncSpinner hands the current spinner frame to components that show it
func (m *Model) syncSpinner() {
	frame := m.spinner.View()
	m.landing.trending.SetSpinnerView(frame)
	m.list.results.SetSpinnerView(frame)
	m.gallery.results.SetSpinnerView(frame)
	m.gallery.genres.SetSpinnerView(frame)
}

// updateLayout resizes every pane to the current window
func (m *Model) updateLayout() {
	bodyW := max(m.Width-4, MinPaneWidth)
	bodyH := max(m.Height-ChromeHeight, 6)

	m.landing.trending.SetSize(bodyW, max(bodyH-3, 5))

	m.list.input.Width = max(bodyW-len(m.list.input.Prompt)-4, 10)
	m.list.results.SetSize(bodyW, max(bodyH-4, 5))

	genreW := max(bodyW*GenrePanePercent/100, MinPaneWidth)
	m.gallery.genres.SetSize(genreW, bodyH-1)
	m.gallery.results.SetSize(max(bodyW-genreW, MinPaneWidth), bodyH-1)

	m.help.Width = m.Width
}

// isTyping reports whether keystrokes currently go to a text field
func (m Model) isTyping() bool {
	switch m.Screen {
	case ScreenList:
		return m.list.inputFocused || m.list.results.IsFilterTyping()
	case ScreenGallery:
		return m.gallery.genres.IsJumping() || m.gallery.results.IsFilterTyping()
	case ScreenLanding:
		return m.landing.trending.IsFilterTyping()
	}
	return false
}
