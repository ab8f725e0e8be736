package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

// fetchTimeout bounds every catalog call made from a command
const fetchTimeout = 30 * time.Second

// Command factories for async operations

// LoadTrendingCmd loads the first popular page for the landing screen
func LoadTrendingCmd(catalog domain.Catalog, gen uint64, count int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := catalog.Popular(ctx, 1)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading trending", Screen: ScreenLanding, Gen: gen}
		}
		movies := page.Results
		if count > 0 && len(movies) > count {
			movies = movies[:count]
		}
		return TrendingLoadedMsg{Gen: gen, Movies: movies}
	}
}

// LoadPopularCmd loads one page of popular movies for screen
func LoadPopularCmd(catalog domain.Catalog, screen Screen, gen uint64, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		p, err := catalog.Popular(ctx, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading popular movies", Screen: screen, Gen: gen}
		}
		return PageLoadedMsg{Screen: screen, Gen: gen, Page: p}
	}
}

// SearchCmd runs a text search for the list screen
func SearchCmd(catalog domain.Catalog, gen uint64, query string, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		p, err := catalog.Search(ctx, query, page)
		if err != nil {
			return ErrMsg{Err: err, Context: fmt.Sprintf("searching %q", query), Screen: ScreenList, Gen: gen}
		}
		return PageLoadedMsg{Screen: ScreenList, Gen: gen, Page: p}
	}
}

// DiscoverCmd loads movies matching every genre for the gallery
func DiscoverCmd(catalog domain.Catalog, gen uint64, genreIDs []int, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		p, err := catalog.DiscoverByGenres(ctx, genreIDs, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "discovering by genre", Screen: ScreenGallery, Gen: gen}
		}
		return PageLoadedMsg{Screen: ScreenGallery, Gen: gen, Page: p}
	}
}

// LoadGenresCmd loads the genre taxonomy
func LoadGenresCmd(catalog domain.Catalog) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		genres, err := catalog.Genres(ctx)
		if err != nil {
			// Gen 0 marks the genre list rather than a results page
			return ErrMsg{Err: err, Context: "loading genres", Screen: ScreenGallery}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// LoadDetailsCmd loads the enriched record for id
func LoadDetailsCmd(catalog domain.Catalog, gen uint64, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		detail, err := catalog.Details(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading details", Screen: ScreenDetails, Gen: gen}
		}
		return DetailsLoadedMsg{Gen: gen, Detail: detail}
	}
}

// OpenURLCmd hands url to the opener
func OpenURLCmd(opener domain.URLOpener, url, label string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return StatusMsg{Message: fmt.Sprintf("Could not open %s: %v", label, err), IsError: true}
		}
		return URLOpenedMsg{Label: label}
	}
}

// ClearStatusCmd returns a command that clears the status set under gen after a delay
func ClearStatusCmd(delay time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Gen: gen}
	})
}
