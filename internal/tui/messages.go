package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI. Fetch results carry the screen and generation
// that requested them; the model drops any whose generation is no longer current.

// ErrMsg represents a failed fetch or action
type ErrMsg struct {
	Err     error
	Context string
	Screen  Screen
	Gen     uint64
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TrendingLoadedMsg carries the landing screen's popular titles
type TrendingLoadedMsg struct {
	Gen    uint64
	Movies []domain.Movie
}

// PageLoadedMsg carries one page of results for the list or gallery screen
type PageLoadedMsg struct {
	Screen Screen
	Gen    uint64
	Page   domain.Page
}

// GenresLoadedMsg carries the genre taxonomy for the gallery
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// DetailsLoadedMsg carries the enriched record for the details screen
type DetailsLoadedMsg struct {
	Gen    uint64
	Detail *domain.MovieDetail
}

// URLOpenedMsg signals that an external link was handed to the browser
type URLOpenedMsg struct {
	Label string
}

// ClearStatusMsg clears the status bar message set under Gen
type ClearStatusMsg struct {
	Gen uint64
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
