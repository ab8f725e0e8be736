package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// enterGallery switches to the gallery, loading genres and popular titles on
// first visit. A genre list that failed to load is requested again.
func (m Model) enterGallery() (tea.Model, tea.Cmd) {
	m.Screen = ScreenGallery
	if m.gallery.started {
		return m, m.reloadGenres()
	}
	m.gallery.started = true
	m.gallery.pickerFocused = true
	m.gallery.genres.SetFocused(true)
	m.gallery.genres.SetLoading(true)

	m, cmd := m.fetchGallery()
	return m, tea.Batch(LoadGenresCmd(m.Catalog), cmd)
}

// reloadGenres retries a failed genre list load
func (m *Model) reloadGenres() tea.Cmd {
	if m.gallery.genres.Error() == "" {
		return nil
	}
	m.gallery.genres.SetLoading(true)
	return LoadGenresCmd(m.Catalog)
}

// fetchGallery requests the current page for the selected genres under a new generation.
// No selection falls back to the popular listing.
func (m Model) fetchGallery() (Model, tea.Cmd) {
	gen := m.gallery.gen.Next()
	ids := m.gallery.genres.Selected()
	m.gallery.fetched = ids
	m.gallery.results.SetLoading(true)

	if len(ids) == 0 {
		return m, LoadPopularCmd(m.Catalog, ScreenGallery, gen, m.gallery.pageNum)
	}
	return m, DiscoverCmd(m.Catalog, gen, ids, m.gallery.pageNum)
}

// handleGalleryPage shows a fetched page and publishes it in catalog order
func (m Model) handleGalleryPage(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.gallery.gen.Current(msg.Gen) {
		m.logger.Debug("dropping stale gallery page", "gen", msg.Gen, "current", m.gallery.gen.Value())
		return m, nil
	}

	m.gallery.page = msg.Page
	if names := m.gallery.genres.SelectedNames(); len(names) > 0 {
		m.gallery.results.SetTitle(strings.Join(names, " + "))
	} else {
		m.gallery.results.SetTitle("Popular")
	}
	m.gallery.results.SetItems(msg.Page.Results)
	return m.pushList(msg.Page.Results)
}

func (m *Model) toggleGalleryFocus() {
	m.gallery.pickerFocused = !m.gallery.pickerFocused
	m.gallery.genres.SetFocused(m.gallery.pickerFocused)
	m.gallery.results.SetFocused(!m.gallery.pickerFocused)
}

func (m Model) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker := m.gallery.genres
	results := m.gallery.results

	if picker.IsJumping() {
		_, cmd := picker.Update(msg)
		return m, cmd
	}
	if results.IsFilterTyping() {
		return m, results.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, Keys.Tab):
		m.toggleGalleryFocus()
		return m, nil
	case key.Matches(msg, Keys.Reload):
		genres := m.reloadGenres()
		var fetch tea.Cmd
		m, fetch = m.fetchGallery()
		return m, tea.Batch(genres, fetch)
	case key.Matches(msg, Keys.NextPage):
		if m.gallery.page.HasNext() && !results.IsLoading() {
			m.gallery.pageNum = m.gallery.page.Page + 1
			return m.fetchGallery()
		}
		return m, nil
	case key.Matches(msg, Keys.PrevPage):
		if m.gallery.page.Page > 1 && !results.IsLoading() {
			m.gallery.pageNum = m.gallery.page.Page - 1
			return m.fetchGallery()
		}
		return m, nil
	case key.Matches(msg, Keys.Back):
		if !m.gallery.pickerFocused && results.IsFiltering() {
			return m, results.Update(msg)
		}
		m.Screen = ScreenLanding
		return m, nil
	}

	if m.gallery.pickerFocused {
		changed, cmd := picker.Update(msg)
		if changed && !slices.Equal(picker.Selected(), m.gallery.fetched) {
			m.gallery.pageNum = 1
			var fetch tea.Cmd
			m, fetch = m.fetchGallery()
			return m, tea.Batch(cmd, fetch)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Enter):
		if mv, ok := results.Selected(); ok {
			return m.openDetails(mv.ID, ScreenGallery)
		}
		return m, nil
	case key.Matches(msg, components.ListKeys.Filter):
		results.ToggleFilter()
		return m, textinput.Blink
	}
	return m, results.Update(msg)
}

func (m Model) viewGallery() string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.gallery.genres.View(), m.gallery.results.View())

	info := styles.DimStyle.Render("space to toggle genres · tab to switch panes")
	if p := m.gallery.page; p.TotalPages > 0 && !m.gallery.results.IsLoading() {
		info = styles.DimStyle.Render(fmt.Sprintf("Page %d of %d · %d results", p.Page, p.TotalPages, p.TotalResults))
	}
	return panes + "\n" + info
}
