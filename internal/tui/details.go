package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// castShown is how many billed cast members the details screen lists
const castShown = 6

// openDetails shows the details screen for id and records it as the focus.
// from is the screen esc returns to; moving between details keeps the original.
func (m Model) openDetails(id int, from Screen) (tea.Model, tea.Cmd) {
	if from != ScreenDetails {
		m.details.returnTo = from
	}
	m.Screen = ScreenDetails
	m.details.id = id
	m.details.detail = nil
	m.details.err = ""
	m.details.loading = true
	gen := m.details.gen.Next()

	if m.Lists != nil {
		if err := m.Lists.SetFocus(id); err != nil {
			m.logger.Warn("failed to persist focus", "id", id, "error", err)
		}
	}
	return m, LoadDetailsCmd(m.Catalog, gen, id)
}

// closeDetails returns to the screen details was opened from, keeping
// that screen's cursor on the movie last shown
func (m Model) closeDetails() (tea.Model, tea.Cmd) {
	m.Screen = m.details.returnTo
	switch m.Screen {
	case ScreenList:
		m.list.results.SelectID(m.details.id)
	case ScreenGallery:
		m.gallery.results.SelectID(m.details.id)
	case ScreenLanding:
		m.landing.trending.SelectID(m.details.id)
	}
	return m, nil
}

// neighbor returns the id before (delta -1) or after (delta 1) the shown movie
func (m Model) neighbor(delta int) (int, bool) {
	if m.Lists == nil {
		return 0, false
	}
	if delta < 0 {
		return m.Lists.Prev(m.details.id)
	}
	return m.Lists.Next(m.details.id)
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, Keys.Back):
		return m.closeDetails()
	case key.Matches(msg, Keys.Reload):
		return m.openDetails(m.details.id, ScreenDetails)
	case key.Matches(msg, Keys.Prev):
		if id, ok := m.neighbor(-1); ok {
			return m.openDetails(id, ScreenDetails)
		}
		return m, nil
	case key.Matches(msg, Keys.Next):
		if id, ok := m.neighbor(1); ok {
			return m.openDetails(id, ScreenDetails)
		}
		return m, nil
	}

	d := m.details.detail
	if d == nil {
		return m, nil
	}

	var link, label string
	switch {
	case key.Matches(msg, Keys.Trailer):
		link, label = d.TrailerURL(), "trailer"
	case key.Matches(msg, Keys.IMDb):
		link, label = d.IMDbURL(), "IMDb page"
	case key.Matches(msg, Keys.Homepage):
		link, label = d.HomepageURL(), "homepage"
	case key.Matches(msg, Keys.Poster):
		link, label = tmdb.ImageURL(m.opts.ImageBaseURL, tmdb.SizeOriginal, d.PosterPath), "poster"
	default:
		return m, nil
	}

	if link == "" {
		return m.setStatus("No "+label+" available", true)
	}
	if m.Opener == nil {
		return m, nil
	}
	return m, OpenURLCmd(m.Opener, link, label)
}

func (m Model) viewDetails() string {
	nav := m.renderDetailsNav()

	if m.details.loading {
		return nav + "\n\n" + m.spinner.View() + styles.DimStyle.Render(" Loading details...")
	}
	if m.details.err != "" {
		return nav + "\n\n" + styles.ErrorStyle.Render(m.details.err)
	}
	d := m.details.detail
	if d == nil {
		return nav
	}

	width := max(m.Width-4, MinPaneWidth)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(nav + "\n\n")

	title := styles.TitleStyle.Render(d.Title)
	if y := d.Year(); y > 0 {
		title += styles.DimStyle.Render(fmt.Sprintf(" (%d)", y))
	}
	b.WriteString(title + "\n")
	if d.Tagline != nil && *d.Tagline != "" {
		b.WriteString(styles.TaglineStyle.Render(*d.Tagline) + "\n")
	}

	var facts []string
	if d.ReleaseDate != "" {
		facts = append(facts, d.ReleaseDate)
	}
	if rt := d.FormattedRuntime(); rt != "" {
		facts = append(facts, rt)
	}
	facts = append(facts, styles.AccentStyle.Render(styles.Rating(d.VoteAverage)))
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(facts, " · ")) + "\n\n")

	overview := d.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(wrap.Render(overview) + "\n\n")

	if names := d.GenreNames(); len(names) > 0 {
		badges := make([]string, len(names))
		for i, n := range names {
			badges[i] = styles.DimBadgeStyle.Render(n)
		}
		b.WriteString(strings.Join(badges, " ") + "\n")
	}
	if dirs := d.Directors(); len(dirs) > 0 {
		b.WriteString(styles.DimStyle.Render("Directed by ") + strings.Join(dirs, ", ") + "\n")
	}

	if cast := d.TopCast(castShown); len(cast) > 0 {
		b.WriteString("\n" + styles.HeaderStyle.UnsetMarginBottom().Render("Cast") + "\n")
		for _, c := range cast {
			line := c.Name
			if c.Character != "" {
				line += styles.DimStyle.Render(" as " + c.Character)
			}
			b.WriteString("  " + line + "\n")
		}
	}

	var links []string
	if d.TrailerURL() != "" {
		links = append(links, styles.BadgeStyle.Render("t")+" "+styles.LinkStyle.Render("Trailer"))
	}
	if d.IMDbURL() != "" {
		links = append(links, styles.BadgeStyle.Render("i")+" "+styles.LinkStyle.Render("IMDb"))
	}
	if d.HomepageURL() != "" {
		links = append(links, styles.BadgeStyle.Render("w")+" "+styles.LinkStyle.Render("Homepage"))
	}
	if d.PosterPath != nil {
		links = append(links, styles.BadgeStyle.Render("p")+" "+styles.LinkStyle.Render("Poster"))
	}
	if len(links) > 0 {
		b.WriteString("\n" + strings.Join(links, "   "))
	}

	return b.String()
}

// renderDetailsNav renders the prev/next bar with the position in the list
func (m Model) renderDetailsNav() string {
	prev := styles.DimStyle.Render("← Prev")
	if _, ok := m.neighbor(-1); ok {
		prev = styles.AccentStyle.Render("← Prev")
	}
	next := styles.DimStyle.Render("Next →")
	if _, ok := m.neighbor(1); ok {
		next = styles.AccentStyle.Render("Next →")
	}

	pos := ""
	if m.Lists != nil {
		if i := m.Lists.IndexOf(m.details.id); i >= 0 {
			pos = styles.DimStyle.Render(fmt.Sprintf("  %d of %d  ", i+1, m.Lists.Len()))
		}
	}
	if pos == "" {
		pos = "  "
	}
	return prev + pos + next
}
