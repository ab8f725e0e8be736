package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	trending := m.landing.trending
	if trending.IsFilterTyping() {
		return m, trending.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, Keys.Enter):
		if mv, ok := trending.Selected(); ok {
			return m.openDetails(mv.ID, ScreenLanding)
		}
		return m, nil
	case key.Matches(msg, Keys.Reload):
		return m.reloadTrending()
	case key.Matches(msg, Keys.OpenList):
		return m.enterList()
	case key.Matches(msg, Keys.OpenGallery):
		return m.enterGallery()
	case key.Matches(msg, Keys.Resume):
		if id, ok := m.resumeID(); ok {
			return m.openDetails(id, ScreenLanding)
		}
		return m, nil
	}

	return m, trending.Update(msg)
}

// reloadTrending refetches the trending titles under a new generation
func (m Model) reloadTrending() (tea.Model, tea.Cmd) {
	gen := m.landing.gen.Next()
	m.landing.trending.SetLoading(true)
	return m, LoadTrendingCmd(m.Catalog, gen, m.opts.TrendingCount)
}

// resumeID returns the persisted focus, if any
func (m Model) resumeID() (int, bool) {
	if m.Lists == nil {
		return 0, false
	}
	return m.Lists.Focus()
}

func (m Model) viewLanding() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Discover what to watch next."))
	b.WriteString("\n\n")
	b.WriteString(m.landing.trending.View())
	b.WriteString("\n")

	links := []string{
		styles.BadgeStyle.Render("1") + " Search the catalog",
		styles.BadgeStyle.Render("2") + " Browse by genre",
	}
	if _, ok := m.resumeID(); ok {
		links = append(links, styles.BadgeStyle.Render("r")+" Resume last viewed")
	}
	b.WriteString(strings.Join(links, "   "))
	return b.String()
}
