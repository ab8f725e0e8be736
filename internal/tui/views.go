package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the active screen with its header and footer
func (m Model) View() string {
	if !m.Ready {
		return m.spinner.View() + " Loading..."
	}

	var body string
	switch m.Screen {
	case ScreenList:
		body = m.viewList()
	case ScreenGallery:
		body = m.viewGallery()
	case ScreenDetails:
		body = m.viewDetails()
	default:
		body = m.viewLanding()
	}

	if m.SortModal.IsVisible() {
		bodyH := max(m.Height-ChromeHeight, lipgloss.Height(body))
		body = lipgloss.Place(m.Width-4, bodyH, lipgloss.Center, lipgloss.Center, m.SortModal.View())
	}

	return styles.ScreenStyle.Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			body,
			m.renderFooter(),
		),
	)
}

// renderHeader renders the app name and the screen breadcrumb
func (m Model) renderHeader() string {
	crumb := []string{styles.HighlightStyle.Render("MARQUEE")}
	if m.Screen != ScreenLanding {
		crumb = append(crumb, styles.SubtitleStyle.Render(m.Screen.String()))
	}
	return strings.Join(crumb, styles.DimStyle.Render(" › "))
}

// renderFooter renders the status message, or the help for the active screen
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}
	return m.help.View(Keys.helpFor(m.Screen))
}
