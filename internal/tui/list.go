package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/debounce"
	"github.com/mmcdole/marquee/internal/sorting"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// enterList switches to the list screen, starting the first fetch on first visit
func (m Model) enterList() (tea.Model, tea.Cmd) {
	m.Screen = ScreenList
	m.focusListInput()
	cmds := []tea.Cmd{textinput.Blink}
	if !m.list.started {
		m.list.started = true
		var cmd tea.Cmd
		m, cmd = m.fetchList()
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) focusListInput() {
	m.list.inputFocused = true
	m.list.input.Focus()
	m.list.results.SetFocused(false)
}

func (m *Model) focusListResults() {
	m.list.inputFocused = false
	m.list.input.Blur()
	m.list.results.SetFocused(true)
}

// fetchList requests the current page for the stable query under a new generation
func (m Model) fetchList() (Model, tea.Cmd) {
	gen := m.list.gen.Next()
	query := strings.TrimSpace(m.list.query.Stable())
	m.list.fetched = query
	m.list.results.SetLoading(true)

	if query == "" {
		return m, LoadPopularCmd(m.Catalog, ScreenList, gen, m.list.pageNum)
	}
	return m, SearchCmd(m.Catalog, gen, query, m.list.pageNum)
}

// handleQuerySettled applies a debounced query once it has been quiet long enough
func (m Model) handleQuerySettled(msg debounce.SettledMsg[string]) (tea.Model, tea.Cmd) {
	value, ok := m.list.query.Settle(msg)
	if !ok {
		return m, nil
	}
	return m.applyQuery(value)
}

// applyQuery refetches from page one when the settled query differs from the
// one the results belong to, or when that fetch failed. A non-empty query
// switches to relevance order.
func (m Model) applyQuery(value string) (Model, tea.Cmd) {
	query := strings.TrimSpace(value)
	if m.list.started && query == m.list.fetched && m.list.results.Error() == "" {
		return m, nil
	}
	m.list.started = true
	m.list.pageNum = 1
	if query != "" && m.opts.RelevanceOnSearch {
		m.list.sortKey = sorting.Relevance
		m.list.sortDir = sorting.Desc
	}
	return m.fetchList()
}

// handleListPage shows a fetched page in the active sort order and publishes it
func (m Model) handleListPage(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.list.gen.Current(msg.Gen) {
		m.logger.Debug("dropping stale list page", "gen", msg.Gen, "current", m.list.gen.Value())
		return m, nil
	}

	m.list.page = msg.Page
	m.list.raw = msg.Page.Results
	sorted := sorting.Reorder(m.list.raw, m.list.sortKey, m.list.sortDir)

	if m.list.fetched == "" {
		m.list.results.SetTitle("Popular")
	} else {
		m.list.results.SetTitle(fmt.Sprintf("Results for %q", m.list.fetched))
	}
	m.list.results.SetItems(sorted)
	return m.pushList(sorted)
}

// applySort reorders the list screen's results and publishes the new order
func (m Model) applySort(k sorting.Key, dir sorting.Direction) (tea.Model, tea.Cmd) {
	m.list.sortKey = k
	m.list.sortDir = dir
	if m.list.raw == nil {
		return m, nil
	}
	sorted := sorting.Reorder(m.list.raw, k, dir)
	m.list.results.Reorder(sorted)
	return m.pushList(sorted)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.inputFocused {
		return m.updateListInput(msg)
	}

	results := m.list.results
	if results.IsFilterTyping() {
		return m, results.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, Keys.Tab), key.Matches(msg, Keys.FocusInput):
		m.focusListInput()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Enter):
		if mv, ok := results.Selected(); ok {
			return m.openDetails(mv.ID, ScreenList)
		}
		return m, nil
	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(sorting.Keys(), m.list.sortKey, m.list.sortDir)
		return m, nil
	case key.Matches(msg, Keys.Direction):
		return m.applySort(m.list.sortKey, m.list.sortDir.Toggle())
	case key.Matches(msg, Keys.Reload):
		return m.fetchList()
	case key.Matches(msg, Keys.NextPage):
		if m.list.page.HasNext() && !results.IsLoading() {
			m.list.pageNum = m.list.page.Page + 1
			return m.fetchList()
		}
		return m, nil
	case key.Matches(msg, Keys.PrevPage):
		if m.list.page.Page > 1 && !results.IsLoading() {
			m.list.pageNum = m.list.page.Page - 1
			return m.fetchList()
		}
		return m, nil
	case key.Matches(msg, Keys.Back):
		if results.IsFiltering() {
			return m, results.Update(msg)
		}
		m.Screen = ScreenLanding
		return m, nil
	case key.Matches(msg, components.ListKeys.Filter):
		results.ToggleFilter()
		return m, textinput.Blink
	}

	return m, results.Update(msg)
}

// updateListInput edits the query. Every edit restarts the quiet period;
// enter settles the pending query at once.
func (m Model) updateListInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.list.input.Value() != "" {
			m.list.input.SetValue("")
			return m, m.list.query.Input("")
		}
		m.list.input.Blur()
		m.list.inputFocused = false
		m.Screen = ScreenLanding
		return m, nil
	case "enter":
		m.focusListResults()
		return m.applyQuery(m.list.query.Flush().Value)
	case "tab", "shift+tab", "down":
		m.focusListResults()
		return m, nil
	}

	before := m.list.input.Value()
	var cmd tea.Cmd
	m.list.input, cmd = m.list.input.Update(msg)
	if after := m.list.input.Value(); after != before {
		return m, tea.Batch(cmd, m.list.query.Input(after))
	}
	return m, cmd
}

func (m Model) viewList() string {
	var b strings.Builder

	inputStyle := styles.InactiveBorder
	if m.list.inputFocused {
		inputStyle = styles.ActiveBorder
	}
	frameW, _ := inputStyle.GetFrameSize()
	b.WriteString(inputStyle.Width(max(m.Width-4-frameW, 10)).Render(m.list.input.View()))
	b.WriteString("\n")

	sortLabel := m.list.sortKey.Label()
	if m.list.sortKey != sorting.Relevance {
		arrow := "↓"
		if m.list.sortDir == sorting.Asc {
			arrow = "↑"
		}
		sortLabel += " " + arrow
	}
	info := []string{styles.DimBadgeStyle.Render("Sort: " + sortLabel)}
	if p := m.list.page; p.TotalPages > 0 && !m.list.results.IsLoading() {
		info = append(info, styles.DimStyle.Render(
			fmt.Sprintf("Page %d of %d · %d results", p.Page, p.TotalPages, p.TotalResults)))
	}
	b.WriteString(strings.Join(info, "  "))
	b.WriteString("\n")
	b.WriteString(m.list.results.View())
	return b.String()
}
