package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for list panes
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// titleIndex implements fuzzy.Source over lowercased movie titles
type titleIndex []string

func (t titleIndex) String(i int) string { return t[i] }
func (t titleIndex) Len() int            { return len(t) }

// MovieList is a scrollable, filterable pane of movies.
// The filter narrows what is shown; it never changes the underlying order.
type MovieList struct {
	movies []domain.Movie
	lower  titleIndex

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading and error state
	loading     bool
	spinnerView string
	errText     string
	emptyText   string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int   // indices into movies
	filteredHits [][]int // matched rune positions in each filtered title
}

// NewMovieList creates an empty list pane with the given title
func NewMovieList(title string) *MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &MovieList{
		title:       title,
		filterInput: ti,
		emptyText:   "No movies",
	}
}

// Update handles navigation and filter keys while focused
func (c *MovieList) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, ListKeys.Escape):
				c.clearFilter()
				return nil
			case key.Matches(keyMsg, ListKeys.Accept):
				c.filterInput.Blur()
				return nil
			case keyMsg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return nil
			}
		}
		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	// Filter applied but blurred: navigate the narrowed rows
	if c.filterActive {
		switch {
		case key.Matches(keyMsg, ListKeys.Escape):
			c.clearFilter()
			return nil
		case key.Matches(keyMsg, ListKeys.Filter):
			c.filterInput.Focus()
			return nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, ListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
			c.ensureVisible()
		}
	case key.Matches(keyMsg, ListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
			c.ensureVisible()
		}
	case key.Matches(keyMsg, ListKeys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(keyMsg, ListKeys.End):
		c.cursor = count - 1
		c.ensureVisible()
	case key.Matches(keyMsg, ListKeys.HalfDown):
		c.cursor = min(c.cursor+c.maxVisible/2, count-1)
		c.ensureVisible()
	case key.Matches(keyMsg, ListKeys.HalfUp):
		c.cursor = max(c.cursor-c.maxVisible/2, 0)
		c.ensureVisible()
	}
	return nil
}

// View renders the pane inside a border
func (c *MovieList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

// SetSize sets the outer dimensions including the border
func (c *MovieList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *MovieList) SetFocused(focused bool) { c.focused = focused }
func (c *MovieList) IsFocused() bool         { return c.focused }
func (c *MovieList) SetTitle(title string)   { c.title = title }
func (c *MovieList) Title() string           { return c.title }

// SetEmptyText sets the message shown when there is nothing to list
func (c *MovieList) SetEmptyText(text string) { c.emptyText = text }

// SetItems replaces the rows, resetting selection and filter
func (c *MovieList) SetItems(movies []domain.Movie) {
	c.loading = false
	c.errText = ""
	c.movies = movies
	c.lower = make(titleIndex, len(movies))
	for i, m := range movies {
		c.lower[i] = strings.ToLower(m.Title)
	}
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
}

// Reorder replaces the rows with a permutation of the same movies,
// keeping the cursor on the movie it was on
func (c *MovieList) Reorder(movies []domain.Movie) {
	prev, ok := c.Selected()
	filtering := c.filterActive
	query := c.filterInput.Value()
	typing := c.filterInput.Focused()

	c.SetItems(movies)
	if filtering {
		c.filterActive = true
		c.filterInput.SetValue(query)
		if typing {
			c.filterInput.Focus()
		}
		c.applyFilter()
		c.recalcMaxVisible()
	}
	if ok {
		c.SelectID(prev.ID)
	}
}

// Items returns the unfiltered rows in display order
func (c *MovieList) Items() []domain.Movie {
	return c.movies
}

// ItemCount returns the number of visible rows
func (c *MovieList) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.movies)
}

// IsEmpty returns true if no rows are visible
func (c *MovieList) IsEmpty() bool {
	return c.ItemCount() == 0
}

// Selected returns the movie under the cursor
func (c *MovieList) Selected() (domain.Movie, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.Movie{}, false
	}
	return c.movies[c.mapIndex(c.cursor)], true
}

// SelectedIndex returns the cursor position among visible rows
func (c *MovieList) SelectedIndex() int {
	return c.cursor
}

// SelectID moves the cursor to the movie with id, if visible
func (c *MovieList) SelectID(id int) bool {
	for i := 0; i < c.ItemCount(); i++ {
		if c.movies[c.mapIndex(i)].ID == id {
			c.cursor = i
			c.ensureVisible()
			return true
		}
	}
	return false
}

// SetLoading toggles the loading placeholder
func (c *MovieList) SetLoading(loading bool) {
	c.loading = loading
	if loading {
		c.errText = ""
	}
}

func (c *MovieList) IsLoading() bool { return c.loading }

// SetSpinnerView sets the rendered spinner frame shown while loading
func (c *MovieList) SetSpinnerView(view string) { c.spinnerView = view }

// SetError replaces the rows with an error message
func (c *MovieList) SetError(text string) {
	c.loading = false
	c.errText = text
}

// Error returns the current error message, if any
func (c *MovieList) Error() string { return c.errText }

// ToggleFilter activates the filter input
func (c *MovieList) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *MovieList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *MovieList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (c *MovieList) ClearFilter() {
	c.clearFilter()
}

func (c *MovieList) recalcMaxVisible() {
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1 // -1 for title
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *MovieList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *MovieList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filteredHits = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *MovieList) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		c.filteredHits = nil
		return
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), c.lower)
	c.filteredIdx = make([]int, len(matches))
	c.filteredHits = make([][]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
		c.filteredHits[i] = runePositions(match.Str, match.MatchedIndexes)
	}

	c.cursor = 0
	c.offset = 0
}

// runePositions converts byte offsets in s to rune positions
func runePositions(s string, offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}
	byRune := make(map[int]int, len(s))
	n := 0
	for b := range s {
		byRune[b] = n
		n++
	}
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if r, ok := byRune[o]; ok {
			out = append(out, r)
		}
	}
	return out
}

// matchesAt returns the highlighted rune positions for visible row i
func (c *MovieList) matchesAt(i int) []int {
	if c.filteredHits != nil && i < len(c.filteredHits) {
		return c.filteredHits[i]
	}
	return nil
}

func (c *MovieList) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

func (c *MovieList) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading {
		loadingLine := styles.DimStyle.Render(c.spinnerView + " Loading...")
		return titleLine + "\n \n" + loadingLine + "\n "
	}
	if c.errText != "" {
		return titleLine + "\n \n" + styles.ErrorStyle.Render(c.errText) + "\n "
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(c.emptyText)
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)
	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.movies[c.mapIndex(i)], c.matchesAt(i), i == c.cursor, itemWidth))
	}

	// Header and footer lines are always reserved to keep the layout stable
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *MovieList) renderRow(m domain.Movie, matched []int, selected bool, width int) string {
	rating := styles.Rating(m.VoteAverage)
	ratingFg := styles.Marquee
	if m.VoteAverage <= 0 {
		ratingFg = styles.DimGray
	}

	// width - rating - gap(2) - margins(2)
	available := width - lipgloss.Width(rating) - 4
	if available < 5 {
		available = 5
	}
	full := m.DisplayTitle()
	title := styles.Pad(styles.Truncate(full, available), available)

	// Matches index the bare title; an ellipsis hides the tail
	limit := len([]rune(m.Title))
	if n := len([]rune(full)); n > available {
		limit = min(limit, available-3)
	}
	visible := make([]int, 0, len(matched))
	for _, i := range matched {
		if i < limit {
			visible = append(visible, i)
		}
	}

	parts := styles.MatchParts(title, visible)
	parts = append(parts, styles.RowPart{Text: "  " + rating, Foreground: &ratingFg})
	return styles.RenderListRow(parts, selected, width)
}

func (c *MovieList) renderFilterBar() string {
	input := c.filterInput.View()
	if c.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.movies)))
}
