package components

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// GenrePicker is a multi-select list of genres.
// Error returns the load error shown in place of the list, if any
func (g *GenrePicker) Error() string { return g.errText }

// Selected IDs are kept in the order they were toggled on.
type GenrePicker struct {
	genres   []domain.Genre
	selected []int

	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	loading     bool
	spinnerView string
	errText     string

	// Jump mode moves the cursor to the best fuzzy match as you type
	jumping   bool
	jumpInput textinput.Model
}

// NewGenrePicker creates an empty picker
func NewGenrePicker() *GenrePicker {
	ti := textinput.New()
	ti.Placeholder = "jump to genre..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &GenrePicker{jumpInput: ti, loading: true}
}

// SetGenres replaces the genre list. Selection is kept for IDs that still exist.
func (g *GenrePicker) SetGenres(genres []domain.Genre) {
	g.loading = false
	g.errText = ""
	g.genres = genres
	g.selected = slices.DeleteFunc(g.selected, func(id int) bool {
		return !slices.ContainsFunc(genres, func(gr domain.Genre) bool { return gr.ID == id })
	})
	g.cursor = min(g.cursor, max(len(genres)-1, 0))
	g.ensureVisible()
}

// Genres returns the genre list
func (g *GenrePicker) Genres() []domain.Genre { return g.genres }

// SetLoading toggles the loading placeholder. Starting a load clears the error.
func (g *GenrePicker) SetLoading(loading bool) {
	g.loading = loading
	if loading {
		g.errText = ""
	}
}

// SetSpinnerView sets the rendered spinner frame shown while loading
func (g *GenrePicker) SetSpinnerView(view string) { g.spinnerView = view }

// SetError replaces the list with an error message
func (g *GenrePicker) SetError(text string) {
	g.loading = false
	g.errText = text
}

// Selected returns a copy of the selected genre IDs in toggle order
func (g *GenrePicker) Selected() []int {
	return slices.Clone(g.selected)
}

// SelectedNames returns the names of the selected genres in toggle order
func (g *GenrePicker) SelectedNames() []string {
	names := make([]string, 0, len(g.selected))
	for _, id := range g.selected {
		for _, gr := range g.genres {
			if gr.ID == id {
				names = append(names, gr.Name)
				break
			}
		}
	}
	return names
}

// Toggle flips membership of id. New members are appended.
func (g *GenrePicker) Toggle(id int) {
	if i := slices.Index(g.selected, id); i >= 0 {
		g.selected = slices.Delete(g.selected, i, i+1)
		return
	}
	g.selected = append(g.selected, id)
}

// ClearSelection deselects every genre
func (g *GenrePicker) ClearSelection() {
	g.selected = nil
}

func (g *GenrePicker) SetFocused(focused bool) { g.focused = focused }
func (g *GenrePicker) IsFocused() bool         { return g.focused }

// IsJumping returns true while the jump input has focus
func (g *GenrePicker) IsJumping() bool { return g.jumping }

// SetSize sets the outer dimensions including the border
func (g *GenrePicker) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.maxVisible = max(height-BorderHeight-ScrollIndicatorLines-2, 1) // title + selection summary
	if g.jumping {
		g.maxVisible = max(g.maxVisible-1, 1)
	}
	g.ensureVisible()
}

// Update handles keys while focused. It returns true when the selection changed.
func (g *GenrePicker) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	if !g.focused {
		return false, nil
	}

	if g.jumping {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, ListKeys.Escape), key.Matches(keyMsg, ListKeys.Accept):
				g.stopJump()
				return false, nil
			}
		}
		g.jumpInput, cmd = g.jumpInput.Update(msg)
		g.jumpTo(g.jumpInput.Value())
		return false, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(g.genres) == 0 {
		return false, nil
	}

	switch {
	case key.Matches(keyMsg, ListKeys.Down):
		if g.cursor < len(g.genres)-1 {
			g.cursor++
			g.ensureVisible()
		}
	case key.Matches(keyMsg, ListKeys.Up):
		if g.cursor > 0 {
			g.cursor--
			g.ensureVisible()
		}
	case key.Matches(keyMsg, ListKeys.Home):
		g.cursor = 0
		g.offset = 0
	case key.Matches(keyMsg, ListKeys.End):
		g.cursor = len(g.genres) - 1
		g.ensureVisible()
	case key.Matches(keyMsg, GenreKeys.Toggle), key.Matches(keyMsg, ListKeys.Accept):
		g.Toggle(g.genres[g.cursor].ID)
		return true, nil
	case key.Matches(keyMsg, GenreKeys.Clear):
		if len(g.selected) == 0 {
			return false, nil
		}
		g.ClearSelection()
		return true, nil
	case key.Matches(keyMsg, ListKeys.Filter):
		g.jumping = true
		g.jumpInput.SetValue("")
		g.SetSize(g.width, g.height)
		return false, g.jumpInput.Focus()
	}
	return false, nil
}

func (g *GenrePicker) stopJump() {
	g.jumping = false
	g.jumpInput.Blur()
	g.SetSize(g.width, g.height)
}

// jumpTo moves the cursor to the closest genre name match
func (g *GenrePicker) jumpTo(query string) {
	if query == "" {
		return
	}
	names := make([]string, len(g.genres))
	for i, gr := range g.genres {
		names[i] = gr.Name
	}
	ranks := fuzzy.RankFindFold(query, names)
	if len(ranks) == 0 {
		return
	}
	sort.Stable(ranks)
	g.cursor = ranks[0].OriginalIndex
	g.ensureVisible()
}

func (g *GenrePicker) ensureVisible() {
	if g.maxVisible <= 0 {
		return
	}
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
}

// View renders the picker inside a border
func (g *GenrePicker) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(g.width-frameW, 0)).
		Height(max(g.height-frameH, 0)).
		Render(g.renderContent())
}

func (g *GenrePicker) renderContent() string {
	itemWidth := max(g.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render("Genres")

	if g.loading {
		return titleLine + "\n \n" + styles.DimStyle.Render(g.spinnerView+" Loading...")
	}
	if g.errText != "" {
		return titleLine + "\n \n" + styles.ErrorStyle.Render(g.errText)
	}

	summary := styles.DimStyle.Render("Any genre")
	if names := g.SelectedNames(); len(names) > 0 {
		summary = styles.AccentStyle.Render(styles.Truncate(strings.Join(names, " + "), itemWidth))
	}

	end := min(g.offset+g.maxVisible, len(g.genres))
	lines := make([]string, 0, end-g.offset)
	for i := g.offset; i < end; i++ {
		gr := g.genres[i]
		mark := "[ ] "
		markFg := styles.DimGray
		if slices.Contains(g.selected, gr.ID) {
			mark = "[x] "
			markFg = styles.Marquee
		}
		parts := []styles.RowPart{
			{Text: mark, Foreground: &markFg},
			{Text: styles.Truncate(gr.Name, itemWidth-6)},
		}
		lines = append(lines, styles.RenderListRow(parts, i == g.cursor, itemWidth))
	}

	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(g.genres) {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + summary + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if g.jumping {
		content += "\n" + g.jumpInput.View()
	}
	return content
}
