package components

import (
	"strings"

	"github.com/mmcdole/marquee/internal/sorting"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SortSelection represents the user's sort choice
type SortSelection struct {
	Key       sorting.Key
	Direction sorting.Direction
}

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible   bool
	options   []sorting.Key
	cursor    int
	activeKey sorting.Key
	activeDir sorting.Direction
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the given options and current sort state
func (m *SortModal) Show(options []sorting.Key, activeKey sorting.Key, activeDir sorting.Direction) {
	m.visible = true
	m.options = options
	m.activeKey = activeKey
	m.activeDir = activeDir
	// Position cursor on the active key
	m.cursor = 0
	for i, opt := range options {
		if opt == activeKey {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice. Choosing a new key
// keeps the current direction; choosing the active key flips it.
func (m *SortModal) HandleKey(key string) (handled bool, selection *SortSelection) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		if len(m.options) == 0 {
			m.visible = false
			return true, nil
		}
		chosen := m.options[m.cursor]
		dir := m.activeDir
		if chosen == m.activeKey {
			dir = dir.Toggle()
		}
		m.visible = false
		return true, &SortSelection{Key: chosen, Direction: dir}
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		selected := i == m.cursor
		isActive := opt == m.activeKey

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}

		var suffix string
		if isActive && opt != sorting.Relevance {
			if m.activeDir == sorting.Asc {
				suffix = " ↑"
			} else {
				suffix = " ↓"
			}
		}

		text := styles.Pad(prefix+opt.Label()+suffix, 20)

		style := styles.NormalItemStyle
		switch {
		case selected:
			style = styles.SelectedItemStyle
		case isActive:
			style = styles.NormalItemStyle.Foreground(styles.Marquee)
		}
		lines = append(lines, style.Render(text))
	}

	content := strings.Join(lines, "\n")
	return styles.ModalStyle.Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + content)
}
