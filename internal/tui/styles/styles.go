package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Marquee    = lipgloss.Color("#F5C518")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Marquee)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Marquee)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Marquee).
			Bold(true).
			Padding(0, 1)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Underline(true)
)

// Panel styles
var (
	ScreenStyle = lipgloss.NewStyle().
			Padding(1, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Marquee).
			Bold(true).
			MarginBottom(1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Marquee).
			Padding(0, 1).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Marquee).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Marquee)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Marquee)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Marquee).
				Bold(true)
)

// Match highlight style for fuzzy results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Marquee).
				Bold(true)
)

// Helper functions

// Truncate shortens s to width runes with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads s with spaces to width runes, truncating when longer
func Pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

// Rating renders a 0-10 vote average, or a dash when unrated
func Rating(v float64) string {
	if v <= 0 {
		return "★ —"
	}
	return fmt.Sprintf("★ %.1f", v)
}

// RenderListRow renders a row with a uniform background when selected.
// Each part is styled explicitly so ANSI resets don't break the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Match {
			style = MatchHighlightStyle
		} else if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width, minus one column of margin each side
	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	if pad := width - visibleLen - 2; pad > 0 {
		b.WriteString(marginStyle.Render(strings.Repeat(" ", pad)))
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// RowPart is a span of row text with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Match      bool // fuzzy match, drawn with MatchHighlightStyle
}

// MatchParts splits text into row parts, flagging the runes at the given
// indices as matches. Indices outside text are ignored.
func MatchParts(text string, matched []int) []RowPart {
	if len(matched) == 0 {
		return []RowPart{{Text: text}}
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var parts []RowPart
	var run []rune
	runMatch := false
	for i, r := range []rune(text) {
		if hit[i] != runMatch && len(run) > 0 {
			parts = append(parts, RowPart{Text: string(run), Match: runMatch})
			run = run[:0]
		}
		runMatch = hit[i]
		run = append(run, r)
	}
	if len(run) > 0 {
		parts = append(parts, RowPart{Text: string(run), Match: runMatch})
	}
	return parts
}
